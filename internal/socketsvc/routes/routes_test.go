package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avvvet/levelup-services/internal/socketsvc/ws"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketRequiresToken(t *testing.T) {
	r := chi.NewRouter()
	require.NoError(t, SetRoutes(r, ws.NewWs(), "8001", "test-secret"))
	srv := httptest.NewServer(r)
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"

	_, resp, err := websocket.DefaultDialer.Dial(base, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	claims := map[string]interface{}{"user_id": 4}
	jwtauth.SetExpiryIn(claims, time.Hour)
	_, token, err := jwtauth.New("HS256", []byte("test-secret"), nil).Encode(claims)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(base+"?jwt="+token, nil)
	require.NoError(t, err)
	conn.Close()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "8001")
}

func TestSetRoutesNeedsSecret(t *testing.T) {
	assert.Error(t, SetRoutes(chi.NewRouter(), ws.NewWs(), "8001", ""))
}
