package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type ctxKey struct{ name string }

var gamerCtxKey = &ctxKey{"gamer"}

const userIDClaim = "user_id"

// Auth configures the HS256 tokens the handler issues and verifies.
type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

func (a Auth) tokenAuth() (*jwtauth.JWTAuth, error) {
	if a.Secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	if a.TokenTTL <= 0 {
		return nil, fmt.Errorf("auth: token ttl must be positive, got %s", a.TokenTTL)
	}
	return jwtauth.New("HS256", []byte(a.Secret), nil), nil
}

func (h *Handler) issueToken(userID int64) (string, error) {
	claims := map[string]interface{}{userIDClaim: userID}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, h.tokenTTL)

	_, tokenString, err := h.tokenAuth.Encode(claims)
	return tokenString, err
}

// CurrentGamer resolves the verified token's user to its gamer and stores it in the request context.
func (h *Handler) CurrentGamer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			writeError(w, r, models.ErrUnauthenticated)
			return
		}

		userID, ok := claimInt64(claims[userIDClaim])
		if !ok {
			writeError(w, r, models.ErrUnauthenticated)
			return
		}

		gamer, err := h.gamers.ResolveUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				log.Warnf("token for unknown user %d", userID)
				writeError(w, r, models.ErrUnauthenticated)
				return
			}
			writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), gamerCtxKey, gamer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func gamerFromContext(ctx context.Context) *models.Gamer {
	g, _ := ctx.Value(gamerCtxKey).(*models.Gamer)
	return g
}

// claimInt64 accepts the numeric forms a decoded claim can take.
func claimInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), n > 0 && n == float64(int64(n))
	case int64:
		return n, n > 0
	case int:
		return int64(n), n > 0
	case json.Number:
		i, err := n.Int64()
		return i, err == nil && i > 0
	}
	return 0, false
}
