package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/avvvet/levelup-services/internal/levelup/reports"
	"github.com/avvvet/levelup-services/internal/levelup/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	tokenTTL  time.Duration

	catalog  *service.CatalogService
	events   *service.EventService
	gamers   *service.GamerService
	reports  *reports.Generator
	renderer *reports.Renderer

	port string
}

// Services groups everything the handlers call into.
type Services struct {
	Catalog *service.CatalogService
	Events  *service.EventService
	Gamers  *service.GamerService
	Reports *reports.Generator
}

func NewHandler(svc Services, auth Auth, renderer *reports.Renderer, port string) (*Handler, error) {
	tokenAuth, err := auth.tokenAuth()
	if err != nil {
		return nil, err
	}
	return &Handler{
		tokenAuth: tokenAuth,
		tokenTTL:  auth.TokenTTL,
		catalog:   svc.Catalog,
		events:    svc.Events,
		gamers:    svc.Gamers,
		reports:   svc.Reports,
		renderer:  renderer,
		port:      port,
	}, nil
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	writeJSON(w, rsp.Code, rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "levelup service is running at port " + h.port,
		Code:    http.StatusOK,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// writeError maps domain errors to status codes. Unknown errors are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: err.Error()})
	case errors.Is(err, models.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, messageResponse{Message: err.Error()})
	case errors.Is(err, models.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: err.Error()})
	default:
		log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	}
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "JSON parse error - " + err.Error()})
		return false
	}
	return true
}

// idParam reads {id}. A non numeric id cannot match any row.
func idParam(r *http.Request, entity string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NotFound(entity)
	}
	return id, nil
}

// optionalIntQuery parses ?name=, nil when absent.
func optionalIntQuery(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, models.NewValidationError(name, "A valid integer is required.")
	}
	return &v, nil
}
