package handlers

import (
	"errors"
	"net/http"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/avvvet/levelup-services/internal/levelup/service"
)

type tokenResponse struct {
	Valid bool   `json:"valid"`
	Token string `json:"token,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decode(w, r, &in) {
		return
	}

	gamer, err := h.gamers.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.issueToken(gamer.User.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Valid: true, Token: token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if !decode(w, r, &in) {
		return
	}

	gamer, err := h.gamers.Login(r.Context(), in.Username, in.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, tokenResponse{Valid: false})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.issueToken(gamer.User.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Valid: true, Token: token})
}

// Activity handles GET /activity?limit=N for the requesting gamer.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalIntQuery(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var n int64
	if limit != nil {
		n = *limit
	}

	records, err := h.gamers.Activity(r.Context(), gamerFromContext(r.Context()), n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
