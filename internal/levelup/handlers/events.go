package handlers

import (
	"net/http"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/avvvet/levelup-services/internal/levelup/service"
)

type eventCreated struct {
	ID          int64  `json:"id"`
	Game        int64  `json:"game"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// ListEvents handles GET /events, optionally ?game=<game_id>.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	gameID, err := optionalIntQuery(r, "game")
	if err != nil {
		writeError(w, r, err)
		return
	}

	events, err := h.events.ListEvents(r.Context(), gamerFromContext(r.Context()), models.EventFilter{GameID: gameID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Event")
	if err != nil {
		writeError(w, r, err)
		return
	}

	event, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in service.EventInput
	if !decode(w, r, &in) {
		return
	}

	event, err := h.events.CreateEvent(r.Context(), gamerFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, eventCreated{
		ID:          event.ID,
		Game:        event.GameID,
		Description: event.Description,
		Date:        event.Date,
		Time:        event.Time,
	})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Event")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.EventInput
	if !decode(w, r, &in) {
		return
	}

	if err := h.events.UpdateEvent(r.Context(), gamerFromContext(r.Context()), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Event")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.events.DeleteEvent(r.Context(), gamerFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Signup handles POST /events/{id}/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Event")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.events.Join(r.Context(), id, gamerFromContext(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Gamer added"})
}

// Leave handles DELETE /events/{id}/leave.
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Event")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.events.Leave(r.Context(), id, gamerFromContext(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
