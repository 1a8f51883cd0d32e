package handlers

import (
	"bytes"
	"net/http"

	"github.com/avvvet/levelup-services/internal/levelup/reports"
	log "github.com/sirupsen/logrus"
)

// UserEventsReport renders events grouped by organizer.
func (h *Handler) UserEventsReport(w http.ResponseWriter, r *http.Request) {
	list, err := h.reports.UserEvents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderHTML(w, r, reports.UserEventsTemplate, map[string]any{"userevent_list": list})
}

// UserGamesReport renders games grouped by owner.
func (h *Handler) UserGamesReport(w http.ResponseWriter, r *http.Request) {
	list, err := h.reports.UserGames(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderHTML(w, r, reports.UserGamesTemplate, map[string]any{"usergame_list": list})
}

// renderHTML buffers the page so a template error can still become a 500.
func (h *Handler) renderHTML(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		log.Errorf("render %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("write %s: %v", name, err)
	}
}
