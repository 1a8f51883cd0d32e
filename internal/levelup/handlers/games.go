package handlers

import (
	"net/http"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/avvvet/levelup-services/internal/levelup/service"
)

// gameCreated is the create response: writable fields with game_type as an id.
type gameCreated struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Maker           string `json:"maker"`
	NumberOfPlayers int    `json:"number_of_players"`
	SkillLevel      int    `json:"skill_level"`
	GameType        int64  `json:"game_type"`
}

// ListGames handles GET /games?type=<game_type_id>.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	typeID, err := optionalIntQuery(r, "type")
	if err != nil {
		writeError(w, r, err)
		return
	}

	games, err := h.catalog.ListGames(r.Context(), gamerFromContext(r.Context()), models.GameFilter{GameTypeID: typeID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Game")
	if err != nil {
		writeError(w, r, err)
		return
	}

	game, err := h.catalog.GetGame(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var in service.GameInput
	if !decode(w, r, &in) {
		return
	}

	game, err := h.catalog.CreateGame(r.Context(), gamerFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, gameCreated{
		ID:              game.ID,
		Title:           game.Title,
		Maker:           game.Maker,
		NumberOfPlayers: game.NumberOfPlayers,
		SkillLevel:      game.SkillLevel,
		GameType:        game.GameTypeID,
	})
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Game")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.GameInput
	if !decode(w, r, &in) {
		return
	}

	if err := h.catalog.UpdateGame(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteGame returns 403 unless the requester owns the game.
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Game")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.catalog.DeleteGame(r.Context(), gamerFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListGameTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalog.ListGameTypes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *Handler) GetGameType(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "GameType")
	if err != nil {
		writeError(w, r, err)
		return
	}

	gt, err := h.catalog.GetGameType(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gt)
}
