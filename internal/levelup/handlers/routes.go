package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r chi.Router) {
	// public routes
	r.Get("/health", h.HealthHandler)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/userevents", h.UserEventsReport)
		r.Get("/usergames", h.UserGamesReport)
	})

	// Secure routes
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.tokenAuth))
		r.Use(jwtauth.Authenticator)
		r.Use(h.CurrentGamer)

		r.Route("/games", func(r chi.Router) {
			r.Get("/", h.ListGames)
			r.Post("/", h.CreateGame)
			r.Get("/{id}", h.GetGame)
			r.Put("/{id}", h.UpdateGame)
			r.Delete("/{id}", h.DeleteGame)
		})

		r.Route("/gametypes", func(r chi.Router) {
			r.Get("/", h.ListGameTypes)
			r.Get("/{id}", h.GetGameType)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Get("/{id}", h.GetEvent)
			r.Put("/{id}", h.UpdateEvent)
			r.Delete("/{id}", h.DeleteEvent)
			r.Post("/{id}/signup", h.Signup)
			r.Delete("/{id}/leave", h.Leave)
		})

		r.Get("/activity", h.Activity)
	})
}
