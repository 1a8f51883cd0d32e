package routes

import (
	"errors"

	"github.com/avvvet/levelup-services/internal/socketsvc/handlers"
	"github.com/avvvet/levelup-services/internal/socketsvc/ws"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

// SetRoutes mounts the socket service. Tokens are verified with the secret the
// levelup service signs with.
func SetRoutes(r chi.Router, ws *ws.Ws, port, secret string) error {
	if secret == "" {
		return errors.New("routes: jwt secret is required")
	}
	tokenAuth := jwtauth.New("HS256", []byte(secret), nil)

	h := handlers.NewHandler(ws, port)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)

		// Secure routes. Browsers cannot set headers on a websocket handshake, so ?jwt= is accepted too.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(tokenAuth, jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(jwtauth.Authenticator)

			r.Get("/ws", h.HandleWebSocket)
		})
	})
	return nil
}
