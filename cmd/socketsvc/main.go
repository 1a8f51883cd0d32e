package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/levelup-services/configs"
	svcconfig "github.com/avvvet/levelup-services/internal/levelup/config"
	"github.com/avvvet/levelup-services/internal/nats"

	"github.com/avvvet/levelup-services/internal/socketsvc/broker"
	"github.com/avvvet/levelup-services/internal/socketsvc/routes"
	"github.com/avvvet/levelup-services/internal/socketsvc/ws"
)

const SERVICE_NAME = "socket"

func main() {
	config.LoadEnv(SERVICE_NAME)

	cfg, err := svcconfig.LoadSocket()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME+"_service_"+instanceId[:8], cfg.LogLevel, cfg.LogToFile)

	// Connect to NATS
	n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"_"+instanceId)
	if err != nil {
		log.Fatalf("Error: unable to connect to NATS server %v", err)
	}
	defer n.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.AllowedOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Initialize websocket handler
	s := ws.NewWs()

	// Initialize routes
	if err := routes.SetRoutes(r, s, cfg.Port, cfg.JWTSecret); err != nil {
		log.Fatalf("Error: unable to set routes %v", err)
	}

	// Initialize broker, s.Recipients and s.Send are injected
	b := broker.NewBroker(n.Conn, s.Recipients, s.Send)

	// subscribe to levelup notifications
	sub, err := b.Subscribe(cfg.NatsSubject)
	if err != nil {
		log.Fatalf("Error: unable to subscribe to %s %v", cfg.NatsSubject, err)
	}

	// Create server with timeout settings
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 60 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := sub.Unsubscribe(); err != nil {
		log.Warnf("unsubscribe %s: %v", cfg.NatsSubject, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
		return
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
