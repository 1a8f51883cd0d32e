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
	mongodb "github.com/avvvet/levelup-services/internal/db"
	"github.com/avvvet/levelup-services/internal/levelup/activity"
	"github.com/avvvet/levelup-services/internal/levelup/broker"
	svcconfig "github.com/avvvet/levelup-services/internal/levelup/config"
	"github.com/avvvet/levelup-services/internal/levelup/db"
	"github.com/avvvet/levelup-services/internal/levelup/handlers"
	"github.com/avvvet/levelup-services/internal/levelup/reports"
	"github.com/avvvet/levelup-services/internal/levelup/service"
	"github.com/avvvet/levelup-services/internal/levelup/store"
	"github.com/avvvet/levelup-services/internal/levelup/store/memstore"
	"github.com/avvvet/levelup-services/internal/levelup/telegram"
	nats "github.com/avvvet/levelup-services/internal/nats"
)

const SERVICE_NAME = "levelup"

// repositories is the storage handle injected into the services.
type repositories struct {
	users      service.UserRepository
	gamers     service.GamerRepository
	gameTypes  service.GameTypeRepository
	games      service.GameRepository
	events     service.EventRepository
	attendance service.AttendanceRepository
	reports    reports.Source
}

func main() {
	config.LoadEnv(SERVICE_NAME)

	cfg, err := svcconfig.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME+"_service_"+instanceId[:8], cfg.LogLevel, cfg.LogToFile)

	ctx := context.Background()

	var repos repositories
	switch cfg.StorageDriver {
	case svcconfig.StoragePostgres:
		dbpool, err := db.Connect(ctx, cfg.DBUrl)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer dbpool.Close()
		if err := db.Migrate(ctx, dbpool); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
		log.Printf("pg connection established successfully")

		s := store.New(dbpool)
		repos = repositories{s.Users, s.Gamers, s.GameTypes, s.Games, s.Events, s.Attendance, s.Reports}
	case svcconfig.StorageMemory:
		s := memstore.New()
		repos = repositories{s.Users, s.Gamers, s.GameTypes, s.Games, s.Events, s.Attendance, s.Reports}
		log.Warn("using in-memory storage, data is lost on restart")
	}

	var notifiers service.Notifiers
	var activityReader service.ActivityReader

	// Connect to NATS
	if cfg.NotificationsEnabled() {
		n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"_"+instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Close()
		log.Printf("NATS connection established successfully %s", n.Url)

		notifiers = append(notifiers, broker.NewBroker(n.Conn, cfg.NatsSubject))
	}

	if cfg.ActivityEnabled() {
		mdb, err := mongodb.ConnectToDB(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Error: unable to connect to MongoDB %v", err)
		}
		defer mdb.Client().Disconnect(context.Background())

		activityStore, err := activity.NewStore(ctx, mdb, cfg.ActivityTTL)
		if err != nil {
			log.Fatalf("Error: unable to prepare activity log %v", err)
		}
		notifiers = append(notifiers, activityStore)
		activityReader = activityStore
		log.Printf("MongoDB activity log ready")
	}

	if cfg.TelegramEnabled() {
		tn, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatIDs)
		if err != nil {
			log.Errorf("Failed to initialize Telegram notifier: %v", err)
		} else {
			notifiers = append(notifiers, tn)
			log.Infof("Telegram notifier initialized with %d chat IDs", len(cfg.TelegramChatIDs))
		}
	}

	var notifier service.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	renderer, err := reports.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse report templates: %v", err)
	}

	svc := handlers.Services{
		Catalog: service.NewCatalogService(repos.games, repos.gameTypes, repos.events, notifier),
		Events:  service.NewEventService(repos.events, repos.attendance, notifier),
		Gamers:  service.NewGamerService(repos.users, repos.gamers, activityReader),
		Reports: reports.NewGenerator(repos.reports),
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.AllowedOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h, err := handlers.NewHandler(svc, handlers.Auth{Secret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}, renderer, cfg.Port)
	if err != nil {
		log.Fatalf("Error: unable to build handlers %v", err)
	}
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
		return
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
