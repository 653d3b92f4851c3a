package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/analytics"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/auth"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/config"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/db"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/group"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/health"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/logger"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/mark"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/messaging"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/middleware"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/person"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/subject"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	database *bun.DB
	producer mark.Producer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	m, err := metrics.New(ServiceName)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}

	database := db.New(cfg.Database)
	app.database = database

	if err := m.Database.RegisterDB(database.DB, otel.Meter(ServiceName)); err != nil {
		slogLogger.Warn("failed to register database pool metrics", "error", err)
	}

	ctx := context.Background()
	if err := db.Migrate(ctx, database); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Repositories
	groupRepo := group.NewRepository(database, m)
	personRepo := person.NewRepository(database, m)
	subjectRepo := subject.NewRepository(database, m)
	markRepo := mark.NewRepository(database, m)
	userRepo := user.NewRepository(database, m)
	analyticsRepo := analytics.NewRepository(database, m)

	// Event producer (optional - the service runs without a broker)
	app.producer = newProducer(cfg.Messaging, slogLogger)

	// Auth setup
	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	authService := auth.NewService(userRepo, personRepo, tokens, m, slogLogger)
	authHandler := auth.NewHandler(authService, slogLogger)
	authHandler.RegisterRoutes(app.router)

	// Domain handlers
	groupHandler := group.NewHandler(group.NewService(groupRepo), slogLogger)
	personHandler := person.NewHandler(person.NewService(personRepo), slogLogger)
	subjectHandler := subject.NewHandler(subject.NewService(subjectRepo), slogLogger)
	markHandler := mark.NewHandler(mark.NewService(markRepo, app.producer, m, slogLogger), slogLogger)
	userHandler := user.NewHandler(user.NewService(userRepo), slogLogger)
	analyticsHandler := analytics.NewHandler(analytics.NewService(analyticsRepo), slogLogger, m)

	// Authenticated routes: reads and reports need a valid token, mutations
	// and account management additionally need the admin role.
	app.router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authService, slogLogger))

		groupHandler.RegisterRoutes(r)
		personHandler.RegisterRoutes(r)
		subjectHandler.RegisterRoutes(r)
		markHandler.RegisterRoutes(r)
		analyticsHandler.RegisterRoutes(r)

		r.Group(func(admin chi.Router) {
			admin.Use(auth.AdminMiddleware(slogLogger))

			groupHandler.RegisterAdminRoutes(admin)
			personHandler.RegisterAdminRoutes(admin)
			subjectHandler.RegisterAdminRoutes(admin)
			markHandler.RegisterAdminRoutes(admin)
			userHandler.RegisterAdminRoutes(admin)
		})
	})

	slogLogger.Info("application initialized successfully")

	return app
}

// newProducer picks the configured event transport. A broker that is down at
// startup downgrades to a warning; mark events are then skipped.
func newProducer(cfg config.MessagingConfig, logger *slog.Logger) mark.Producer {
	switch cfg.Driver {
	case "nats":
		producer, err := messaging.NewNATSProducer(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
			return nil
		}
		return producer
	case "kafka":
		producer, err := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka producer", "error", err)
			return nil
		}
		return producer
	case "":
		logger.Info("messaging disabled")
		return nil
	default:
		logger.Warn("unknown messaging driver, messaging disabled", "driver", cfg.Driver)
		return nil
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close producer", "error", err)
		}
	}
	defer db.Close(a.database)

	return a.server.Shutdown(ctx)
}
