package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	natsgo "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/email"
	natsadapter "github.com/Abdulsamad25/apartment-rentals/internal/adapter/messaging/nats"
	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/payment/paystack"
	fileadapter "github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/file"
	memoryadapter "github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/memory"
	minioadapter "github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/minio"
	mongoadapter "github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/mongo"
	redisadapter "github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/redis"
	"github.com/Abdulsamad25/apartment-rentals/internal/app/config"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	porthttp "github.com/Abdulsamad25/apartment-rentals/internal/port/http"
	"github.com/Abdulsamad25/apartment-rentals/internal/repository"
	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

type App struct {
	cfg    *config.Config
	log    logger.Logger
	server *http.Server

	mongoClient *mongo.Client
	redisClient *redis.Client
	natsConn    *natsgo.Conn
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.NewZapLogger(logger.ZapConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Info("Logger initialized")
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s, Storage: %s", cfg.Env, cfg.HTTPServer.Port, cfg.Storage.Backend)

	a := &App{cfg: cfg, log: appLogger}

	snapshots, err := a.newSnapshotStore(ctx)
	if err != nil {
		return nil, err
	}

	// NATS is optional; the services log and continue when events cannot
	// be published.
	var publisher natsadapter.MessagePublisher = natsadapter.NoOpPublisher{}
	if conn, err := natsadapter.NewConnection(cfg.NATS); err != nil {
		appLogger.Warnf("NATS unavailable, events disabled: %v", err)
	} else {
		a.natsConn = conn
		publisher, err = natsadapter.NewPublisher(conn)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		appLogger.Info("NATS publisher initialized")
	}

	catalog := service.NewCatalogService(ctx, snapshots, publisher, appLogger)
	saved := service.NewSavedService(ctx, snapshots, appLogger)
	rentals := service.NewRentalService(ctx, snapshots, catalog, publisher, appLogger)

	gateway := paystack.NewGateway(paystack.NewClient(cfg.Paystack, appLogger))

	var mailer service.BookingMailer
	if cfg.SMTP.Username != "" {
		mailer = email.NewSender(cfg.SMTP)
		appLogger.Info("SMTP sender initialized")
	} else {
		appLogger.Warn("SMTP not configured, confirmation emails disabled")
	}

	bookings := service.NewBookingService(catalog, rentals, gateway, mailer, publisher, appLogger)

	var photos *service.PhotoService
	if cfg.MinIO.Endpoint != "" {
		photoStorage, err := minioadapter.NewPhotoStorage(cfg.MinIO, appLogger)
		if err != nil {
			appLogger.Warnf("MinIO unavailable, photo uploads disabled: %v", err)
		} else {
			photos = service.NewPhotoService(photoStorage, catalog, appLogger)
			appLogger.Info("Photo storage initialized")
		}
	}

	router := porthttp.NewRouter(porthttp.RouterDeps{
		Catalog:   catalog,
		Saved:     saved,
		Rentals:   rentals,
		Bookings:  bookings,
		Photos:    photos,
		JWTSecret: cfg.Auth.JWTSecret,
		PageSize:  cfg.Listing.PageSize,
		Logger:    appLogger,
	})

	a.server = &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}
	return a, nil
}

// newSnapshotStore builds the persistence backend the config selects.
func (a *App) newSnapshotStore(ctx context.Context) (repository.SnapshotStore, error) {
	switch a.cfg.Storage.Backend {
	case "memory":
		a.log.Info("Using in-memory snapshot store")
		return memoryadapter.NewSnapshotStore(), nil
	case "redis":
		client, err := redisadapter.NewClient(ctx, a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		a.redisClient = client
		a.log.Info("Redis snapshot store initialized")
		return redisadapter.NewSnapshotStore(client), nil
	case "mongo":
		client, err := mongoadapter.NewClient(ctx, a.cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		a.mongoClient = client
		a.log.Info("MongoDB snapshot store initialized")
		return mongoadapter.NewSnapshotStore(client, a.cfg.MongoDB), nil
	case "file", "":
		store, err := fileadapter.NewSnapshotStore(a.cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file snapshot store: %w", err)
		}
		a.log.Infof("File snapshot store initialized at %s", a.cfg.Storage.DataDir)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.cfg.Storage.Backend)
	}
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// everything down gracefully.
func (a *App) Run() {
	go func() {
		a.log.Infof("HTTP server listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
	}

	if a.natsConn != nil {
		a.natsConn.Close()
		a.log.Info("NATS connection closed")
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}

	a.log.Info("Application shut down")
}
