package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"court-register-go/internal/config"
	"court-register-go/internal/db"
	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/internal/messaging/kafka"
	"court-register-go/internal/messaging/rabbitmq"
	"court-register-go/internal/metrics"
	"court-register-go/internal/notify"
	"court-register-go/internal/repository/inmemory"
	courtrepo "court-register-go/internal/repository/postgres/court"
	"court-register-go/internal/transport/httpserver"
	"court-register-go/internal/transport/httpserver/handler"
	authmw "court-register-go/internal/transport/httpserver/middleware"
	"court-register-go/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type Options struct {
	Migrate bool
}

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	changes    *kafka.ChangePublisher
	audits     *rabbitmq.AuditPublisher
}

func New(cfg config.Config, opts Options, log logger.Logger) (*App, error) {
	var err error
	a := &App{cfg: cfg}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close()
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	var checks []handler.HealthCheck

	log.Info("app: initializing storage", "backend", cfg.Storage)
	var repo courtdomain.Repository
	switch cfg.Storage {
	case config.StorageMemory:
		repo = inmemory.NewCourtRepository(inmemory.DefaultCourtTypes()...)
	default:
		a.db, err = db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if opts.Migrate {
			if _, err := db.Migrate(a.db, log); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		repo = courtrepo.NewPostgres(a.db)
		checker := db.NewChecker(a.db)
		checks = append(checks, handler.HealthCheck{Name: "db", Check: func(ctx context.Context) (any, error) {
			return nil, checker.Ping(ctx)
		}})
	}

	log.Info("app: initializing publishers")
	fallback := notify.NewLogPublisher(log)
	var changes notify.ChangePublisher = fallback
	if len(cfg.Kafka.Brokers) > 0 {
		a.changes, err = kafka.NewChangePublisher(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		changes = a.changes
		checks = append(checks, handler.HealthCheck{Name: "changeTopic", Check: func(ctx context.Context) (any, error) {
			return map[string]string{"topic": cfg.Kafka.ChangeTopic}, a.changes.Ping(ctx)
		}})
	} else {
		log.Warn("app: KAFKA_BROKERS not set, change events are only logged")
	}

	var audits notify.AuditPublisher = fallback
	if cfg.RabbitMQ.URL != "" {
		a.audits, err = rabbitmq.NewAuditPublisher(cfg.RabbitMQ, cfg.ServiceName, log)
		if err != nil {
			return nil, err
		}
		audits = a.audits
		checks = append(checks, handler.HealthCheck{Name: "auditQueue", Check: func(ctx context.Context) (any, error) {
			return a.audits.Stats(ctx)
		}})
	} else {
		log.Warn("app: RABBITMQ_URL not set, audit events are only logged")
	}

	notifier := notify.NewNotifier(cfg.ServiceName, changes, audits, m, log)
	serviceOpts := []courtdomain.Option{courtdomain.WithNotifier(notifier)}

	handlers := handler.New(
		courtdomain.NewService(repo, serviceOpts...),
		courtdomain.NewBuildingService(repo, serviceOpts...),
		courtdomain.NewContactService(repo, serviceOpts...),
		cfg.Paging,
		checks,
		log,
	)

	authenticator, err := authmw.NewAuthenticator(cfg.Auth, log)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.SkipAuth {
		log.Warn("app: AUTH_SKIP set, maintenance endpoints use the mock principal", "principal", cfg.Auth.MockPrincipal)
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, authenticator, registry)
	a.httpServer = httpserver.New(cfg, router)

	ok = true
	return a, nil
}

// RunMigrations applies pending migrations and returns.
func RunMigrations(cfg config.Config, log logger.Logger) error {
	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("migrations need STORAGE_BACKEND=%s, got %s", config.StoragePostgres, cfg.Storage)
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	sqlDB, err := dbConn.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	applied, err := db.Migrate(dbConn, log)
	if err != nil {
		return err
	}
	log.Info("db: migrations complete", "applied", len(applied))
	return nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.changes != nil {
		a.changes.Close()
	}
	if a.audits != nil {
		errs = append(errs, a.audits.Close())
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
