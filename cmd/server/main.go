package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Skotchmaster/tasks_api/internal/config"
	"github.com/Skotchmaster/tasks_api/internal/credentials"
	"github.com/Skotchmaster/tasks_api/internal/db"
	"github.com/Skotchmaster/tasks_api/internal/events"
	"github.com/Skotchmaster/tasks_api/internal/httpserver"
	"github.com/Skotchmaster/tasks_api/internal/logging"
	"github.com/Skotchmaster/tasks_api/internal/repo"
	"github.com/Skotchmaster/tasks_api/internal/search"
	"github.com/Skotchmaster/tasks_api/internal/service"
	"github.com/Skotchmaster/tasks_api/internal/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Dev: cfg.LogDev, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	logger = logger.With("service", cfg.ServiceName)
	zap.ReplaceGlobals(logger.Desugar())
	defer func() { _ = logger.Sync() }()

	creds := credentials.New(cfg.DemoUsers)
	tok := tokens.NewService(creds, cfg.JWTSecret, cfg.TokenTTL)

	var (
		users repo.UserRepo
		tasks repo.TaskRepo
		ready func(context.Context) error
	)
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		gdb, err := db.Open(ctx, cfg.SQLiteDSN)
		cancel()
		if err != nil {
			logger.Fatalw("db_open_failed", "dsn", cfg.SQLiteDSN, "error", err)
		}
		defer func() { _ = db.Close(gdb) }()
		users = &repo.GormUserRepo{DB: gdb}
		tasks = &repo.GormTaskRepo{DB: gdb}
		ready = func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	default:
		users = repo.NewMemoryUserRepo()
		tasks = repo.NewMemoryTaskRepo()
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Fatalw("kafka_init_failed", "brokers", cfg.KafkaBrokers, "error", err)
		}
		publisher = p
	}
	defer func() { _ = publisher.Close() }()

	taskSvc := &service.TaskService{Repo: tasks, Events: publisher}
	if cfg.ESURL != "" {
		idx, err := search.NewTaskIndex(search.Config{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			logger.Fatalw("es_init_failed", "url", cfg.ESURL, "error", err)
		}
		taskSvc.Index = idx
	}

	e := httpserver.NewEcho(logger)
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Tokens: tok},
		UserHandler: &httpserver.UserHTTP{Svc: &service.UserService{Repo: users, Events: publisher}},
		TaskHandler: &httpserver.TaskHTTP{Svc: taskSvc},
		Verifier:    tok,
		Ready:       ready,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Infow("server_listening", "addr", srv.Addr, "store", cfg.StoreDriver, "demo_users", creds.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("listen_failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("shutdown_failed", "error", err)
	}
	logger.Infow("server_stopped")
}
