package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/taskforge/taskforge/internal/application/service"
	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/internal/infrastructure/authclient"
	"github.com/taskforge/taskforge/internal/infrastructure/monitoring"
	"github.com/taskforge/taskforge/internal/infrastructure/persistence/postgres"
	"github.com/taskforge/taskforge/internal/infrastructure/token"
	"github.com/taskforge/taskforge/internal/interfaces/http/handlers"
	"github.com/taskforge/taskforge/internal/interfaces/http/router"
	"github.com/taskforge/taskforge/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskforge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	shutdownTracer, err := monitoring.InitTracer(&cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warn(ctx, "Error al detener el trazador", logger.Err(err))
		}
	}()

	db, err := postgres.NewDBConnection(ctx, &cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	codec := token.NewCodec(cfg.JWT.Secret, cfg.JWT.TTL(), log)
	gateway := authclient.NewClient(&cfg.AuthService, log)
	metrics := monitoring.NewMetrics()

	projectRepo := postgres.NewProjectRepository(db, log)
	taskRepo := postgres.NewTaskRepository(db, log)

	projectSvc := service.NewProjectService(projectRepo, log)
	taskSvc := service.NewTaskService(taskRepo, projectRepo, log)

	h := &router.Handlers{
		Auth:    handlers.NewAuthHandler(gateway, metrics, log),
		Project: handlers.NewProjectHandler(projectSvc, log),
		Task:    handlers.NewTaskHandler(taskSvc, log),
		Web:     handlers.NewWebHandler(gateway, projectSvc, taskSvc, log),
		Health:  handlers.NewHealthHandler(db, log),
	}

	srv := router.NewRouter(cfg, codec, metrics, h, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
