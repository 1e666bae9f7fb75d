package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/teamtasks/api/handler"
	"github.com/fastygo/teamtasks/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/teamtasks/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/teamtasks/internal/infrastructure/redis"
	"github.com/fastygo/teamtasks/internal/middleware"
	"github.com/fastygo/teamtasks/internal/router"
	"github.com/fastygo/teamtasks/internal/services/lifecycle"
	"github.com/fastygo/teamtasks/pkg/httpcontext"
	"github.com/fastygo/teamtasks/repository"
	"github.com/fastygo/teamtasks/repository/postgres"
	redisRepo "github.com/fastygo/teamtasks/repository/redis"
	"github.com/fastygo/teamtasks/usecase"
	dashboardUC "github.com/fastygo/teamtasks/usecase/dashboard"
	developerUC "github.com/fastygo/teamtasks/usecase/developer"
	projectUC "github.com/fastygo/teamtasks/usecase/project"
	taskUC "github.com/fastygo/teamtasks/usecase/task"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, log)

	if cfg.Migrations.Enabled {
		if err := pgInfra.RunMigrations(cfg.Database, log); err != nil {
			return err
		}
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Error("postgres connection failed", zap.String("dsn", pgInfra.Redact(cfg.Database.URL)), zap.Error(err))
		return err
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, log)
		return nil
	})

	mon := monitor.New(0, log)
	mon.Register("postgresql", pool)

	var (
		reports     repository.ReportRepository = postgres.NewReportRepository(pool)
		invalidator usecase.ReportInvalidator
	)

	redisClient, err := redisInfra.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Error("redis connection failed", zap.Error(err))
		return err
	}
	if redisClient != nil {
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		mon.Register("redis", monitor.PingFunc(redisInfra.Ping(redisClient)))

		cache := redisRepo.NewReportCache(reports, redisClient, cfg.Cache.ReportTTL, log)
		reports = cache
		invalidator = cache
	}

	taskRepo := postgres.NewTaskRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	developerRepo := postgres.NewDeveloperRepository(pool)

	taskUseCase := taskUC.New(taskRepo, projectRepo, developerRepo, invalidator, log)
	projectUseCase := projectUC.New(projectRepo, taskRepo, reports)
	developerUseCase := developerUC.New(developerRepo)
	dashboardUseCase := dashboardUC.New(reports)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Developer: apiHandler.NewDeveloperHandler(developerUseCase, ctxAdapter, log),
		Project:   apiHandler.NewProjectHandler(projectUseCase, ctxAdapter, log),
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, log),
		Dashboard: apiHandler.NewDashboardHandler(dashboardUseCase, ctxAdapter, log),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, log),
	}
	r := router.New(handlers, router.Options{StaticDir: cfg.HTTP.StaticDir, Logger: log})

	server := &fasthttp.Server{
		Handler: middleware.Chain(r.Handler,
			middleware.Recover(log),
			middleware.AccessLog(log),
			middleware.CORS(middleware.CORSConfig{AllowOrigins: cfg.HTTP.CORSOrigins}),
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	err = manager.Run(ctx, func(ctx context.Context) error {
		log.Info("server started",
			zap.String("address", cfg.Address()),
			zap.Bool("report_cache", redisClient != nil),
			zap.Strings("cors_origins", cfg.HTTP.CORSOrigins),
		)
		return server.ListenAndServe(cfg.Address())
	})
	if err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}
