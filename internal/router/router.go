package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/teamtasks/api/handler"
)

type Handlers struct {
	Developer *apiHandler.DeveloperHandler
	Project   *apiHandler.ProjectHandler
	Task      *apiHandler.TaskHandler
	Dashboard *apiHandler.DashboardHandler
	Health    *apiHandler.HealthHandler
}

// Options controls the non-API surface of the router.
type Options struct {
	// StaticDir holds the built frontend; empty means API only.
	StaticDir string
	Logger    *zap.Logger
}

const notFoundBody = `{"code":"NOT_FOUND","message":"endpoint not found"}`

func New(handlers Handlers, opts Options) *router.Router {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	r := router.New()
	r.RedirectTrailingSlash = false

	r.GET("/health", handlers.Health.Check)

	api := r.Group("/api")
	api.GET("/developers", handlers.Developer.ListDevelopers)

	api.GET("/dashboard/developer-workload", handlers.Dashboard.DeveloperWorkload)
	api.GET("/dashboard/project-health", handlers.Dashboard.ProjectHealth)
	api.GET("/dashboard/developer-delay-risk", handlers.Dashboard.DelayRisk)

	api.GET("/projects", handlers.Project.ListProjects)
	api.GET("/projects/{id}/tasks", handlers.Project.ListTasks)

	api.POST("/tasks", handlers.Task.CreateTask)
	api.GET("/tasks/{id}", handlers.Task.GetTask)
	api.PUT("/tasks/{id}/status", handlers.Task.UpdateStatus)

	r.NotFound = notFound(staticHandler(opts.StaticDir, opts.Logger))
	return r
}

// notFound answers unknown API paths with JSON and hands everything else to static.
func notFound(static fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		if static == nil || path == "/api" || strings.HasPrefix(path, "/api/") || !(ctx.IsGet() || ctx.IsHead()) {
			ctx.SetContentType("application/json")
			ctx.SetStatusCode(http.StatusNotFound)
			ctx.SetBodyString(notFoundBody)
			return
		}
		static(ctx)
	}
}

// staticHandler serves files from dir and falls back to index.html so
// client-side routes resolve. It returns nil when dir is unusable.
func staticHandler(dir string, logger *zap.Logger) fasthttp.RequestHandler {
	if dir == "" {
		logger.Info("static directory not configured; API only mode")
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("static directory missing", zap.String("path", dir), zap.Error(err))
		return nil
	}
	indexPath := filepath.Join(dir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		logger.Warn("index.html not found", zap.String("path", indexPath), zap.Error(err))
		return nil
	}

	fs := &fasthttp.FS{
		Root:               dir,
		IndexNames:         []string{"index.html"},
		GenerateIndexPages: false,
	}
	fs.PathNotFound = func(ctx *fasthttp.RequestCtx) {
		ctx.SendFile(indexPath)
	}
	return fs.NewRequestHandler()
}
