package router

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/internal/infrastructure/monitoring"
	"github.com/taskforge/taskforge/internal/interfaces/http/handlers"
	"github.com/taskforge/taskforge/internal/interfaces/http/middleware"
	"github.com/taskforge/taskforge/pkg/logger"
)

// Router wires the middleware chain and every route onto a gin engine and
// owns the http.Server lifecycle.
type Router struct {
	engine *gin.Engine
	server *http.Server
	cfg    *config.Config
	log    logger.Logger
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Project *handlers.ProjectHandler
	Task    *handlers.TaskHandler
	Web     *handlers.WebHandler
	Health  *handlers.HealthHandler
}

// NewRouter builds the engine with the full middleware chain. The order
// matters: request id and logging first, then the authentication gate, then
// the access policy. The gate only identifies, the policy decides.
func NewRouter(cfg *config.Config, verifier middleware.TokenVerifier, metrics *monitoring.Metrics, h *Handlers, log logger.Logger) *Router {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogging(log, metrics))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.AuthenticationGate(verifier, log))
	engine.Use(middleware.AccessPolicy(middleware.DefaultRules, log))

	// Templates are optional so the JSON API keeps working in deployments
	// that strip the web assets.
	if matches, err := filepath.Glob(cfg.Server.TemplateGlob); err == nil && len(matches) > 0 {
		engine.LoadHTMLGlob(cfg.Server.TemplateGlob)
	}

	r := &Router{
		engine: engine,
		cfg:    cfg,
		log:    log.WithComponent("router"),
	}
	r.registerRoutes(h)

	return r
}

func (r *Router) registerRoutes(h *Handlers) {
	// JSON API.
	api := r.engine.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		projects := api.Group("/projects")
		{
			projects.POST("", h.Project.Create)
			projects.GET("", h.Project.List)
			projects.GET("/:id", h.Project.Get)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", h.Task.Create)
			tasks.GET("/mine", h.Task.ListMine)
			tasks.GET("/:id", h.Task.Get)
			tasks.GET("/project/:projectId", h.Task.ListByProject)
		}
	}

	// Server-rendered pages.
	r.engine.GET("/", h.Web.Home)
	r.engine.GET("/login", h.Web.ShowLogin)
	r.engine.POST("/login", h.Web.ProcessLogin)
	r.engine.GET("/register", h.Web.ShowRegister)
	r.engine.POST("/register", h.Web.ProcessRegister)
	r.engine.GET("/dashboard", h.Web.Dashboard)
	r.engine.GET("/projects/new", h.Web.ShowCreateProject)
	r.engine.POST("/projects/new", h.Web.ProcessCreateProject)
	r.engine.GET("/logout", h.Web.Logout)

	// Operational endpoints.
	health := r.engine.Group("/health")
	{
		health.GET("/live", h.Health.Live)
		health.GET("/ready", h.Health.Ready)
	}
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.cfg.Server.PprofEnabled {
		pprof.Register(r.engine)
	}

	r.engine.Static("/css", "./web/static/css")
	r.engine.Static("/js", "./web/static/js")
	r.engine.Static("/images", "./web/static/images")

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   gin.H{"code": "not_found", "message": "recurso no encontrado"},
		})
	})
}

// Engine exposes the underlying gin engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Start runs the HTTP server until the listener fails or Shutdown is called.
func (r *Router) Start(ctx context.Context) error {
	r.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", r.cfg.Server.Host, r.cfg.Server.Port),
		Handler:      r.engine,
		ReadTimeout:  time.Duration(r.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(r.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(r.cfg.Server.IdleTimeout) * time.Second,
	}

	r.log.Info(ctx, "Servidor HTTP iniciado", logger.String("addr", r.server.Addr))

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (r *Router) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.log.Info(ctx, "Deteniendo servidor HTTP")
	return r.server.Shutdown(ctx)
}
