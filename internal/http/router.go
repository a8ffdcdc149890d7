package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/contactbook-backend/internal/http/handlers"
	httpMW "github.com/yungbote/contactbook-backend/internal/http/middleware"
	"github.com/yungbote/contactbook-backend/internal/observability"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

const (
	healthPath  = "/healthcheck"
	metricsPath = "/metrics"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// BasePath prefixes every API route; empty mounts them at the root.
	BasePath      string
	CORSOrigins   []string
	TracingName   string
	EnableTracing bool

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	ContactHandler *httpH.ContactHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.EnableTracing {
		r.Use(otelgin.Middleware(cfg.TracingName))
	}
	r.Use(httpMW.Correlate())
	r.Use(httpMW.AccessLog(cfg.Log, healthPath, metricsPath))
	r.Use(httpMW.Instrument(cfg.Metrics, metricsPath))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Probes
	if cfg.HealthHandler != nil {
		r.GET(healthPath, cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group(normalizeBasePath(cfg.BasePath))
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Contacts
		if cfg.ContactHandler != nil {
			protected.POST("/contact", cfg.ContactHandler.Create)
			protected.GET("/mycontacts", cfg.ContactHandler.List)
			protected.PUT("/contact", cfg.ContactHandler.Update)
			protected.DELETE("/delete/:id", cfg.ContactHandler.Delete)
			protected.GET("/contactById/:id", cfg.ContactHandler.FindByID)
			protected.GET("/contactByEmail/:emailID", cfg.ContactHandler.FindByEmail)
		}
	}

	return r
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
