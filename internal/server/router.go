package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/sarvaliya/folio/internal/asset"
	"github.com/sarvaliya/folio/internal/auth"
	"github.com/sarvaliya/folio/internal/bucket"
	"github.com/sarvaliya/folio/internal/config"
	"github.com/sarvaliya/folio/internal/content"
	"github.com/sarvaliya/folio/internal/kv"
	"github.com/sarvaliya/folio/internal/logger"
	"github.com/sarvaliya/folio/internal/metrics"
	"github.com/sarvaliya/folio/internal/response"
	"go.uber.org/zap"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config        config.Config
	Logger        *zap.Logger
	KV            kv.Store
	AuthService   *auth.Service
	BucketService *bucket.Service
	AssetService  *asset.Service
	Content       *content.Document
}

// NewHandler returns the router wrapped in the CORS policy.
func NewHandler(deps Dependencies) http.Handler {
	cfg := deps.Config.CORS
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Length", logger.CorrelationIDHeader},
		MaxAge:         cfg.MaxAge,
	})(NewRouter(deps))
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	errs := response.NewWriter(deps.Config.Server.ErrorFormat)

	router := gin.New()
	if deps.Config.Server.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = deps.Config.Server.MaxMultipartMemory
	}
	router.Use(logger.Middleware())
	router.Use(logger.AccessLog(log))
	router.Use(metrics.Middleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("correlation_id", logger.CorrelationID(c)),
		)
		errs.Internal(c, recovered)
	}))

	registerHealthRoutes(router, deps)
	if path := deps.Config.Metrics.PrometheusPath; path != "" {
		metrics.Register(router, path)
	}

	api := router.Group(deps.Config.Server.RoutePrefix)
	if deps.AuthService != nil {
		api.Use(auth.AuthMiddleware(deps.AuthService, errs))
	}

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.AssetService != nil {
		asset.RegisterRoutes(api, deps.AssetService, errs)
	}
	if deps.BucketService != nil {
		bucket.RegisterRoutes(api, deps.BucketService)
	}
	content.RegisterRoutes(api, deps.Content, errs)

	return router
}
