package handlers

import (
	"fmt"

	"github.com/SscSPs/smb_books/cmd/docs"
	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/middleware"
	"github.com/SscSPs/smb_books/internal/platform/config"
	"github.com/SscSPs/smb_books/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	registerValidators()

	limiterInstance, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}

	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/health", getHealth)

	api := r.Group("/api/v1", middleware.RateLimit(limiterInstance), middleware.PosthogMiddleware(posthogClient))

	// Public sign-in
	registerAuthRoutes(api, services)

	// Legacy import feed, keyed by API key rather than user JWT
	ingestLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}
	ingest := api.Group("/ingest",
		middleware.IngestRateLimit(ingestLimiter),
		middleware.IngestAPIKeyAuth(cfg.IngestAPIKeyHash, cfg.IngestOwnerID))
	RegisterIngestRoutes(ingest, services.Journal)

	setupAPIV1Routes(api, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes applies AuthMiddleware and delegates to specific entity route registrations
func setupAPIV1Routes(
	api *gin.RouterGroup,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterAccountRoutes(v1, service.Account)
	RegisterJournalRoutes(v1, service.Journal)
	RegisterBillRoutes(v1, service.Bill)
	RegisterInvoiceRoutes(v1, service.Invoice)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.APIKeyHeader)
	c.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if cfg.FrontendBaseURL != "" {
		c.AllowOrigins = []string{cfg.FrontendBaseURL}
		c.AllowCredentials = true
	} else {
		c.AllowAllOrigins = true
	}
	return c
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
