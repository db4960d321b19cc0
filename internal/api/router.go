package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trendlinehq/builder-api/internal/api/handlers"
	"github.com/trendlinehq/builder-api/internal/api/middleware"
	"github.com/trendlinehq/builder-api/internal/refdata"
	"github.com/trendlinehq/builder-api/internal/services"
	"github.com/trendlinehq/builder-api/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, db *gorm.DB, store *refdata.Store, engine *services.EngineClient, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	shareHandler := handlers.NewShareHandler(store, cfg.ShareOrigin)
	referenceHandler := handlers.NewReferenceHandler(store)
	buildsHandler := handlers.NewBuildsHandler(db, store, engine)
	queryHandler := handlers.NewQueryHandler(store, engine)

	// Health endpoints
	group.GET("/health", healthHandler.GetHealth)
	group.GET("/ready", healthHandler.GetReady)

	// Share link codec
	group.GET("/share/decode", shareHandler.DecodeShareLink)
	group.POST("/share/encode", shareHandler.EncodeShareLink)

	// Reference data
	group.GET("/reference/teams", referenceHandler.ListTeams)
	group.GET("/reference/referees", referenceHandler.ListReferees)
	group.GET("/reference/players/search", referenceHandler.SearchPlayers)

	// Query execution (rate limited per client)
	queryGroup := group.Group("/query")
	queryGroup.Use(middleware.OptionalAuth(cfg.JWTSecret))
	queryGroup.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	{
		queryGroup.POST("", queryHandler.RunQuery)
		queryGroup.POST("/upcoming", queryHandler.RunUpcoming)
		queryGroup.POST("/upcoming-props", queryHandler.RunUpcomingProps)
	}

	// Saved builds (owner scoped)
	buildGroup := group.Group("/builds")
	buildGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		buildGroup.GET("", buildsHandler.ListBuilds)
		buildGroup.POST("", buildsHandler.CreateBuild)
		buildGroup.GET("/:id", buildsHandler.GetBuild)
		buildGroup.PUT("/:id", buildsHandler.UpdateBuild)
		buildGroup.DELETE("/:id", buildsHandler.DeleteBuild)
		buildGroup.POST("/:id/run", buildsHandler.RunBuild)
	}
}
