package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gopalt/burnscar-backend-go/internal/config"
	"github.com/gopalt/burnscar-backend-go/internal/handler"
	"github.com/gopalt/burnscar-backend-go/internal/middleware"
)

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(cfg *config.Config, detection *handler.DetectionHandler, regions *handler.RegionHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "burn scar detection service"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/regions", regions.ListStates)
		v1.GET("/regions/:state/districts", regions.ListDistricts)
		v1.POST("/detect", middleware.RateLimit(cfg.DetectRateLimit, time.Minute), detection.Detect)
		v1.GET("/export/:run_id", detection.ExportCSV)
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
