package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Destinations *DestinationHandler
	Bookings     *BookingHandler
	Tips         *TipsHandler
}

// NewRouter mounts every handler under /api/v1 plus an unversioned /health.
func NewRouter(logger *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(Recover(logger), RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	h.Destinations.Register(v1)
	h.Bookings.Register(v1)
	h.Tips.Register(v1)
	return router
}
