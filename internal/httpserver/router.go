package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront/internal/metrics"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *zap.Logger, corsOrigins []string, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.LoggerWithWriter(zap.NewStdLog(logger).Writer()),
		gin.Recovery(),
		metricsMiddleware(),
	)

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.StorePing))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.POST("/sessions", h.createSession)
	api.GET("/catalog", h.getCatalog)
	api.GET("/quote", h.getQuote)

	scoped := api.Group("", sessionMiddleware())
	scoped.GET("/basket", h.getBasket)
	scoped.POST("/basket/items", h.addItem)
	scoped.PUT("/basket/items/:sku", h.setItemQuantity)
	scoped.DELETE("/basket/items/:sku", h.removeItem)
	scoped.DELETE("/basket", h.clearBasket)
	scoped.POST("/checkout", h.openCheckout)
	scoped.POST("/checkout/events", h.checkoutEvent)
	scoped.POST("/checkout/continue", h.continueCheckout)
	scoped.GET("/checkout", h.checkoutState)

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "store not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
