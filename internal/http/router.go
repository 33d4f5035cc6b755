package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y las rutas del tablon.
func NewRouter(logger *zap.Logger, messageH *MessageHandler, allowOrigin string) *gin.Engine {
	r := gin.New()
	// "/messages/" es un usuario o id vacio y debe contestar 400, no redirigir a "/messages".
	r.RedirectTrailingSlash = false

	// Middlewares basicos: logging, recovery, CORS y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(allowOrigin), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	messages := r.Group("/messages")
	messages.POST("", messageH.CreateMessage)
	messages.GET("", messageH.ListMessages)
	messages.GET("/", messageH.ListMessagesByUser)
	messages.GET("/:username", messageH.ListMessagesByUser)
	messages.PUT("/", messageH.UpdateMessage)
	messages.PUT("/:id", messageH.UpdateMessage)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// corsMiddleware permite que el front-end del navegador llame a la API desde otro origen.
// Los preflight OPTIONS se contestan aqui mismo con 204.
func corsMiddleware(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
