package api

import (
	"net/http"

	"ofx-converter/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// NewRouter registra as rotas do serviço de conversão. guards são aplicados
// apenas ao grupo /api/v1; /health fica sempre aberto.
func NewRouter(converterHandler *handlers.ConverterHandler, guards ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	apiV1 := router.Group("/api/v1", guards...)
	{
		apiV1.POST("/convert/ofx", converterHandler.HandleOFXConversion)
		apiV1.POST("/convert/ofx/report", converterHandler.HandleOFXReport)
		apiV1.POST("/preview", converterHandler.HandlePreview)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "ofx-converter"})
	})

	return router
}
