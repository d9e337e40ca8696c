package api

import (
	"github.com/estanteapp/estante-api/telemetry"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes mounts the API. requireAuth guards every book and payment
// route; session resolution happens there once per request.
func SetupRoutes(r *gin.Engine, h *Handlers, ah *AuthHandlers, requireAuth gin.HandlerFunc) {
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)

		protected := v1.Group("", requireAuth)
		{
			protected.GET("/books", h.ListBooks)
			protected.POST("/books", h.CreateBook)
			protected.GET("/books/:id", h.GetBook)
			protected.PUT("/books/:id", h.UpdateBook)
			protected.DELETE("/books/:id", h.DeleteBook)

			protected.POST("/payments", h.CreatePayment)
			protected.GET("/payments/events", h.PaymentEventsPoll)
		}
	}
	r.GET("/health", h.Health)
	r.GET("/metrics", telemetry.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
