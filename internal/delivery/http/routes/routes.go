package routes

import (
	"github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAPIRoutes wires the public payment API and the operator
// surface onto one engine. Auth for the admin group is terminated at
// the gateway in front of this service.
func RegisterAPIRoutes(r *gin.Engine, payment *handlers.PaymentHandler, admin *handlers.AdminHandler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/payments/validate", payment.Validate)
		v1.POST("/payments", payment.Create)
		v1.GET("/payments/:id", payment.Details)
		v1.GET("/payments/:id/status", payment.Status)
		v1.POST("/payments/:id/retry", payment.Retry)
		v1.GET("/payments/:id/chain", payment.RetryChain)

		v1.POST("/pay-links", payment.CreatePayLink)
		v1.GET("/pay-links/:code", payment.ResolvePayLink)
	}

	adminGroup := r.Group("/v1/admin")
	{
		adminGroup.POST("/payments/:id/approve", admin.Approve)
		adminGroup.POST("/payments/:id/reject", admin.Reject)
		adminGroup.POST("/verification/run", admin.RunVerification)
	}
}
