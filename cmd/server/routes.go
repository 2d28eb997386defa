package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"payease.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	verificationHandler *handlers.VerificationHandler
	otpHandler          *handlers.OTPHandler
	adminHandler        *handlers.AdminHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Merchant verification routes (public)
		merchants := v1.Group("/merchants")
		{
			merchants.POST("/signup", d.verificationHandler.Signup)
			merchants.GET("/:id/status", d.verificationHandler.GetStatus)
			merchants.GET("/:id/trust-score", d.verificationHandler.GetTrustScore)
			merchants.GET("/:id/can-list-products", d.verificationHandler.CanListProducts)
			merchants.POST("/:id/verify-phone", d.verificationHandler.VerifyPhone)
		}

		// OTP routes (shared by merchant and user flows)
		otp := v1.Group("/otp")
		{
			otp.POST("/send", d.otpHandler.Send)
			otp.POST("/verify", d.otpHandler.Verify)
			otp.GET("/status", d.otpHandler.Status)
		}

		// Admin review routes
		admin := v1.Group("/admin")
		{
			admin.GET("/merchants/pending", d.adminHandler.ListPending)
			admin.POST("/merchants/:id/approve", d.adminHandler.Approve)
			admin.POST("/merchants/:id/reject", d.adminHandler.Reject)

			admin.GET("/blacklist", d.adminHandler.ListBlacklist)
			admin.POST("/blacklist", d.adminHandler.AddToBlacklist)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
