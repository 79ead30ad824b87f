package api

import (
	stdhttp "net/http"

	intconfig "shuttle/internal/config"
	h "shuttle/internal/http/handlers"
	"shuttle/internal/http/middleware"
	"shuttle/internal/metrics"
	"shuttle/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(metrics.Default), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Rider views
		buses := api.Group("/buses")
		buses.GET("", h.GetBuses)
		buses.GET("/summary", h.GetBusSummary)
		buses.GET("/:id/route", h.GetBusRoute)

		bookings := api.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id/receipt", h.GetBookingReceipt)

		api.POST("/intents", h.CreateIntent)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", middleware.OptionalAdmin(h.Authenticate), h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.RequireAdmin(h.Authenticate), h.Logout)

		// Admin
		admin := api.Group("/admin", middleware.RequireAdmin(h.Authenticate))
		admin.GET("/dashboard", h.GetDashboard)
		admin.PUT("/buses/:id", h.UpdateBus)
		admin.POST("/buses/:id/routes", h.AddRoute)
	}

	h.SetRouter(r)
	return r
}
