package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "shuttle/internal/config"
	intdb "shuttle/internal/db"
	router "shuttle/internal/http"
	h "shuttle/internal/http/handlers"
	"shuttle/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.InitLogger(env.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		logger.Fatal("gagal konek database", zap.String("driver", env.DBDriver), zap.Error(err))
	}
	defer intconfig.CloseDB()

	startCtx, startCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if env.DBAutoMigrate || env.DBDriver == intconfig.DriverSQLite {
		if err := intdb.EnsureSchema(startCtx, db, env.DBDriver); err != nil {
			startCancel()
			logger.Fatal("gagal membuat schema", zap.Error(err))
		}
	}
	h.Configure(env)
	if err := h.BootstrapAdmin(startCtx, env.AdminBootstrapUsername, env.AdminBootstrapPassword); err != nil {
		logger.Warn("bootstrap admin gagal", zap.Error(err))
	}
	startCancel()

	// Router (Gin engine)
	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server berjalan", zap.String("addr", env.AppAddr), zap.String("db_driver", env.DBDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("gagal menjalankan server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown server gagal", zap.Error(err))
	}

	logger.Info("server berhenti dengan aman")
}
