package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
	router "alhudha-backend/internal/http"
	"alhudha-backend/internal/session"
	"alhudha-backend/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	utils.InitLogger(env.GinMode)

	if env.DatabaseURL == "" {
		logrus.Fatal("DATABASE_URL is required")
	}

	if _, err := intconfig.ConnectDB(env.DatabaseURL); err != nil {
		// endpoints answer 503 until the database comes back
		logrus.WithError(err).Warn("database not reachable at startup")
	}
	defer intconfig.CloseDB()

	// schema setup and seeding must not delay serving
	go func() {
		if err := intconfig.EnsureDB(); err != nil {
			logrus.WithError(err).Warn("skipping migration, database unavailable")
			return
		}
		if err := intdb.Migrate(intconfig.DB); err != nil {
			logrus.WithError(err).Error("migration failed")
			return
		}
		logrus.Info("database schema ready")
	}()

	sessions := session.NewStore(env.SessionTTL)
	defer sessions.Close()

	r := router.NewRouter(env, sessions)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", env.AppAddr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("shutdown failed")
	}

	logrus.Info("server stopped")
}
