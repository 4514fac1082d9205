package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"medassist/internal/audit"
	"medassist/internal/auth"
	"medassist/internal/httpserver"
	"medassist/internal/logger"
	"medassist/internal/models"
	"medassist/internal/storage"
	"medassist/internal/store"
	"medassist/internal/synthesizer"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.MedicalImage{},
		&models.Report{},
		&models.AuditLog{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	files, err := storage.NewLocal(uploadDir)
	if err != nil {
		lg.Fatalw("upload dir init failed", "error", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		lg.Fatalw("JWT_SECRET is empty")
	}
	issuer := auth.NewIssuer(secret, tokenTTL())

	st := store.NewGorm(db)
	rec := audit.NewRecorder(st.Audit, lg)
	router := httpserver.NewRouter(st, issuer, synthesizer.Demo{}, files, rec, lg)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		lg.Infow("listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalw("server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	lg.Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Errorw("shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func tokenTTL() time.Duration {
	if s := os.Getenv("JWT_EXPIRES_IN"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return auth.DefaultTTL
}
