package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/corebitlabs/auth-api/internal/auth"
	"github.com/corebitlabs/auth-api/internal/config"
	"github.com/corebitlabs/auth-api/internal/crypto"
	"github.com/corebitlabs/auth-api/internal/database"
	"github.com/corebitlabs/auth-api/internal/handler"
	middlewarepkg "github.com/corebitlabs/auth-api/internal/middleware"
	"github.com/corebitlabs/auth-api/internal/repository"
	"github.com/corebitlabs/auth-api/internal/router"
	"github.com/corebitlabs/auth-api/internal/service"
	"github.com/corebitlabs/auth-api/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	encrypter := crypto.NewBcryptEncrypter(cfg.BcryptCost)
	emails := validator.NewEmailValidator(validator.WithMXCheck(cfg.EmailMXCheck))

	usersRepo := repository.NewPGXUsersRepository(pool)

	authService := service.NewAuthService(usersRepo, usersRepo, encrypter, jwtManager, cfg.PhoneRegion)
	userService := service.NewUserService(usersRepo, encrypter, cfg.PhoneRegion)

	notifier := handler.NewWebhookNotifier(nil, cfg.AuditWebhookURL)
	authHandler := handler.NewAuthHandler(authService, emails, notifier)
	userAdminHandler := handler.NewUserAdminHandler(userService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, usersRepo, router.Handlers{
		Auth:  authHandler,
		Users: userAdminHandler,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
