package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/kintai-dev/kintai-backend-go/internal/config"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/timeclock"
	appHTTP "github.com/kintai-dev/kintai-backend-go/internal/handler/http"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/email"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-dev/kintai-backend-go/internal/repository/postgresql"
	authService "github.com/kintai-dev/kintai-backend-go/internal/service/auth"
	timeclockService "github.com/kintai-dev/kintai-backend-go/internal/service/timeclock"
	userService "github.com/kintai-dev/kintai-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(dsn); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	eventRepo := postgresql.NewEventRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	authSvc := authService.NewAuthService(userRepo, jwtService)
	timeclockSvc := timeclockService.NewTimeclockService(eventRepo, timeclock.DefaultShiftConfig())
	userSvc := userService.NewUserService(userRepo, emailService)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	timeclockHandler := appHTTP.NewTimeclockHandler(timeclockSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, timeclockHandler, userHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
