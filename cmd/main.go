package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library/configs"
	"library/internal/handlers"
	"library/internal/notifications"
	"library/internal/repositories"
	"library/internal/services"
)

func main() {
	cfg := configs.LoadConfig()

	bookRepo := repositories.NewBookRepository()
	userRepo := repositories.NewUserRepository()
	notifier := notifications.ForChannel(cfg.NotifyChannel)

	libraryService := services.NewLibraryService(bookRepo, userRepo, notifier)

	router := gin.Default()

	handlers.RegisterRoutes(router, libraryService, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Starting server on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
