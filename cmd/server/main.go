package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatboard/internal/config"
	"chatboard/internal/handler"
	"chatboard/internal/middleware"
	"chatboard/internal/repository"
	"chatboard/internal/service"
	"chatboard/internal/session"
	"chatboard/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Migration ---
	if err := config.Migrate(dbPool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Sessions ---
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTLHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	messageRepo := repository.NewMessageRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo)
	chatService := service.NewChatService(messageRepo, userRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessions, cfg.AppName)
	chatHandler := handler.NewChatHandler(chatService, cfg.AppName)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()
	router.SetHTMLTemplate(web.Templates())

	// --- Initialize Middlewares ---
	sessionMW := middleware.RequireSession(sessions)
	guestMW := middleware.RedirectIfAuthenticated(sessions)

	// --- Register Routes ---
	authHandler.RegisterAuthRoutes(router, sessionMW, guestMW)
	chatHandler.RegisterChatRoutes(router, sessionMW)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
