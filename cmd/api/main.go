package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pavankontham/smart-maps/internal/api"
	"github.com/pavankontham/smart-maps/internal/config"
	"github.com/pavankontham/smart-maps/internal/modules/chat"
	"github.com/pavankontham/smart-maps/internal/modules/conditions"
	"github.com/pavankontham/smart-maps/internal/modules/history"
	"github.com/pavankontham/smart-maps/internal/modules/routes"
	"github.com/pavankontham/smart-maps/pkg/email"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"googlemaps.github.io/maps"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. --- Middleware ---
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173", cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Document Store Connection ---
	ctx := context.Background()
	firestoreClient, err := firestore.NewClient(ctx, cfg.GoogleCloudProjectID)
	if err != nil {
		log.Fatalf("Unable to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()
	e.Logger.Info("Connected to Firestore")

	// 4. --- Optional Collaborators ---
	var mapsClient *maps.Client
	if cfg.GoogleMapsAPIKey != "" {
		mapsClient, err = maps.NewClient(maps.WithAPIKey(cfg.GoogleMapsAPIKey))
		if err != nil {
			log.Fatalf("Unable to create Google Maps client: %v", err)
		}
	}

	var emailSender email.ServiceInterface
	if cfg.EmailFrom != "" {
		sender, err := email.NewSESV2Sender(ctx, cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			log.Printf("warning: email sharing disabled: %v", err)
		} else {
			emailSender = sender
		}
	}

	// 5. --- Dependency Injection (Wiring everything up) ---
	// --- History Module ---
	historyRepo := history.NewRepository(firestoreClient)
	historyService := history.NewService(historyRepo, emailSender)
	historyHandler := history.NewHandler(historyService)

	// --- Routes Module ---
	routesService := routes.NewService(mapsClient)
	routesHandler := routes.NewHandler(routesService)

	// --- Conditions Module ---
	conditionsService := conditions.NewService(conditions.APIKeys{
		WeatherAPI:  cfg.WeatherAPIKey,
		TomTom:      cfg.TomTomAPIKey,
		OpenWeather: cfg.OpenWeatherAPIKey,
		Transitland: cfg.TransitlandAPIKey,
	})
	conditionsHandler := conditions.NewHandler(conditionsService)

	// --- Chat Module ---
	chatService := chat.NewService(cfg.GeminiAPIKey)
	chatHandler := chat.NewHandler(chatService)

	// 6. --- Initialize Router ---
	features := api.Features{
		GoogleMaps:   mapsClient != nil,
		EcoChatbot:   cfg.GeminiAPIKey != "",
		EmailSharing: emailSender != nil,
	}
	api.SetupRoutes(e, cfg.JWTSecret, cfg.GoogleMapsAPIKey, features,
		historyHandler,
		routesHandler,
		conditionsHandler,
		chatHandler,
	)

	// 7. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
