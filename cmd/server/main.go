package main

import (
	"log"

	appfx "github.com/amityadav/searchclone/internal/fx"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		appfx.ConfigModule,  // Provides: config.Config
		appfx.SerpAPIModule, // Provides: *serpapi.Client
		appfx.CoreModule,    // Provides: *core.SearchCore
		appfx.ServerModule,  // Starts HTTP server

		// Use simple console logger for cleaner output
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	// Run blocks until the app receives a shutdown signal
	app.Run()
}
