package main

import (
	"os"

	"github.com/ozgur/rollcall/internal/pkg/logger"
	"github.com/ozgur/rollcall/internal/server"
)

// @title Rollcall API
// @version 1.0
// @description API for Rollcall course attendance tracking
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@rollcall.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// NewServer orchestrates config loading, database setup, dependency
	// wiring and router construction.
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal is received.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
