package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/kaanyildiz/assignflow/internal/pkg/logger"
	"github.com/kaanyildiz/assignflow/internal/server"
)

// @title AssignFlow API
// @version 1.0
// @description API for the AssignFlow university assignment approval workflow
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@assignflow.app

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
	// A missing .env file is fine; the environment may be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
