package main

import (
	"os"

	_ "github.com/incampus/backend/docs"
	"github.com/incampus/backend/internal/pkg/logger"
	"github.com/incampus/backend/internal/server"
)

// @title InCampus API
// @version 1.0
// @description Campus social network: friends, posts, notifications and realtime events

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
