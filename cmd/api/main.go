package main

import (
	"os"

	"github.com/yigit/trainerapi/internal/pkg/logger"
	"github.com/yigit/trainerapi/internal/server"
)

// @title Trainer API
// @version 1.0
// @description Pokemon trainers, the pokemon they own, and a school where students enroll in courses.
// @BasePath /api/v1

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Startup failed")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
}
