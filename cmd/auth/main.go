package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/campusgrid/campusgrid/internal/bootstrap"
	"github.com/campusgrid/campusgrid/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger("auth")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	srv, err := bootstrap.BuildAuthServer(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize auth service")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		lgr.Error().Err(err).Msg("Auth service exited with error")
		os.Exit(1)
	}
}
