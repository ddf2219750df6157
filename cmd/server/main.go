package main

import (
	"context"
	"log"
	"os"

	"github.com/Shivamkillarikar/CityGuardian/internal/buildinfo"
	"github.com/Shivamkillarikar/CityGuardian/internal/logging"
	"github.com/Shivamkillarikar/CityGuardian/internal/server"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.Setup(cfg.LogFormat, os.Stdout)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", logging.ErrorAttrs(err)...)
		os.Exit(1)
	}

	app.Run(ctx)

}
