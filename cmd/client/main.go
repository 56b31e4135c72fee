package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mybestvenue/internal/buildinfo"
	"github.com/dmitrijs2005/mybestvenue/internal/client/cli"
	"github.com/dmitrijs2005/mybestvenue/internal/client/config"
	"github.com/dmitrijs2005/mybestvenue/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Validate already rejected unknown levels.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewTextLogger(os.Stderr, level)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
