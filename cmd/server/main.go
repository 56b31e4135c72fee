package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/mybestvenue/internal/buildinfo"
	"github.com/dmitrijs2005/mybestvenue/internal/server"
	"github.com/dmitrijs2005/mybestvenue/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("config: %v", err)
		os.Exit(2)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
