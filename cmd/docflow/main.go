package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/docflow/internal/app"
	"github.com/dmitrijs2005/docflow/internal/buildinfo"
	"github.com/dmitrijs2005/docflow/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	a, err := app.NewApp(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
