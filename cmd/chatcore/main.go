package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/chatcore/internal/client/cli"
	"github.com/dmitrijs2005/chatcore/internal/client/config"
	"github.com/dmitrijs2005/chatcore/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg, os.Stdout, os.Stderr)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	args := flagx.Positional(os.Args[1:], config.ValueFlags)
	runErr := app.Run(ctx, args)

	if err := app.Close(); err != nil {
		log.Printf("%v", err)
	}
	if runErr != nil {
		log.Fatalf("%v", runErr)
	}

}
