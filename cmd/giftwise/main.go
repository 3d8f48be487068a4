package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/giftwise/giftwise-cli/internal/cli/commands"
	"github.com/giftwise/giftwise-cli/pkg/logging"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	logging.Setup()

	app := &cli.App{
		Name:    "giftwise",
		Usage:   "AI-powered gift planning and budget tracking CLI",
		Version: Version,
		Commands: []*cli.Command{
			// Core commands
			commands.NewSetupCommand(),
			commands.NewProjectCommand(),
			commands.NewPersonCommand(),
			commands.NewGiftCommand(),
			commands.NewIdeasCommand(),

			// AI features
			commands.NewAICommand(),

			// Reports & data
			commands.NewOverviewCommand(),
			commands.NewBackupCommand(),

			// Servers
			commands.NewServeCommand(),
			commands.NewMcpCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
