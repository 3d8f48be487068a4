package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/giftwise/giftwise-cli/internal/api"
)

// NewServeCommand creates the serve command, which runs the REST API.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Host to bind (overrides config)"},
			&cli.IntFlag{Name: "port", Usage: "Port to listen on (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			s, err := openStore()
			if err != nil {
				return err
			}

			// AI routes degrade to 503 when no key is configured.
			ai, err := newAIClient()
			if err != nil {
				ai = nil
			}

			host := settings.Server.Host
			if c.IsSet("host") {
				host = c.String("host")
			}
			port := settings.Server.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			fmt.Printf("🎁 Giftwise API listening on %s:%d\n", host, port)
			return api.NewServer(s, ai).Run(host, port)
		},
	}
}
