package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/giftwise/giftwise-cli/internal/config"
	"github.com/giftwise/giftwise-cli/internal/keys"
)

// NewSetupCommand creates the setup command group for API key handling.
func NewSetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure the Gemini API key",
		Subcommands: []*cli.Command{
			{
				Name:  "key",
				Usage: "Store the Gemini API key in the system keyring",
				Action: func(c *cli.Context) error {
					return handleSetKey()
				},
			},
			{
				Name:  "show",
				Usage: "Show which key source is configured",
				Action: func(c *cli.Context) error {
					return handleShowKey()
				},
			},
			{
				Name:  "clear",
				Usage: "Remove the stored API key",
				Action: func(c *cli.Context) error {
					return handleClearKey()
				},
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowCommandHelp(c, "setup")
		},
	}
}

func handleSetKey() error {
	fmt.Print("Enter your Gemini API key: ")
	var apiKey string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("could not read API key: %w", err)
		}
		apiKey = string(raw)
	} else {
		if _, err := fmt.Scanln(&apiKey); err != nil {
			return fmt.Errorf("could not read API key: %w", err)
		}
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if err := keys.Store(apiKey); err != nil {
		return fmt.Errorf("could not store API key: %w", err)
	}
	fmt.Println("✅ API key stored.")
	return nil
}

func handleShowKey() error {
	if os.Getenv("GEMINI_API_KEY") != "" {
		fmt.Println("Using GEMINI_API_KEY from the environment.")
		return nil
	}
	if k, err := keys.Retrieve(); err == nil && k != "" {
		head, tail := maskEnd(k)
		fmt.Printf("Key stored in the system keyring (%s...%s).\n", head, tail)
		return nil
	}
	cfg, err := config.LoadConfig()
	if err == nil && cfg.APIKey != "" {
		head, tail := maskEnd(cfg.APIKey)
		fmt.Printf("Key stored in %s (%s...%s). Consider 'giftwise setup key' to move it to the keyring.\n",
			mustConfigPath(), head, tail)
		return nil
	}
	fmt.Println("No API key configured. Run 'giftwise setup key' or export GEMINI_API_KEY.")
	return nil
}

func handleClearKey() error {
	if err := keys.Delete(); err != nil {
		return fmt.Errorf("could not remove API key: %w", err)
	}
	fmt.Println("✅ API key removed.")
	return nil
}

func maskEnd(k string) (string, string) {
	if len(k) < 8 {
		return "", ""
	}
	return k[:4], k[len(k)-4:]
}

func mustConfigPath() string {
	p, err := config.GetConfigPath()
	if err != nil {
		return "the config file"
	}
	return p
}
