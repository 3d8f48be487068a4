package commands

// Helper functions shared across commands

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/AlecAivazis/survey/v2"

	"github.com/giftwise/giftwise-cli/internal/config"
	"github.com/giftwise/giftwise-cli/internal/gemini"
	"github.com/giftwise/giftwise-cli/internal/models"
	"github.com/giftwise/giftwise-cli/internal/storage"
	"github.com/giftwise/giftwise-cli/internal/store"
	pkgconfig "github.com/giftwise/giftwise-cli/pkg/config"
)

var (
	settingsOnce sync.Once
	settings     *pkgconfig.Config
	settingsErr  error
)

func loadSettings() (*pkgconfig.Config, error) {
	settingsOnce.Do(func() {
		settings, settingsErr = pkgconfig.Load()
	})
	return settings, settingsErr
}

// openStore wires storage, persisted config, and the project store together.
// Migration runs inside store.Open, so every command sees a valid index.
func openStore() (*store.Store, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	dir := cfg.Data.Dir
	if dir == "" {
		dir, err = config.DataDir()
		if err != nil {
			return nil, err
		}
	}

	kv, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}
	persisted, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(kv, persisted)
}

func newAIClient() (*gemini.Client, error) {
	c, err := gemini.NewClient()
	if err != nil {
		return nil, err
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("no Gemini API key configured; run 'giftwise setup key' or set GEMINI_API_KEY")
	}
	return c, nil
}

// money renders an amount with the configured currency symbol, dropping the
// decimals when they are zero.
func money(amount float64) string {
	symbol := "£"
	if cfg, err := loadSettings(); err == nil && cfg.Currency != "" {
		symbol = cfg.Currency
	}
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%s%d", symbol, int64(amount))
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// shortID abbreviates a project id for listings. Imported backups may carry
// ids of any length, so short ids pass through unchanged.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// askForConfirmation prompts before a destructive operation.
func askForConfirmation(message string) bool {
	confirmed := false
	_ = survey.AskOne(&survey.Confirm{Message: message}, &confirmed)
	return confirmed
}

// resolvePerson finds a person in the active project by name or id.
func resolvePerson(s *store.Store, ref string) (models.Person, error) {
	if p, ok := s.FindPerson(ref); ok {
		return p, nil
	}
	return models.Person{}, fmt.Errorf("no person matching %q in the active project", ref)
}

// resolveGift finds a gift in the active project by id.
func resolveGift(s *store.Store, ref string) (models.Gift, error) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return models.Gift{}, fmt.Errorf("gift id must be a number, got %q", ref)
	}
	if g, ok := s.Gift(id); ok {
		return g, nil
	}
	return models.Gift{}, fmt.Errorf("no gift with id %s in the active project", ref)
}

func statusIcon(s models.Status) string {
	switch s {
	case models.StatusBought:
		return "🛍️"
	case models.StatusWrapped:
		return "🎁"
	default:
		return "💡"
	}
}
