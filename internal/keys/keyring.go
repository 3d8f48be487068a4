// Package keys stores the Gemini API key in the system keyring, with a
// plain-file fallback for headless systems where no keyring service is
// available.
package keys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "giftwise"
	keyringUser    = "gemini-api-key"
)

var (
	// fallbackMode indicates if we're using file-based fallback (headless systems)
	fallbackMode    bool
	fallbackModeMu  sync.RWMutex
	fallbackChecked bool
)

// checkKeyringAvailable tests if system keyring is available
func checkKeyringAvailable() bool {
	fallbackModeMu.Lock()
	defer fallbackModeMu.Unlock()

	if fallbackChecked {
		return !fallbackMode
	}

	testKey := "giftwise-keyring-test"
	err := keyring.Set(keyringService, testKey, "test")
	if err != nil {
		fallbackMode = true
		fallbackChecked = true
		return false
	}

	_ = keyring.Delete(keyringService, testKey)
	fallbackChecked = true
	return true
}

func isFallbackMode() bool {
	fallbackModeMu.RLock()
	defer fallbackModeMu.RUnlock()
	return fallbackMode
}

func getFallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".giftwise", ".api_key"), nil
}

// Store saves the API key in the system keyring or the fallback file.
func Store(apiKey string) error {
	if checkKeyringAvailable() {
		if err := keyring.Set(keyringService, keyringUser, apiKey); err != nil {
			return fmt.Errorf("failed to store key in keyring: %w", err)
		}
		return nil
	}
	return storeFallbackKey(apiKey)
}

// Retrieve loads the API key from the system keyring or the fallback file.
func Retrieve() (string, error) {
	if !isFallbackMode() && checkKeyringAvailable() {
		key, err := keyring.Get(keyringService, keyringUser)
		if err != nil {
			return "", fmt.Errorf("key not found in keyring: %w", err)
		}
		return key, nil
	}

	key, err := retrieveFallbackKey()
	if err != nil {
		return "", fmt.Errorf("key not found in fallback: %w", err)
	}
	return key, nil
}

// Delete removes the API key from wherever it is stored.
func Delete() error {
	var kerr error
	if !isFallbackMode() && checkKeyringAvailable() {
		kerr = keyring.Delete(keyringService, keyringUser)
	}
	path, err := getFallbackPath()
	if err == nil {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return rmErr
		}
	}
	if kerr != nil && kerr != keyring.ErrNotFound {
		return kerr
	}
	return nil
}

func storeFallbackKey(apiKey string) error {
	path, err := getFallbackPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(apiKey+"\n"), 0600)
}

func retrieveFallbackKey() (string, error) {
	path, err := getFallbackPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("fallback key file is empty")
	}
	return key, nil
}
