// Package secret resolves API key references from the environment or the
// OS keyring (Keychain, Secret Service, WinCred), so keys never have to live
// in plain config files.
package secret

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// ServiceName identifies updatekit entries in the OS keyring.
	ServiceName = "updatekit"

	envPrefix     = "env:"
	keyringPrefix = "keyring:"
)

// Resolve expands an API key reference into its value. Supported forms:
// "env:NAME" reads the environment, "keyring:NAME" reads the OS keyring,
// anything else is used literally.
func Resolve(ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, envPrefix):
		name := strings.TrimPrefix(ref, envPrefix)
		value, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return value, nil
	case strings.HasPrefix(ref, keyringPrefix):
		name := strings.TrimPrefix(ref, keyringPrefix)
		value, err := keyring.Get(ServiceName, name)
		if err != nil {
			return "", fmt.Errorf("failed to read %s from keyring: %w", name, err)
		}
		return value, nil
	default:
		return ref, nil
	}
}

// Store saves a named secret in the OS keyring.
func Store(name, value string) error {
	if err := keyring.Set(ServiceName, name, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", name, err)
	}
	return nil
}

// Delete removes a named secret from the OS keyring.
func Delete(name string) error {
	if err := keyring.Delete(ServiceName, name); err != nil {
		return fmt.Errorf("failed to delete %s from keyring: %w", name, err)
	}
	return nil
}
