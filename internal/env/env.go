//go:build !js || !wasm

package env

import "os"

// Get retrieves an environment variable. Unset and empty are both
// reported as missing so callers can fall back to defaults.
func Get(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// GetOrDefault retrieves an environment variable with a default value
func GetOrDefault(key, defaultValue string) string {
	if value, ok := Get(key); ok {
		return value
	}
	return defaultValue
}
