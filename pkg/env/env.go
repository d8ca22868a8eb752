// Package env provides raw environment lookups for the few values read
// before the typed config loads.
package env

import "os"

// Prefix namespaces the service's environment variables.
const Prefix = "KIRANAKART_"

// Get returns the prefixed variable when set, then the bare name, then the
// fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(Prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
