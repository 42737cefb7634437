// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server needs to start.
type Config struct {
	Port string

	// RolesClaim is the token claim the role list is read from. External
	// issuers usually namespace it (e.g. "https://example.com/roles"), so
	// it has to be configurable.
	RolesClaim string

	// MaxLoans and LoanPeriodDays override the lending defaults when set.
	MaxLoans       int
	LoanPeriodDays int

	// UseMemoryStore runs the server against the in-memory ledger instead
	// of Firestore; local development only.
	UseMemoryStore bool
}

// Load builds the configuration from environment variables, applying
// defaults for everything optional.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		RolesClaim:     getEnv("ROLES_CLAIM", "roles"),
		MaxLoans:       5,
		LoanPeriodDays: 7,
		UseMemoryStore: os.Getenv("USE_MEMORY_STORE") == "true",
	}

	if v := os.Getenv("MAX_LOANS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid MAX_LOANS: %q", v)
		}
		cfg.MaxLoans = n
	}

	if v := os.Getenv("LOAN_PERIOD_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid LOAN_PERIOD_DAYS: %q", v)
		}
		cfg.LoanPeriodDays = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
