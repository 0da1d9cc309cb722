package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SeedAccount is an account preloaded into the in-memory stores. Without
// Postgres nothing else provides accounts, so local runs need at least one.
type SeedAccount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SeedConfig points at a JSON array of SeedAccount values.
type SeedConfig struct {
	AccountsFile string
	Accounts     []SeedAccount
}

func loadSeedAccounts(path string) ([]SeedAccount, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read SEED_ACCOUNTS_FILE: %w", err)
	}
	var accounts []SeedAccount
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("parse SEED_ACCOUNTS_FILE %s: %w", path, err)
	}
	for i, acc := range accounts {
		if acc.ID == "" {
			return nil, fmt.Errorf("seed account %d: id is required", i)
		}
		if acc.Role != "Client" && acc.Role != "Support" {
			return nil, fmt.Errorf("seed account %s: unknown role %q", acc.ID, acc.Role)
		}
	}
	return accounts, nil
}
