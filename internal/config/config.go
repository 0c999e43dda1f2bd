package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// StakeTier is one buy-in level a table can be created at. The stake is the
// per-point value used when settling hand scores into wallets.
type StakeTier struct {
	ID    string `json:"id"`
	Stake int64  `json:"stake"`
}

type GameConfig struct {
	TaxRate     float64     `json:"tax_rate"`
	DefaultTier string      `json:"default_tier"`
	Tiers       []StakeTier `json:"tiers"`
	// DefaultSeatCount is used when match creation does not ask for a size.
	DefaultSeatCount int `json:"default_seat_count"`
	// SettleDelaySeconds is how long a finished trick stays face up before
	// the next trick opens.
	SettleDelaySeconds int `json:"settle_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetDefaultSeatCount returns the configured table size, defaulting to four.
func GetDefaultSeatCount() int {
	if cfg == nil || cfg.DefaultSeatCount < 3 || cfg.DefaultSeatCount > 5 {
		return 4
	}
	return cfg.DefaultSeatCount
}

// GetSettleDelaySeconds returns the trick presentation pause.
func GetSettleDelaySeconds() int {
	if cfg == nil || cfg.SettleDelaySeconds <= 0 {
		return 2
	}
	return cfg.SettleDelaySeconds
}

// GetStake returns the per-point stake for a given tier ID, or the default
// tier's stake if not found.
func GetStake(tierID string) int64 {
	if cfg == nil {
		return 10 // Safe default
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.Stake
		}
	}

	// Fallback to default tier if specific ID not found
	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.Stake
		}
	}

	return 10
}
