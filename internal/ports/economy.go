package ports

import "context"

// WalletUpdate is a single signed currency change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort manages player gold.
type EconomyPort interface {
	// GetBalance retrieves the current gold balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies a batch of wallet changes, one per seat,
	// settling a finished hand's scores at the table stake.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
