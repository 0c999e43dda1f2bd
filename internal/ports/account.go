package ports

import "context"

// AccountPort updates account profiles, used by onboarding to name fresh
// accounts.
type AccountPort interface {
	// UpdateProfile sets the username and display name on an account.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
