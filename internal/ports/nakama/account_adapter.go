package nakama

import (
	"context"

	"tarot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaAccountAdapter backs ports.AccountPort with Nakama's account API.
type NakamaAccountAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk runtime.NakamaModule) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// UpdateProfile sets the username and display name, leaving every other
// account field untouched.
func (a *NakamaAccountAdapter) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	return a.nk.AccountUpdateId(ctx, userID, username, nil, displayName, "", "", "", "")
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
