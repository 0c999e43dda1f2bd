package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcVoiceToken, rpcVoiceToken); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameTarot, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(), nil
	}); err != nil {
		return err
	}

	logger.Info("Tarot Go module loaded.")
	return nil
}
