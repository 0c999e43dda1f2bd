package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"tarot/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// VoiceTokenRequest asks for a signed Vivox token. MatchID is required for
// join tokens and names the table channel to join.
type VoiceTokenRequest struct {
	Action  string `json:"action"` // "login" or "join"
	MatchID string `json:"match_id"`
}

type VoiceTokenResponse struct {
	Token   string `json:"token"`
	Channel string `json:"channel,omitempty"`
}

// rpcVoiceToken signs a Vivox access token for the authenticated user. Vivox
// credentials come from the runtime environment.
func rpcVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", 16) // UNAUTHENTICATED
	}

	var req VoiceTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	svc := app.NewVoiceService(env["vivox_secret"], env["vivox_issuer"], env["vivox_domain"], 0)

	channel := ""
	if req.Action == app.VoiceActionJoin {
		if req.MatchID == "" {
			return "", runtime.NewError("match_id required for join", 3)
		}
		channel = app.TableChannel(req.MatchID)
	}

	token, err := svc.GenerateToken(userID, req.Action, channel)
	if err != nil {
		logger.Error("rpcVoiceToken: %v", err)
		return "", runtime.NewError("could not sign voice token", 13) // INTERNAL
	}

	b, _ := json.Marshal(VoiceTokenResponse{Token: token, Channel: channel})
	return string(b), nil
}
