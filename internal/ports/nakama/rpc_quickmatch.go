package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"tarot/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchRequest selects the table shape to find or create.
type QuickMatchRequest struct {
	SeatCount int    `json:"seat_count"`
	Tier      string `json:"tier"`
}

// QuickMatchResponse is the payload returned to clients when requesting a table.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	req := QuickMatchRequest{SeatCount: config.GetDefaultSeatCount()}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
		}
	}
	if req.SeatCount < 3 || req.SeatCount > 5 {
		return "", runtime.NewError("seat_count must be 3, 4 or 5", 3)
	}

	// Find an open lobby of the requested shape before creating one.
	query := "+label.open:>=1 +label.game:tarot +label.phase:lobby"
	if req.Tier != "" {
		query += " +label.tier:" + req.Tier
	}

	limit := 10
	authoritative := true
	minSize := 0
	maxSize := req.SeatCount - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("MatchList error: %v", err)
		return "", err
	}
	for _, m := range matches {
		var label TableLabel
		if err := json.Unmarshal([]byte(m.GetLabel().GetValue()), &label); err != nil {
			continue
		}
		if label.SeatCount != req.SeatCount {
			continue
		}
		b, _ := json.Marshal(QuickMatchResponse{MatchID: m.MatchId, IsNew: false})
		return string(b), nil
	}

	// Create a new table; seat and owner assignment happens in MatchJoin.
	matchID, err := nk.MatchCreate(ctx, MatchNameTarot, map[string]interface{}{
		"seat_count": float64(req.SeatCount),
		"tier":       req.Tier,
	})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}

	b, _ := json.Marshal(QuickMatchResponse{MatchID: matchID, IsNew: true})
	return string(b), nil
}
