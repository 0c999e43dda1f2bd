package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"

	"tarot/internal/app"
	"tarot/internal/config"
	"tarot/internal/domain"
	"tarot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// TableLabel is the JSON match label used for listing and quick-match queries.
type TableLabel struct {
	Open      int    `json:"open"`
	Game      string `json:"game"`
	Phase     string `json:"phase"`
	Tier      string `json:"tier"`
	SeatCount int    `json:"seat_count"`
}

// MatchState holds the authoritative runtime state for one table.
type MatchState struct {
	SeatCount int      `json:"seat_count"`
	Seats     []string `json:"seats"`      // user IDs, empty string means the seat is open
	OwnerSeat int      `json:"owner_seat"` // seat allowed to start deals
	Tier      string   `json:"tier"`
	Stake     int64    `json:"stake"` // wallet currency per score point
	Tick      int64    `json:"tick"`

	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil while the table is in the lobby
	Economy   ports.EconomyPort           `json:"-"`

	// SettleAt and RedealAt are the ticks at which a pending trick settle or
	// all-pass redeal fires; zero means no timer is armed.
	SettleAt    int64 `json:"settle_at"`
	RedealAt    int64 `json:"redeal_at"`
	SettleTicks int64 `json:"settle_ticks"`
}

func (ms *MatchState) OpenSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) OccupiedSeatCount() int {
	return ms.SeatCount - ms.OpenSeatCount()
}

// SeatOf returns the seat of a user ID, or -1 when not seated.
func (ms *MatchState) SeatOf(userID string) int {
	for i, id := range ms.Seats {
		if id != "" && id == userID {
			return i
		}
	}
	return -1
}

// Client request payloads.
type bidRequest struct {
	Bid string `json:"bid"`
}

type kingCallRequest struct {
	Suit domain.Suit `json:"suit"`
}

type discardRequest struct {
	Cards []domain.Card `json:"cards"`
}

type playRequest struct {
	Card domain.Card `json:"card"`
}

// ActionRejected is sent privately to the actor of a refused action.
type ActionRejected struct {
	Op      int64  `json:"op"`
	Class   string `json:"class"`
	Message string `json:"message"`
}

// TableSeat is one roster entry of a TableSnapshot.
type TableSeat struct {
	Seat        int    `json:"seat"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Owner       bool   `json:"owner"`
}

// TableSnapshot is broadcast whenever the roster changes.
type TableSnapshot struct {
	SeatCount int         `json:"seat_count"`
	Seats     []TableSeat `json:"seats"`
	OwnerSeat int         `json:"owner_seat"`
	Phase     string      `json:"phase"`
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created. Params may carry "seat_count"
// (3 to 5) and "tier" from the creating RPC.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	seatCount := config.GetDefaultSeatCount()
	if v, ok := params["seat_count"]; ok {
		if n, ok := v.(float64); ok && int(n) >= 3 && int(n) <= 5 {
			seatCount = int(n)
		}
	}
	tier := ""
	if v, ok := params["tier"].(string); ok {
		tier = v
	}

	state := &MatchState{
		SeatCount:   seatCount,
		Seats:       make([]string, seatCount),
		OwnerSeat:   -1,
		Tier:        tier,
		Stake:       config.GetStake(tier),
		Presences:   make(map[string]runtime.Presence),
		App:         app.NewService(nil),
		Economy:     NewNakamaEconomyAdapter(nk),
		SettleTicks: int64(config.GetSettleDelaySeconds()),
	}

	labelBytes, err := json.Marshal(mh.label(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Hands are not resumable, so a table only admits players in the lobby.
	if matchState.Game != nil {
		return state, false, "hand in progress"
	}
	if matchState.OpenSeatCount() <= 0 {
		return state, false, "table full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
		}
	}

	if matchState.OwnerSeat < 0 || matchState.Seats[matchState.OwnerSeat] == "" {
		matchState.OwnerSeat = firstOccupiedSeat(matchState.Seats)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTableState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match. A departure
// mid-hand ends the table since hands cannot be resumed.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	seatedLeaver := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if seat := matchState.SeatOf(p.GetUserId()); seat >= 0 {
			matchState.Seats[seat] = ""
			seatedLeaver = true
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
		}
	}

	if seatedLeaver && matchState.Game != nil && matchState.Game.Phase != domain.PhaseFinished {
		logger.Info("MatchLeave: Seated player left mid-hand, closing the table.")
		return nil
	}
	if matchState.OccupiedSeatCount() == 0 {
		logger.Info("MatchLeave: Terminating empty table.")
		return nil
	}

	// A departure after the hand is scored drops the table back to the lobby
	// so the freed seat can be filled before the next deal.
	if seatedLeaver && matchState.Game != nil {
		matchState.Game = nil
		matchState.SettleAt = 0
		matchState.RedealAt = 0
	}

	if matchState.OwnerSeat < 0 || matchState.Seats[matchState.OwnerSeat] == "" {
		matchState.OwnerSeat = firstOccupiedSeat(matchState.Seats)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTableState(matchState, dispatcher, logger)

	return matchState
}

func firstOccupiedSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" {
			return i
		}
	}
	return -1
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartDeal:
			mh.handleStartDeal(matchState, dispatcher, logger, msg)
		case OpBid:
			mh.handleBid(matchState, dispatcher, logger, msg)
		case OpKingCall:
			mh.handleKingCall(matchState, dispatcher, logger, msg)
		case OpDiscard:
			mh.handleDiscard(matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(matchState, dispatcher, logger, msg)
		case OpRestart:
			mh.handleRestart(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.runTimers(ctx, matchState, dispatcher, logger)

	return matchState
}

// runTimers fires the trick-settle and all-pass redeal timers.
func (mh *matchHandler) runTimers(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		state.SettleAt = 0
		state.RedealAt = 0
		return
	}

	if state.RedealAt > 0 && state.Tick >= state.RedealAt {
		state.RedealAt = 0
		game, events, err := state.App.Redeal(state.Game)
		if err != nil {
			logger.Error("runTimers: Redeal failed: %v", err)
			state.Game = nil
			mh.updateLabel(state, dispatcher, logger)
			return
		}
		state.Game = game
		mh.dispatchEvents(state, dispatcher, logger, events)
		return
	}

	if state.Game.Settling && state.SettleAt > 0 && state.Tick >= state.SettleAt {
		state.SettleAt = 0
		events, err := state.App.FinishSettle(state.Game)
		if err != nil {
			// Scoring invariants failed; the hand is unrecoverable.
			logger.Error("runTimers: Settle failed: %v", err)
			state.Game = nil
			mh.updateLabel(state, dispatcher, logger)
			return
		}
		mh.dispatchEvents(state, dispatcher, logger, events)

		if state.Game.Phase == domain.PhaseFinished {
			mh.settleWallets(ctx, state, logger, events)
			mh.updateLabel(state, dispatcher, logger)
		}
	}
}

// settleWallets applies the finished hand's seat scores to player wallets at
// the table's stake, minus the configured tax on winnings.
func (mh *matchHandler) settleWallets(ctx context.Context, state *MatchState, logger runtime.Logger, events []app.Event) {
	if state.Economy == nil || state.Stake <= 0 {
		return
	}
	var result *domain.HandResult
	for _, ev := range events {
		if ev.Kind == app.EventHandFinished {
			p := ev.Payload.(app.HandFinishedPayload)
			result = &p.Result
			break
		}
	}
	if result == nil {
		return
	}

	taxRate := 0.0
	if cfg := config.GetGameConfig(); cfg != nil {
		taxRate = cfg.TaxRate
	}

	updates := make([]ports.WalletUpdate, 0, len(result.SeatScores))
	for seat, score := range result.SeatScores {
		userID := state.Seats[seat]
		if userID == "" {
			continue
		}
		amount := int64(math.Round(score * float64(state.Stake)))
		if amount > 0 && taxRate > 0 {
			amount -= int64(math.Round(float64(amount) * taxRate))
		}
		if amount == 0 {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: userID,
			Amount: amount,
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"reason":   "hand_settlement",
			},
		})
	}
	if len(updates) == 0 {
		return
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("settleWallets: Failed to update balances: %v", err)
	}
}

func (mh *matchHandler) handleStartDeal(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.SeatOf(msg.GetUserId())
	if senderSeat != state.OwnerSeat {
		logger.Warn("handleStartDeal: User %s is not the table owner.", msg.GetUserId())
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("only the table owner may deal"))
		return
	}
	if state.Game != nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("a hand is already underway"))
		return
	}
	if state.OccupiedSeatCount() != state.SeatCount {
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("table is not full"))
		return
	}

	game, events, err := state.App.StartDeal(state.SeatCount, 0)
	if err != nil {
		logger.Error("handleStartDeal: %v", err)
		mh.sendRejected(state, dispatcher, logger, msg, err)
		return
	}
	state.Game = game
	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(state, dispatcher, logger, events)
	logger.Info("handleStartDeal: Hand dealt to %d seats.", state.SeatCount)
}

func (mh *matchHandler) handleBid(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.SeatOf(msg.GetUserId())
	if senderSeat < 0 || state.Game == nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ErrWrongPhase)
		return
	}

	var req bidRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("malformed bid payload"))
		return
	}
	bid, err := domain.ParseBid(req.Bid)
	if err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ErrUnknownBid)
		return
	}

	events, err := state.App.SubmitBid(state.Game, senderSeat, bid)
	if err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)

	if hasEvent(events, app.EventAllPassed) {
		state.RedealAt = state.Tick + state.SettleTicks
	}
}

func (mh *matchHandler) handleKingCall(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.SeatOf(msg.GetUserId())
	if senderSeat < 0 || state.Game == nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ErrWrongPhase)
		return
	}

	var req kingCallRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("malformed king call payload"))
		return
	}

	events, err := state.App.SubmitKingCall(state.Game, senderSeat, req.Suit)
	if err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleDiscard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.SeatOf(msg.GetUserId())
	if senderSeat < 0 || state.Game == nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ErrWrongPhase)
		return
	}

	var req discardRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("malformed discard payload"))
		return
	}

	events, err := state.App.SubmitDiscard(state.Game, senderSeat, req.Cards)
	if err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlayCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.SeatOf(msg.GetUserId())
	if senderSeat < 0 || state.Game == nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ErrWrongPhase)
		return
	}

	var req playRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("malformed play payload"))
		return
	}

	events, err := state.App.SubmitPlay(state.Game, senderSeat, req.Card)
	if err != nil {
		logger.Warn("handlePlayCard: Seat %d rejected: %v", senderSeat, err)
		mh.sendRejected(state, dispatcher, logger, msg, err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)

	if state.Game.Settling {
		state.SettleAt = state.Tick + state.SettleTicks
	}
}

func (mh *matchHandler) handleRestart(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.SeatOf(msg.GetUserId())
	if senderSeat != state.OwnerSeat {
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("only the table owner may deal"))
		return
	}
	if state.Game == nil {
		mh.sendRejected(state, dispatcher, logger, msg, app.ErrHandNotOver)
		return
	}
	if state.OccupiedSeatCount() != state.SeatCount {
		mh.sendRejected(state, dispatcher, logger, msg, app.ProtocolError("table is not full"))
		return
	}

	game, events, err := state.App.Restart(state.Game)
	if err != nil {
		mh.sendRejected(state, dispatcher, logger, msg, err)
		return
	}
	// Any timer armed for the finished hand must not fire on the new one.
	state.SettleAt = 0
	state.RedealAt = 0
	state.Game = game
	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(state, dispatcher, logger, events)
}

var eventOpCodes = map[app.EventKind]int64{
	app.EventHandDealt:        OpHandDealt,
	app.EventBiddingTurn:      OpBiddingTurn,
	app.EventBidRecorded:      OpBidRecorded,
	app.EventBiddingResolved:  OpBiddingResolved,
	app.EventAllPassed:        OpAllPassed,
	app.EventKingCallRequest:  OpKingCallRequest,
	app.EventKingCallResolved: OpKingCallResolved,
	app.EventDogRequest:       OpDogRequest,
	app.EventDogResolved:      OpDogResolved,
	app.EventHandUpdated:      OpHandUpdated,
	app.EventCardPlayed:       OpCardPlayed,
	app.EventTrickResolved:    OpTrickResolved,
	app.EventTrickReset:       OpTrickReset,
	app.EventHandFinished:     OpHandFinished,
}

func hasEvent(events []app.Event, kind app.EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.dispatchEvent(state, dispatcher, logger, ev)
	}
}

// dispatchEvent marshals one app event and broadcasts it, honoring targeted
// seat recipients.
func (mh *matchHandler) dispatchEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		logger.Warn("dispatchEvent: Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("dispatchEvent: Failed to marshal %s: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Seats) > 0 {
		for _, seat := range ev.Seats {
			if seat < 0 || seat >= len(state.Seats) {
				continue
			}
			if p, ok := state.Presences[state.Seats[seat]]; ok {
				recipients = append(recipients, p)
			}
		}
		// A targeted event with no connected recipient must not leak to the
		// rest of the table.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("dispatchEvent: Broadcast failed for %s: %v", ev.Kind, err)
	}
}

// sendRejected reports a refused action to its sender only.
func (mh *matchHandler) sendRejected(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData, cause error) {
	payload := ActionRejected{
		Op:      msg.GetOpCode(),
		Class:   string(app.Classify(cause)),
		Message: cause.Error(),
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendRejected: Failed to marshal: %v", err)
		return
	}

	presence, ok := state.Presences[msg.GetUserId()]
	if !ok {
		logger.Warn("sendRejected: Presence not found for %s", msg.GetUserId())
		return
	}
	if err := dispatcher.BroadcastMessage(OpActionRejected, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendRejected: Broadcast failed: %v", err)
	}
}

func (mh *matchHandler) broadcastTableState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snapshot := TableSnapshot{
		SeatCount: state.SeatCount,
		OwnerSeat: state.OwnerSeat,
		Phase:     mh.phase(state),
	}
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			displayName = p.GetUsername()
		}
		snapshot.Seats = append(snapshot.Seats, TableSeat{
			Seat:        i,
			UserID:      userID,
			DisplayName: displayName,
			Owner:       i == state.OwnerSeat,
		})
	}

	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastTableState: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpTableState, bytes, nil, nil, true); err != nil {
		logger.Error("broadcastTableState: Broadcast failed: %v", err)
	}
}

func (mh *matchHandler) phase(state *MatchState) string {
	if state.Game == nil {
		return "lobby"
	}
	return string(state.Game.Phase)
}

func (mh *matchHandler) label(state *MatchState) TableLabel {
	return TableLabel{
		Open:      state.OpenSeatCount(),
		Game:      "tarot",
		Phase:     mh.phase(state),
		Tier:      state.Tier,
		SeatCount: state.SeatCount,
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(mh.label(state))
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
