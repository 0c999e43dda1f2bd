package app

import "tarot/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventHandDealt        EventKind = "hand_dealt"
	EventBiddingTurn      EventKind = "bidding_turn"
	EventBidRecorded      EventKind = "bid_recorded"
	EventBiddingResolved  EventKind = "bidding_resolved"
	EventAllPassed        EventKind = "all_passed"
	EventKingCallRequest  EventKind = "king_call_request"
	EventKingCallResolved EventKind = "king_call_resolved"
	EventDogRequest       EventKind = "dog_request"
	EventDogResolved      EventKind = "dog_resolved"
	EventHandUpdated      EventKind = "hand_updated"
	EventCardPlayed       EventKind = "card_played"
	EventTrickResolved    EventKind = "trick_resolved"
	EventTrickReset       EventKind = "trick_reset"
	EventHandFinished     EventKind = "hand_finished"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind    EventKind
	Payload any
	Seats   []int // recipient seats; empty means broadcast
}

type HandDealtPayload struct {
	Seat      int           `json:"seat"`
	Hand      []domain.Card `json:"hand"`
	SeatCount int           `json:"seat_count"`
	FirstSeat int           `json:"first_seat"`
	DogSize   int           `json:"dog_size"`
}

type BiddingTurnPayload struct {
	Seat int `json:"seat"`
}

type BidRecordedPayload struct {
	Seat int    `json:"seat"`
	Bid  string `json:"bid"`
}

// BiddingResolvedPayload announces the taker and, for petite and garde,
// reveals the dog face up before it joins the taker's hand.
type BiddingResolvedPayload struct {
	Taker    int           `json:"taker"`
	Contract string        `json:"contract"`
	Dog      []domain.Card `json:"dog,omitempty"`
}

type KingCallRequestPayload struct {
	Taker int `json:"taker"`
}

type KingCallResolvedPayload struct {
	Taker int         `json:"taker"`
	Suit  domain.Suit `json:"suit"`
}

// DogRequestPayload goes to the taker only, carrying the merged hand.
type DogRequestPayload struct {
	Hand        []domain.Card `json:"hand"`
	Dog         []domain.Card `json:"dog"`
	DiscardSize int           `json:"discard_size"`
}

type DogResolvedPayload struct {
	Taker       int `json:"taker"`
	DiscardSize int `json:"discard_size"`
}

type HandUpdatedPayload struct {
	Seat int           `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type CardPlayedPayload struct {
	Seat      int                `json:"seat"`
	Card      domain.Card        `json:"card"`
	Trick     []domain.TrickPlay `json:"trick"`
	Remaining int                `json:"remaining"`
	NextSeat  int                `json:"next_seat"` // -1 while the trick settles
}

type TrickResolvedPayload struct {
	Winner        int     `json:"winner"`
	TrickNumber   int     `json:"trick_number"`
	TakerPoints   float64 `json:"taker_points"`
	DefensePoints float64 `json:"defense_points"`
	TakerBouts    int     `json:"taker_bouts"`
}

type TrickResetPayload struct {
	Leader      int `json:"leader"`
	TrickNumber int `json:"trick_number"`
}

type HandFinishedPayload struct {
	Result domain.HandResult `json:"result"`
}
