package domain

// RuleError is a game-rule violation. The text names the failing rule and is
// safe to surface to the acting player.
type RuleError string

func (e RuleError) Error() string { return string(e) }

// Phase is the lifecycle stage of a hand.
type Phase string

const (
	// PhaseBidding runs the auction, one bid per seat in rotation.
	PhaseBidding Phase = "bidding"
	// PhaseKingCall waits for the taker to name a partner suit (5 seats only).
	PhaseKingCall Phase = "king-call"
	// PhaseDiscard waits for the taker to return the dog-sized discard set.
	PhaseDiscard Phase = "discard"
	// PhasePlaying is trick play.
	PhasePlaying Phase = "playing"
	// PhaseFinished means the hand is scored; only a restart is possible.
	PhaseFinished Phase = "finished"
)

// TrickPlay is one (seat, card) entry of the trick in progress.
type TrickPlay struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

// TakerSide is the team topology consumed by scoring and attribution.
// Partner is -1 when the taker plays alone (3/4 seats, or a 5-seat call that
// found the king in the taker's own hand or in the dog).
type TakerSide struct {
	Taker   int
	Partner int
}

// Holds reports whether the seat belongs to the taker's side.
func (s TakerSide) Holds(seat int) bool {
	return seat == s.Taker || (s.Partner >= 0 && seat == s.Partner)
}

// Solo reports whether the taker has no partner.
func (s TakerSide) Solo() bool { return s.Partner < 0 || s.Partner == s.Taker }

// Game is the single mutable state record for one table's hand. All engine
// functions either read it or mutate it under the table's serialized loop;
// it is never shared across tables.
type Game struct {
	SeatCount int   `json:"seat_count"`
	Phase     Phase `json:"phase"`

	// FirstSeat bid first this deal and leads trick 1. Rotates on redeal.
	FirstSeat   int `json:"first_seat"`
	CurrentSeat int `json:"current_seat"`

	Hands [][]Card `json:"hands"`

	Bids        []BidRecord `json:"bids"`
	TakerSeat   int         `json:"taker_seat"`   // -1 until bidding resolves
	PartnerSeat int         `json:"partner_seat"` // -1 when solo or unset
	Contract    Bid         `json:"contract"`
	CalledSuit  Suit        `json:"called_suit"` // 5 seats only, "" until called

	Dog      []Card `json:"dog"`
	Discards []Card `json:"discards"`

	TrickNumber int         `json:"trick_number"` // 1-based during play
	Trick       []TrickPlay `json:"trick"`
	LeadSuit    *Suit       `json:"lead_suit"` // nil until defined for this trick
	LastWinner  int         `json:"last_winner"`

	// Running totals, maintained by the per-trick attribution step.
	TakerPoints   float64 `json:"taker_points"`
	DefensePoints float64 `json:"defense_points"`
	TakerBouts    int     `json:"taker_bouts"`

	PetitAuBout      bool `json:"petit_au_bout"`
	PetitAuBoutTaker bool `json:"petit_au_bout_taker"`

	// Settling latches between tricks (and before the final settle) so that
	// plays arriving during the presentation pause are rejected.
	Settling bool `json:"settling"`
}

// Side returns the taker-side topology for attribution and scoring.
func (g *Game) Side() TakerSide {
	return TakerSide{Taker: g.TakerSeat, Partner: g.PartnerSeat}
}

// Hand returns the working hand of a seat.
func (g *Game) Hand(seat int) []Card { return g.Hands[seat] }

// NextSeat returns the seat after the given one in rotation.
func (g *Game) NextSeat(seat int) int { return (seat + 1) % g.SeatCount }

// HandsExhausted reports whether every seat has played out its hand.
func (g *Game) HandsExhausted() bool {
	for _, h := range g.Hands {
		if len(h) > 0 {
			return false
		}
	}
	return true
}
