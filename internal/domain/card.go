package domain

// Suit identifies which run a card belongs to. The four ordinary suits use
// single-letter codes; trumps and the excuse are their own runs.
type Suit string

const (
	SuitSpades   Suit = "S"
	SuitHearts   Suit = "H"
	SuitClubs    Suit = "C"
	SuitDiamonds Suit = "D"
	SuitTrump    Suit = "T"
	SuitExcuse   Suit = "E"
)

// OrdinarySuits lists the four callable suits in deck order.
var OrdinarySuits = [4]Suit{SuitSpades, SuitHearts, SuitClubs, SuitDiamonds}

// Ordinary reports whether the suit is one of the four plain suits.
func (s Suit) Ordinary() bool {
	switch s {
	case SuitSpades, SuitHearts, SuitClubs, SuitDiamonds:
		return true
	}
	return false
}

// Court ranks sit above the 10 within an ordinary suit.
const (
	RankJack   = 11
	RankKnight = 12
	RankQueen  = 13
	RankKing   = 14
)

// Trump rank bounds. Trump 1 is the "petit", trump 21 the highest.
const (
	TrumpPetit   = 1
	TrumpHighest = 21
)

// Card is a single tarot card. Rank is 1..14 for ordinary suits, 1..21 for
// trumps and 0 for the excuse. Cards are immutable values.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

// IsTrump reports whether the card belongs to the trump run.
func (c Card) IsTrump() bool { return c.Suit == SuitTrump }

// IsExcuse reports whether the card is the excuse.
func (c Card) IsExcuse() bool { return c.Suit == SuitExcuse }

// IsKing reports whether the card is an ordinary-suit king.
func (c Card) IsKing() bool { return c.Suit.Ordinary() && c.Rank == RankKing }

// IsBout reports whether the card is one of the three bouts: the excuse,
// trump 1 and trump 21.
func (c Card) IsBout() bool {
	if c.IsExcuse() {
		return true
	}
	return c.IsTrump() && (c.Rank == TrumpPetit || c.Rank == TrumpHighest)
}

// Points returns the card's fixed point value. The whole deck sums to 91.
// Half values are exact in float64.
func (c Card) Points() float64 {
	if c.IsBout() {
		return 4.5
	}
	if c.Suit.Ordinary() {
		switch c.Rank {
		case RankKing:
			return 4.5
		case RankQueen:
			return 3.5
		case RankKnight:
			return 2.5
		case RankJack:
			return 1.5
		}
	}
	return 0.5
}

// DeckSize is the fixed tarot deck size.
const DeckSize = 78

// DeckPoints is the fixed total point value of the full deck.
const DeckPoints = 91.0

// NewDeck returns the full 78-card deck in deterministic order: the four
// ordinary suits of 14 ranks, the 21 trumps, then the excuse.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range OrdinarySuits {
		for r := 1; r <= RankKing; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	for r := TrumpPetit; r <= TrumpHighest; r++ {
		deck = append(deck, Card{Suit: SuitTrump, Rank: r})
	}
	deck = append(deck, Card{Suit: SuitExcuse, Rank: 0})
	return deck
}

// ContainsCard reports whether the hand holds the exact card.
func ContainsCard(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// RemoveCard returns the hand without the first occurrence of c and whether
// the card was found. The input slice is not modified.
func RemoveCard(hand []Card, c Card) ([]Card, bool) {
	for i, h := range hand {
		if h == c {
			out := make([]Card, 0, len(hand)-1)
			out = append(out, hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, true
		}
	}
	return hand, false
}

// SumPoints totals the point values of the given cards.
func SumPoints(cards []Card) float64 {
	total := 0.0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}
