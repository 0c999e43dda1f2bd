package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// ErrSeatCount is returned when a deal is requested for an unsupported table
// size. Only 3, 4 and 5 seat tables exist.
var ErrSeatCount = RuleError("seat count must be 3, 4 or 5")

// CardsPerSeat returns the hand size for a table, or 0 for invalid counts.
func CardsPerSeat(seatCount int) int {
	switch seatCount {
	case 3:
		return 24
	case 4:
		return 18
	case 5:
		return 15
	}
	return 0
}

// DogSize returns the dog size for a table: 3 cards at five seats, 6 otherwise.
func DogSize(seatCount int) int {
	if seatCount == 5 {
		return 3
	}
	return 6
}

// ShuffleDeck returns a shuffled copy of the deck using Fisher-Yates via the
// provided source.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal partitions a shuffled 78-card deck into seatCount hands plus the dog.
// Hand size and dog size depend on the seat count so that
// seatCount*handSize + dogSize == 78.
func Deal(deck []Card, seatCount int) ([][]Card, []Card, error) {
	perSeat := CardsPerSeat(seatCount)
	if perSeat == 0 {
		return nil, nil, ErrSeatCount
	}
	if len(deck) != DeckSize {
		return nil, nil, fmt.Errorf("deal: deck has %d cards, want %d", len(deck), DeckSize)
	}

	hands := make([][]Card, seatCount)
	for i := 0; i < seatCount; i++ {
		hands[i] = append([]Card{}, deck[i*perSeat:(i+1)*perSeat]...)
	}
	dog := append([]Card{}, deck[seatCount*perSeat:seatCount*perSeat+DogSize(seatCount)]...)
	return hands, dog, nil
}

// SortHand orders a hand for display: excuse first, then the ordinary suits
// grouped, trumps last, ascending rank within each group.
func SortHand(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		a, b := hand[i], hand[j]
		if ga, gb := suitGroup(a.Suit), suitGroup(b.Suit); ga != gb {
			return ga < gb
		}
		return a.Rank < b.Rank
	})
}

func suitGroup(s Suit) int {
	switch s {
	case SuitExcuse:
		return 0
	case SuitSpades:
		return 1
	case SuitHearts:
		return 2
	case SuitClubs:
		return 3
	case SuitDiamonds:
		return 4
	default: // trump
		return 5
	}
}
