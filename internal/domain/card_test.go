package domain

import "testing"

func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[Card]bool, DeckSize)
	trumps, excuses, ordinary := 0, 0, 0
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card: %+v", c)
		}
		seen[c] = true
		switch {
		case c.IsTrump():
			trumps++
			if c.Rank < TrumpPetit || c.Rank > TrumpHighest {
				t.Fatalf("trump rank out of range: %d", c.Rank)
			}
		case c.IsExcuse():
			excuses++
		default:
			ordinary++
			if !c.Suit.Ordinary() {
				t.Fatalf("unexpected suit: %s", c.Suit)
			}
			if c.Rank < 1 || c.Rank > RankKing {
				t.Fatalf("rank out of range: %d", c.Rank)
			}
		}
	}
	if trumps != 21 || excuses != 1 || ordinary != 56 {
		t.Fatalf("composition = %d trumps, %d excuses, %d ordinary", trumps, excuses, ordinary)
	}

	if total := SumPoints(deck); total != DeckPoints {
		t.Fatalf("deck points = %v, want %v", total, DeckPoints)
	}
}

func TestCardPoints(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want float64
	}{
		{name: "excuse", card: Card{Suit: SuitExcuse, Rank: 0}, want: 4.5},
		{name: "petit", card: Card{Suit: SuitTrump, Rank: 1}, want: 4.5},
		{name: "twenty-one", card: Card{Suit: SuitTrump, Rank: 21}, want: 4.5},
		{name: "middle trump", card: Card{Suit: SuitTrump, Rank: 10}, want: 0.5},
		{name: "king", card: Card{Suit: SuitHearts, Rank: RankKing}, want: 4.5},
		{name: "queen", card: Card{Suit: SuitHearts, Rank: RankQueen}, want: 3.5},
		{name: "knight", card: Card{Suit: SuitHearts, Rank: RankKnight}, want: 2.5},
		{name: "jack", card: Card{Suit: SuitHearts, Rank: RankJack}, want: 1.5},
		{name: "pip", card: Card{Suit: SuitSpades, Rank: 7}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.Points(); got != tt.want {
				t.Fatalf("Points() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBout(t *testing.T) {
	bouts := []Card{
		{Suit: SuitExcuse, Rank: 0},
		{Suit: SuitTrump, Rank: TrumpPetit},
		{Suit: SuitTrump, Rank: TrumpHighest},
	}
	for _, c := range bouts {
		if !c.IsBout() {
			t.Fatalf("%+v should be a bout", c)
		}
	}

	notBouts := []Card{
		{Suit: SuitTrump, Rank: 2},
		{Suit: SuitTrump, Rank: 20},
		{Suit: SuitSpades, Rank: RankKing},
	}
	for _, c := range notBouts {
		if c.IsBout() {
			t.Fatalf("%+v should not be a bout", c)
		}
	}
}

func TestRemoveCard(t *testing.T) {
	hand := []Card{
		{Suit: SuitSpades, Rank: 3},
		{Suit: SuitTrump, Rank: 5},
		{Suit: SuitHearts, Rank: RankQueen},
	}

	out, ok := RemoveCard(hand, Card{Suit: SuitTrump, Rank: 5})
	if !ok || len(out) != 2 {
		t.Fatalf("RemoveCard failed: ok=%v len=%d", ok, len(out))
	}
	if len(hand) != 3 {
		t.Fatalf("input hand mutated: len=%d", len(hand))
	}

	if _, ok := RemoveCard(hand, Card{Suit: SuitClubs, Rank: 9}); ok {
		t.Fatal("RemoveCard reported success for a card not in hand")
	}
}
