package domain

import "testing"

func TestValidateDiscard(t *testing.T) {
	excuse := Card{Suit: SuitExcuse, Rank: 0}
	trump5 := Card{Suit: SuitTrump, Rank: 5}
	king := Card{Suit: SuitClubs, Rank: RankKing}
	c2 := Card{Suit: SuitClubs, Rank: 2}
	c3 := Card{Suit: SuitClubs, Rank: 3}
	h4 := Card{Suit: SuitHearts, Rank: 4}
	h5 := Card{Suit: SuitHearts, Rank: 5}

	hand := []Card{excuse, trump5, king, c2, c3, h4, h5}

	tests := []struct {
		name     string
		discards []Card
		ok       bool
	}{
		{name: "plain cards", discards: []Card{c2, c3, h4}, ok: true},
		{name: "wrong count", discards: []Card{c2, c3}, ok: false},
		{name: "king forbidden", discards: []Card{king, c2, c3}, ok: false},
		{name: "trump without excuse", discards: []Card{trump5, c2, c3}, ok: false},
		{name: "trump with excuse", discards: []Card{trump5, excuse, c2}, ok: true},
		{name: "card not held", discards: []Card{c2, c3, {Suit: SuitDiamonds, Rank: 9}}, ok: false},
		{name: "duplicate card", discards: []Card{c2, c2, c3}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDiscard(hand, tt.discards, 3)
			if (err == nil) != tt.ok {
				t.Fatalf("ValidateDiscard() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestApplyDiscard(t *testing.T) {
	c2 := Card{Suit: SuitClubs, Rank: 2}
	c3 := Card{Suit: SuitClubs, Rank: 3}
	h4 := Card{Suit: SuitHearts, Rank: 4}
	keep := Card{Suit: SuitTrump, Rank: 9}

	g := &Game{
		SeatCount: 5,
		Hands:     [][]Card{{c2, c3, h4, keep}},
	}

	ApplyDiscard(g, 0, []Card{c2, c3, h4})

	if len(g.Hands[0]) != 1 || g.Hands[0][0] != keep {
		t.Fatalf("hand after discard = %+v, want only %+v", g.Hands[0], keep)
	}
	if len(g.Discards) != 3 {
		t.Fatalf("recorded discards = %d, want 3", len(g.Discards))
	}
}
