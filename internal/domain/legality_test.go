package domain

import "testing"

func suitPtr(s Suit) *Suit { return &s }

func trickOf(plays ...TrickPlay) []TrickPlay { return plays }

func TestCheckPlayFollowSuit(t *testing.T) {
	hearts9 := Card{Suit: SuitHearts, Rank: 9}
	spades4 := Card{Suit: SuitSpades, Rank: 4}
	trump8 := Card{Suit: SuitTrump, Rank: 8}

	g := &Game{
		SeatCount: 4,
		Phase:     PhasePlaying,
		Trick:     trickOf(TrickPlay{Seat: 0, Card: Card{Suit: SuitHearts, Rank: 5}}),
		LeadSuit:  suitPtr(SuitHearts),
	}

	tests := []struct {
		name string
		card Card
		hand []Card
		ok   bool
	}{
		{name: "follows suit", card: hearts9, hand: []Card{hearts9, spades4}, ok: true},
		{name: "could follow but discards", card: spades4, hand: []Card{hearts9, spades4}, ok: false},
		{name: "void must trump", card: spades4, hand: []Card{spades4, trump8}, ok: false},
		{name: "void trumps", card: trump8, hand: []Card{spades4, trump8}, ok: true},
		{name: "void of everything discards", card: spades4, hand: []Card{spades4}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanPlay(tt.card, tt.hand, g); got != tt.ok {
				t.Fatalf("CanPlay() = %v, want %v (err: %v)", got, tt.ok, CheckPlay(tt.card, tt.hand, g))
			}
		})
	}
}

func TestCheckPlayTrumpLed(t *testing.T) {
	g := &Game{
		SeatCount: 4,
		Phase:     PhasePlaying,
		Trick: trickOf(
			TrickPlay{Seat: 0, Card: Card{Suit: SuitTrump, Rank: 10}},
			TrickPlay{Seat: 1, Card: Card{Suit: SuitTrump, Rank: 14}},
		),
		LeadSuit: suitPtr(SuitTrump),
	}

	low := Card{Suit: SuitTrump, Rank: 4}
	high := Card{Suit: SuitTrump, Rank: 17}
	clubs2 := Card{Suit: SuitClubs, Rank: 2}

	tests := []struct {
		name string
		card Card
		hand []Card
		ok   bool
	}{
		{name: "must overtrump when able", card: low, hand: []Card{low, high}, ok: false},
		{name: "overtrumps", card: high, hand: []Card{low, high}, ok: true},
		{name: "undertrump when no higher", card: low, hand: []Card{low, clubs2}, ok: true},
		{name: "holds trump must play it", card: clubs2, hand: []Card{low, clubs2}, ok: false},
		{name: "no trump plays anything", card: clubs2, hand: []Card{clubs2}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanPlay(tt.card, tt.hand, g); got != tt.ok {
				t.Fatalf("CanPlay() = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestCheckPlayOvertrumpWhenCutting(t *testing.T) {
	// Hearts led, seat 1 already cut with trump 12.
	g := &Game{
		SeatCount: 4,
		Phase:     PhasePlaying,
		Trick: trickOf(
			TrickPlay{Seat: 0, Card: Card{Suit: SuitHearts, Rank: 10}},
			TrickPlay{Seat: 1, Card: Card{Suit: SuitTrump, Rank: 12}},
		),
		LeadSuit: suitPtr(SuitHearts),
	}

	low := Card{Suit: SuitTrump, Rank: 6}
	high := Card{Suit: SuitTrump, Rank: 15}
	spade := Card{Suit: SuitSpades, Rank: 8}

	if CanPlay(low, []Card{low, high, spade}, g) {
		t.Fatal("undertrump allowed while holding a higher trump")
	}
	if !CanPlay(high, []Card{low, high, spade}, g) {
		t.Fatal("overtrump should be legal")
	}
	if !CanPlay(low, []Card{low, spade}, g) {
		t.Fatal("undertrump should be legal when no higher trump is held")
	}
}

func TestCheckPlayLeaderFreedomAndExcuse(t *testing.T) {
	g := &Game{SeatCount: 4, Phase: PhasePlaying, TrickNumber: 2}

	anyCard := Card{Suit: SuitDiamonds, Rank: 2}
	excuse := Card{Suit: SuitExcuse, Rank: 0}
	hand := []Card{anyCard, excuse, {Suit: SuitTrump, Rank: 9}}

	if !CanPlay(anyCard, hand, g) {
		t.Fatal("leader should be free to open with any card")
	}

	// The excuse is legal at any position.
	g.Trick = trickOf(TrickPlay{Seat: 0, Card: Card{Suit: SuitHearts, Rank: 5}})
	g.LeadSuit = suitPtr(SuitHearts)
	if !CanPlay(excuse, hand, g) {
		t.Fatal("excuse should always be legal")
	}
}

func TestCheckPlayExcuseOpensTrick(t *testing.T) {
	// Scenario: the excuse opened the trick, so no suit is bound yet and the
	// second player may choose freely.
	g := &Game{
		SeatCount:   4,
		Phase:       PhasePlaying,
		TrickNumber: 3,
		Trick:       trickOf(TrickPlay{Seat: 2, Card: Card{Suit: SuitExcuse, Rank: 0}}),
		LeadSuit:    nil,
	}

	hand := []Card{
		{Suit: SuitClubs, Rank: 4},
		{Suit: SuitTrump, Rank: 2},
	}
	for _, c := range hand {
		if !CanPlay(c, hand, g) {
			t.Fatalf("second card after an excuse lead should be free, got illegal for %+v", c)
		}
	}

	// Once the second card lands, its suit binds the trick.
	g.Trick = append(g.Trick, TrickPlay{Seat: 3, Card: Card{Suit: SuitClubs, Rank: 4}})
	g.LeadSuit = suitPtr(SuitClubs)
	clubTen := Card{Suit: SuitClubs, Rank: 10}
	spadeTwo := Card{Suit: SuitSpades, Rank: 2}
	if CanPlay(spadeTwo, []Card{clubTen, spadeTwo}, g) {
		t.Fatal("suit fixed by the second card must be followed")
	}
}

func TestCheckPlayCalledSuitProtection(t *testing.T) {
	calledKing := Card{Suit: SuitHearts, Rank: RankKing}
	heartsSeven := Card{Suit: SuitHearts, Rank: 7}
	spadesNine := Card{Suit: SuitSpades, Rank: 9}

	base := func() *Game {
		return &Game{
			SeatCount:   5,
			Phase:       PhasePlaying,
			TrickNumber: 1,
			CalledSuit:  SuitHearts,
		}
	}

	t.Run("leader may open with the called king", func(t *testing.T) {
		g := base()
		if !CanPlay(calledKing, []Card{calledKing, spadesNine}, g) {
			t.Fatal("leader should be able to open with the called king")
		}
	})

	t.Run("follower may not throw the called king", func(t *testing.T) {
		g := base()
		g.Trick = trickOf(TrickPlay{Seat: 0, Card: spadesNine})
		g.LeadSuit = suitPtr(SuitSpades)
		if CanPlay(calledKing, []Card{calledKing, heartsSeven}, g) {
			t.Fatal("called king must stay home when not leading")
		}
	})

	t.Run("follower may not discard the called suit", func(t *testing.T) {
		// Scenario C: the called king sits in the dog, the protection holds
		// regardless.
		g := base()
		g.Trick = trickOf(TrickPlay{Seat: 0, Card: Card{Suit: SuitClubs, Rank: 3}})
		g.LeadSuit = suitPtr(SuitClubs)
		if CanPlay(heartsSeven, []Card{heartsSeven, spadesNine}, g) {
			t.Fatal("called suit may not be thrown on trick 1")
		}
	})

	t.Run("follower with only called cards may discard them", func(t *testing.T) {
		g := base()
		g.Trick = trickOf(TrickPlay{Seat: 0, Card: Card{Suit: SuitClubs, Rank: 3}})
		g.LeadSuit = suitPtr(SuitClubs)
		if !CanPlay(heartsSeven, []Card{heartsSeven, {Suit: SuitHearts, Rank: 2}}, g) {
			t.Fatal("a hand of nothing but the called suit must still play")
		}
	})

	t.Run("called suit follows a king lead", func(t *testing.T) {
		g := base()
		g.Trick = trickOf(TrickPlay{Seat: 0, Card: calledKing})
		g.LeadSuit = suitPtr(SuitHearts)
		if !CanPlay(heartsSeven, []Card{heartsSeven, spadesNine}, g) {
			t.Fatal("following the called-suit lead must be legal")
		}
	})

	t.Run("protection lapses after trick one", func(t *testing.T) {
		g := base()
		g.TrickNumber = 2
		g.Trick = trickOf(TrickPlay{Seat: 0, Card: Card{Suit: SuitClubs, Rank: 3}})
		g.LeadSuit = suitPtr(SuitClubs)
		if !CanPlay(heartsSeven, []Card{heartsSeven, spadesNine}, g) {
			t.Fatal("called suit should be free from trick 2 on")
		}
	})
}

func TestCheckPlayIdempotent(t *testing.T) {
	g := &Game{
		SeatCount: 4,
		Phase:     PhasePlaying,
		Trick:     trickOf(TrickPlay{Seat: 0, Card: Card{Suit: SuitHearts, Rank: 5}}),
		LeadSuit:  suitPtr(SuitHearts),
	}
	card := Card{Suit: SuitSpades, Rank: 4}
	hand := []Card{card, {Suit: SuitHearts, Rank: 9}}

	first := CheckPlay(card, hand, g)
	second := CheckPlay(card, hand, g)
	if (first == nil) != (second == nil) {
		t.Fatalf("legality verdict changed between calls: %v then %v", first, second)
	}
	if first == nil {
		t.Fatal("discarding while able to follow suit should be illegal")
	}
}
