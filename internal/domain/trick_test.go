package domain

import "testing"

func TestWinningSeat(t *testing.T) {
	tests := []struct {
		name  string
		trick []TrickPlay
		lead  Suit
		want  int
	}{
		{
			name: "highest of led suit wins",
			trick: trickOf(
				TrickPlay{Seat: 0, Card: Card{Suit: SuitHearts, Rank: 10}},
				TrickPlay{Seat: 1, Card: Card{Suit: SuitHearts, Rank: RankJack}},
				TrickPlay{Seat: 2, Card: Card{Suit: SuitSpades, Rank: RankKing}},
			),
			lead: SuitHearts,
			want: 1,
		},
		{
			name: "court beats pip ten",
			trick: trickOf(
				TrickPlay{Seat: 0, Card: Card{Suit: SuitClubs, Rank: 10}},
				TrickPlay{Seat: 1, Card: Card{Suit: SuitClubs, Rank: RankKnight}},
			),
			lead: SuitClubs,
			want: 1,
		},
		{
			name: "any trump beats the led suit",
			trick: trickOf(
				TrickPlay{Seat: 0, Card: Card{Suit: SuitHearts, Rank: RankKing}},
				TrickPlay{Seat: 1, Card: Card{Suit: SuitTrump, Rank: 1}},
				TrickPlay{Seat: 2, Card: Card{Suit: SuitHearts, Rank: RankQueen}},
			),
			lead: SuitHearts,
			want: 1,
		},
		{
			name: "highest trump wins",
			trick: trickOf(
				TrickPlay{Seat: 0, Card: Card{Suit: SuitTrump, Rank: 5}},
				TrickPlay{Seat: 1, Card: Card{Suit: SuitTrump, Rank: 18}},
				TrickPlay{Seat: 2, Card: Card{Suit: SuitTrump, Rank: 11}},
			),
			lead: SuitTrump,
			want: 1,
		},
		{
			name: "excuse never wins even when led",
			trick: trickOf(
				TrickPlay{Seat: 0, Card: Card{Suit: SuitExcuse, Rank: 0}},
				TrickPlay{Seat: 1, Card: Card{Suit: SuitDiamonds, Rank: 2}},
				TrickPlay{Seat: 2, Card: Card{Suit: SuitDiamonds, Rank: 7}},
			),
			lead: SuitDiamonds,
			want: 2,
		},
		{
			name: "off-suit cards never win",
			trick: trickOf(
				TrickPlay{Seat: 0, Card: Card{Suit: SuitSpades, Rank: 2}},
				TrickPlay{Seat: 1, Card: Card{Suit: SuitHearts, Rank: RankKing}},
				TrickPlay{Seat: 2, Card: Card{Suit: SuitSpades, Rank: 6}},
			),
			lead: SuitSpades,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := tt.lead
			if got := WinningSeat(tt.trick, &lead); got != tt.want {
				t.Fatalf("WinningSeat() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWinningSeatDerivesLeadFromExcuseOpening(t *testing.T) {
	// The excuse opened, nobody set a lead pointer: the second card rules.
	trick := trickOf(
		TrickPlay{Seat: 3, Card: Card{Suit: SuitExcuse, Rank: 0}},
		TrickPlay{Seat: 0, Card: Card{Suit: SuitClubs, Rank: 4}},
		TrickPlay{Seat: 1, Card: Card{Suit: SuitClubs, Rank: 9}},
		TrickPlay{Seat: 2, Card: Card{Suit: SuitHearts, Rank: RankKing}},
	)
	if got := WinningSeat(trick, nil); got != 1 {
		t.Fatalf("WinningSeat() = %d, want 1", got)
	}
}

func TestResolveTrickExcuseAttribution(t *testing.T) {
	side := TakerSide{Taker: 0, Partner: -1}

	// Defense seat 2 plays the excuse; the taker wins the trick. The excuse's
	// 4.5 stays with the defense, everything else goes to the winner.
	trick := trickOf(
		TrickPlay{Seat: 0, Card: Card{Suit: SuitTrump, Rank: 20}},
		TrickPlay{Seat: 1, Card: Card{Suit: SuitTrump, Rank: 3}},
		TrickPlay{Seat: 2, Card: Card{Suit: SuitExcuse, Rank: 0}},
		TrickPlay{Seat: 3, Card: Card{Suit: SuitTrump, Rank: 8}},
	)

	delta := ResolveTrick(trick, suitPtr(SuitTrump), side)
	if delta.Winner != 0 {
		t.Fatalf("winner = %d, want 0", delta.Winner)
	}
	if delta.TakerPoints != 1.5 {
		t.Fatalf("taker points = %v, want 1.5", delta.TakerPoints)
	}
	if delta.DefensePoints != 4.5 {
		t.Fatalf("defense points = %v, want 4.5", delta.DefensePoints)
	}
	if delta.TakerBouts != 0 || delta.DefenseBouts != 1 {
		t.Fatalf("bouts = %d/%d, want 0/1", delta.TakerBouts, delta.DefenseBouts)
	}
}

func TestResolveTrickExcusePlayedByTakerSide(t *testing.T) {
	side := TakerSide{Taker: 1, Partner: 3}

	// Partner plays the excuse, defense wins the trick: the excuse's points
	// still belong to the taker side.
	trick := trickOf(
		TrickPlay{Seat: 0, Card: Card{Suit: SuitSpades, Rank: RankKing}},
		TrickPlay{Seat: 1, Card: Card{Suit: SuitSpades, Rank: 2}},
		TrickPlay{Seat: 2, Card: Card{Suit: SuitSpades, Rank: RankQueen}},
		TrickPlay{Seat: 3, Card: Card{Suit: SuitExcuse, Rank: 0}},
		TrickPlay{Seat: 4, Card: Card{Suit: SuitSpades, Rank: 5}},
	)

	delta := ResolveTrick(trick, suitPtr(SuitSpades), side)
	if delta.Winner != 0 {
		t.Fatalf("winner = %d, want 0", delta.Winner)
	}
	if delta.TakerPoints != 4.5 {
		t.Fatalf("taker points = %v, want 4.5 (excuse only)", delta.TakerPoints)
	}
	if delta.DefensePoints != 9.5 {
		t.Fatalf("defense points = %v, want 9.5", delta.DefensePoints)
	}
	if delta.TakerBouts != 1 {
		t.Fatalf("taker bouts = %d, want 1 (the excuse)", delta.TakerBouts)
	}
}

func TestResolveTrickTrumpBoutsFollowWinner(t *testing.T) {
	side := TakerSide{Taker: 0, Partner: -1}

	// Defense wins a trick containing the petit: the bout counts for defense.
	trick := trickOf(
		TrickPlay{Seat: 0, Card: Card{Suit: SuitTrump, Rank: TrumpPetit}},
		TrickPlay{Seat: 1, Card: Card{Suit: SuitTrump, Rank: 15}},
		TrickPlay{Seat: 2, Card: Card{Suit: SuitTrump, Rank: 2}},
	)

	delta := ResolveTrick(trick, suitPtr(SuitTrump), side)
	if delta.Winner != 1 {
		t.Fatalf("winner = %d, want 1", delta.Winner)
	}
	if delta.DefenseBouts != 1 || delta.TakerBouts != 0 {
		t.Fatalf("bouts = %d/%d, want 0 taker / 1 defense", delta.TakerBouts, delta.DefenseBouts)
	}
	if delta.DefensePoints != 5.5 {
		t.Fatalf("defense points = %v, want 5.5", delta.DefensePoints)
	}
}
