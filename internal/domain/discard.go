package domain

var (
	errDiscardCount  = RuleError("discard must return exactly the dog's size")
	errDiscardKing   = RuleError("kings may not be discarded")
	errDiscardTrump  = RuleError("trumps may only be discarded together with the excuse")
	errDiscardUnheld = RuleError("discard contains a card not in hand")
)

// ValidateDiscard checks the taker's discard set against the working hand
// (which already absorbed the dog): exact count, every card held exactly once,
// no kings, and trumps only when the excuse is part of the same set. Returns
// nil when the discard may be applied.
func ValidateDiscard(hand, discards []Card, dogSize int) error {
	if len(discards) != dogSize {
		return errDiscardCount
	}

	remaining := append([]Card{}, hand...)
	hasTrumpDiscard := false
	hasExcuseDiscard := false
	for _, c := range discards {
		if c.IsKing() {
			return errDiscardKing
		}
		if c.IsTrump() {
			hasTrumpDiscard = true
		}
		if c.IsExcuse() {
			hasExcuseDiscard = true
		}
		var ok bool
		remaining, ok = RemoveCard(remaining, c)
		if !ok {
			return errDiscardUnheld
		}
	}
	if hasTrumpDiscard && !hasExcuseDiscard {
		return errDiscardTrump
	}
	return nil
}

// ApplyDiscard removes the validated discard set from the hand and records it
// on the game for scoring. Callers must have passed ValidateDiscard first.
func ApplyDiscard(g *Game, seat int, discards []Card) {
	hand := g.Hands[seat]
	for _, c := range discards {
		hand, _ = RemoveCard(hand, c)
	}
	g.Hands[seat] = hand
	g.Discards = append([]Card{}, discards...)
}
