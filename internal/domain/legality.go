package domain

// Rule errors surfaced by CheckPlay. The text names the failing rule.
var (
	errFollowSuit      = RuleError("must follow the led suit")
	errMustTrump       = RuleError("must play a trump when unable to follow suit")
	errTrumpLed        = RuleError("must play a trump when trump is led")
	errMustOvertrump   = RuleError("must play a trump higher than the highest in the trick")
	errKingLeadsOnly   = RuleError("the called king may only be played by the leader of the first trick")
	errCalledSuitFirst = RuleError("the called suit may not be played on the first trick")
)

// CheckPlay decides whether the seat to act may legally play card from hand
// given the trick in progress. It returns nil when the play is legal and a
// RuleError naming the violated rule otherwise. Pure: it never mutates g.
func CheckPlay(card Card, hand []Card, g *Game) error {
	leading := len(g.Trick) == 0

	// First-trick protection of the called suit, five-seat tables only.
	// Applies whether or not the called king is live this hand.
	if g.SeatCount == 5 && g.CalledSuit != "" && g.TrickNumber == 1 {
		if err := checkCalledSuitProtection(card, hand, g, leading); err != nil {
			return err
		}
	}

	// The leader may open with anything else; the excuse is always legal.
	if leading || card.IsExcuse() {
		return nil
	}

	// An excuse-led trick has no binding suit yet: this card will fix it.
	if g.LeadSuit == nil {
		return nil
	}
	lead := *g.LeadSuit

	if lead == SuitTrump {
		if card.IsTrump() {
			return checkOvertrump(card, hand, g.Trick)
		}
		if hasTrump(hand) {
			return errTrumpLed
		}
		return nil
	}

	// Ordinary suit led.
	if card.Suit == lead {
		return nil
	}
	if hasSuit(hand, lead) {
		return errFollowSuit
	}
	if card.IsTrump() {
		if highestTrumpIn(g.Trick) > 0 {
			// Someone already cut: overtrump if able.
			return checkOvertrump(card, hand, g.Trick)
		}
		return nil
	}
	if hasTrump(hand) {
		return errMustTrump
	}
	return nil
}

// CanPlay is the boolean form of CheckPlay.
func CanPlay(card Card, hand []Card, g *Game) bool {
	return CheckPlay(card, hand, g) == nil
}

// checkCalledSuitProtection enforces the trick-1 restriction on the called
// suit: the called king opens only, and other cards of the suit may not be
// thrown by followers unless following a called-suit lead or holding nothing
// else. Trumps, the excuse and foreign suits are untouched by this rule.
func checkCalledSuitProtection(card Card, hand []Card, g *Game, leading bool) error {
	if card.Suit != g.CalledSuit {
		return nil
	}

	leadIsCalled := g.LeadSuit != nil && *g.LeadSuit == g.CalledSuit

	if card.Rank == RankKing {
		if leading {
			return nil
		}
		for _, c := range hand {
			if c != card {
				return errKingLeadsOnly
			}
		}
		return nil
	}

	// Non-king called-suit card. The leader is free; followers may play it
	// only when the called suit was led (the king opened) or when the hand
	// holds nothing outside the called suit.
	if leading || leadIsCalled {
		return nil
	}
	for _, c := range hand {
		if c.Suit != g.CalledSuit || c.IsTrump() || c.IsExcuse() {
			return errCalledSuitFirst
		}
	}
	return nil
}

// checkOvertrump enforces the obligation to beat the highest trump already in
// the trick when holding a higher one.
func checkOvertrump(card Card, hand []Card, trick []TrickPlay) error {
	highest := highestTrumpIn(trick)
	if card.Rank > highest {
		return nil
	}
	for _, c := range hand {
		if c.IsTrump() && c.Rank > highest {
			return errMustOvertrump
		}
	}
	return nil
}

func hasTrump(hand []Card) bool {
	for _, c := range hand {
		if c.IsTrump() {
			return true
		}
	}
	return false
}

func hasSuit(hand []Card, s Suit) bool {
	for _, c := range hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// highestTrumpIn returns the highest trump rank in the trick, 0 when no trump
// has been played.
func highestTrumpIn(trick []TrickPlay) int {
	highest := 0
	for _, p := range trick {
		if p.Card.IsTrump() && p.Card.Rank > highest {
			highest = p.Card.Rank
		}
	}
	return highest
}
