package domain

// TrickDelta is the side-tagged outcome of one completed trick: who won, and
// which points and bouts each side earned. The excuse is credited to the side
// that played it; everything else follows the trick winner.
type TrickDelta struct {
	Winner        int
	TakerPoints   float64
	DefensePoints float64
	TakerBouts    int
	DefenseBouts  int
}

// WinningSeat determines the winner of a completed trick. The excuse never
// wins; any trump beats any non-trump; among trumps the highest rank wins;
// among plain cards only the led suit competes, highest rank winning (court
// ranks sit above the 10). ledSuit may be nil when the excuse opened the
// trick and nobody else played, in which case it is derived from the first
// non-excuse card.
func WinningSeat(trick []TrickPlay, ledSuit *Suit) int {
	lead := deriveLead(trick, ledSuit)

	winner := -1
	var best Card
	for _, p := range trick {
		if p.Card.IsExcuse() {
			continue
		}
		if winner < 0 || beats(p.Card, best, lead) {
			best = p.Card
			winner = p.Seat
		}
	}
	if winner < 0 {
		// Degenerate trick of a lone excuse; the player keeps the lead.
		return trick[0].Seat
	}
	return winner
}

// ResolveTrick runs the single point-attribution step for a completed trick.
func ResolveTrick(trick []TrickPlay, ledSuit *Suit, side TakerSide) TrickDelta {
	delta := TrickDelta{Winner: WinningSeat(trick, ledSuit)}
	winnerIsTaker := side.Holds(delta.Winner)

	for _, p := range trick {
		if p.Card.IsExcuse() {
			// Points and bout stay with the side that played it.
			if side.Holds(p.Seat) {
				delta.TakerPoints += p.Card.Points()
				delta.TakerBouts++
			} else {
				delta.DefensePoints += p.Card.Points()
				delta.DefenseBouts++
			}
			continue
		}
		if winnerIsTaker {
			delta.TakerPoints += p.Card.Points()
		} else {
			delta.DefensePoints += p.Card.Points()
		}
		if p.Card.IsBout() {
			if winnerIsTaker {
				delta.TakerBouts++
			} else {
				delta.DefenseBouts++
			}
		}
	}
	return delta
}

func beats(c, best Card, lead Suit) bool {
	if c.IsTrump() {
		if best.IsTrump() {
			return c.Rank > best.Rank
		}
		return true
	}
	if best.IsTrump() {
		return false
	}
	if c.Suit == lead && best.Suit != lead {
		return true
	}
	if c.Suit == lead && best.Suit == lead {
		return c.Rank > best.Rank
	}
	return false
}

func deriveLead(trick []TrickPlay, ledSuit *Suit) Suit {
	if ledSuit != nil {
		return *ledSuit
	}
	for _, p := range trick {
		if !p.Card.IsExcuse() {
			if p.Card.IsTrump() {
				return SuitTrump
			}
			return p.Card.Suit
		}
	}
	return SuitExcuse
}
