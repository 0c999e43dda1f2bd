package domain

import "math"

// InvariantError marks a state corruption that is fatal to this table's hand
// but must not take down the process or other tables.
type InvariantError string

func (e InvariantError) Error() string { return string(e) }

// RequiredPoints is the threshold the taker's side must reach, as a step
// function of the bouts it holds: 56, 51, 41 and 36 points out of 91.
func RequiredPoints(bouts int) float64 {
	switch bouts {
	case 0:
		return 56
	case 1:
		return 51
	case 2:
		return 41
	default:
		return 36
	}
}

// PetitAuBoutBonus is the bonus or malus applied to the base score when trump
// 1 is played in the final trick.
const PetitAuBoutBonus = 10.0

// HandResult is the full scoring breakdown of a finished hand.
type HandResult struct {
	TakerPoints   float64   `json:"taker_points"`
	DefensePoints float64   `json:"defense_points"`
	Bouts         int       `json:"bouts"`
	Required      float64   `json:"required"`
	Difference    float64   `json:"difference"`
	PetitAuBout   bool      `json:"petit_au_bout"`
	PetitBonus    float64   `json:"petit_bonus"`
	Base          float64   `json:"base"`
	Multiplier    int       `json:"multiplier"`
	Final         float64   `json:"final"` // signed: negative when the contract fails
	Success       bool      `json:"success"`
	Contract      Bid       `json:"contract"`
	SeatScores    []float64 `json:"seat_scores"`
}

// ScoreHand computes the end-of-hand result from the accumulated per-trick
// totals, the dog disposition for the contract, the bout threshold, the petit
// au bout bonus and the contract multiplier, then distributes signed scores
// across seats. The distribution always sums to zero.
func ScoreHand(g *Game) (HandResult, error) {
	taker := g.TakerPoints
	defense := g.DefensePoints

	// Dog disposition is applied exactly once, here.
	switch g.Contract {
	case BidPetite, BidGarde:
		taker += SumPoints(g.Discards)
	case BidGardeSans:
		defense += SumPoints(g.Dog)
	case BidGardeContre:
		taker += SumPoints(g.Dog)
	default:
		return HandResult{}, InvariantError("scoring without a contract")
	}

	if taker+defense != DeckPoints {
		return HandResult{}, InvariantError("card points do not sum to 91")
	}

	required := RequiredPoints(g.TakerBouts)
	diff := taker - required

	bonus := 0.0
	if g.PetitAuBout {
		if g.PetitAuBoutTaker {
			bonus = PetitAuBoutBonus
		} else {
			bonus = -PetitAuBoutBonus
		}
	}

	base := 25 + math.Abs(diff) + bonus
	final := base * float64(g.Contract.Multiplier())
	success := diff >= 0
	if !success {
		final = -final
	}

	seatScores, err := DistributeScores(final, g.SeatCount, g.Side())
	if err != nil {
		return HandResult{}, err
	}

	return HandResult{
		TakerPoints:   taker,
		DefensePoints: defense,
		Bouts:         g.TakerBouts,
		Required:      required,
		Difference:    diff,
		PetitAuBout:   g.PetitAuBout,
		PetitBonus:    bonus,
		Base:          base,
		Multiplier:    g.Contract.Multiplier(),
		Final:         final,
		Success:       success,
		Contract:      g.Contract,
		SeatScores:    seatScores,
	}, nil
}

// DistributeScores spreads the signed hand score across seats. The taker
// carries the defenders' combined stake: 2x at three seats, 3x at four, and
// at five seats either 4x alone or 2x with the partner at 1x. Each defender
// always moves by -1x.
func DistributeScores(final float64, seatCount int, side TakerSide) ([]float64, error) {
	scores := make([]float64, seatCount)

	takerShare := 0.0
	switch {
	case seatCount == 3:
		takerShare = 2
	case seatCount == 4:
		takerShare = 3
	case seatCount == 5 && side.Solo():
		takerShare = 4
	case seatCount == 5:
		takerShare = 2
	default:
		return nil, InvariantError("score distribution for unsupported seat count")
	}

	sum := 0.0
	for seat := range scores {
		switch {
		case seat == side.Taker:
			scores[seat] = final * takerShare
		case !side.Solo() && seat == side.Partner:
			scores[seat] = final
		default:
			scores[seat] = -final
		}
		sum += scores[seat]
	}
	if sum != 0 {
		return nil, InvariantError("seat scores do not sum to zero")
	}
	return scores, nil
}
