package domain

// Bid is a bidding action. Non-pass values are ordered by strength and double
// as the contract once bidding resolves.
type Bid int

const (
	BidPass Bid = iota
	BidPetite
	BidGarde
	BidGardeSans
	BidGardeContre
)

var bidNames = map[Bid]string{
	BidPass:        "pass",
	BidPetite:      "petite",
	BidGarde:       "garde",
	BidGardeSans:   "garde-sans",
	BidGardeContre: "garde-contre",
}

func (b Bid) String() string {
	if name, ok := bidNames[b]; ok {
		return name
	}
	return "unknown"
}

// ParseBid maps a wire name to a Bid.
func ParseBid(s string) (Bid, error) {
	for b, name := range bidNames {
		if name == s {
			return b, nil
		}
	}
	return BidPass, RuleError("unknown bid: " + s)
}

// Valid reports whether the value is one of the defined bids.
func (b Bid) Valid() bool {
	_, ok := bidNames[b]
	return ok
}

// Multiplier returns the contract score multiplier: petite 1, garde 2,
// garde-sans 4, garde-contre 6.
func (b Bid) Multiplier() int {
	switch b {
	case BidGarde:
		return 2
	case BidGardeSans:
		return 4
	case BidGardeContre:
		return 6
	default:
		return 1
	}
}

// BidRecord is one accepted bidding action.
type BidRecord struct {
	Seat int `json:"seat"`
	Bid  Bid `json:"bid"`
}

// HighestBid returns the strongest non-pass bid recorded so far, or BidPass
// when everyone has passed.
func HighestBid(bids []BidRecord) (Bid, int) {
	best := BidPass
	seat := -1
	for _, r := range bids {
		if r.Bid != BidPass && r.Bid > best {
			best = r.Bid
			seat = r.Seat
		}
	}
	return best, seat
}
