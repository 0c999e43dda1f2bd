package app

import (
	"math/rand"
	"time"

	"tarot/internal/domain"
)

// Service contains the tarot use-cases operating on domain state. Every
// mutating call returns the events the caller should dispatch, in order.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// StartDeal shuffles, deals and opens the auction. firstSeat bids first and
// will lead trick 1; callers rotate it between deals.
func (s *Service) StartDeal(seatCount, firstSeat int) (*domain.Game, []Event, error) {
	deck := domain.ShuffleDeck(domain.NewDeck(), s.rng)
	hands, dog, err := domain.Deal(deck, seatCount)
	if err != nil {
		return nil, nil, err
	}
	for _, h := range hands {
		domain.SortHand(h)
	}

	g := &domain.Game{
		SeatCount:   seatCount,
		Phase:       domain.PhaseBidding,
		FirstSeat:   firstSeat,
		CurrentSeat: firstSeat,
		Hands:       hands,
		TakerSeat:   -1,
		PartnerSeat: -1,
		Dog:         dog,
	}

	events := make([]Event, 0, seatCount+1)
	for seat := 0; seat < seatCount; seat++ {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Seat:      seat,
				Hand:      g.Hands[seat],
				SeatCount: seatCount,
				FirstSeat: firstSeat,
				DogSize:   len(dog),
			},
			Seats: []int{seat},
		})
	}
	events = append(events, Event{
		Kind:    EventBiddingTurn,
		Payload: BiddingTurnPayload{Seat: firstSeat},
	})
	return g, events, nil
}

// Redeal starts a fresh deal after an all-pass auction, rotating the first
// bidder one seat.
func (s *Service) Redeal(g *domain.Game) (*domain.Game, []Event, error) {
	return s.StartDeal(g.SeatCount, g.NextSeat(g.FirstSeat))
}

// Restart deals the next hand at a finished table.
func (s *Service) Restart(g *domain.Game) (*domain.Game, []Event, error) {
	if g.Phase != domain.PhaseFinished {
		return nil, nil, ErrHandNotOver
	}
	return s.StartDeal(g.SeatCount, g.NextSeat(g.FirstSeat))
}

// SubmitBid records one auction action. Each seat acts exactly once; any
// non-pass must outrank the standing bid, and garde contre ends the auction
// immediately.
func (s *Service) SubmitBid(g *domain.Game, seat int, bid domain.Bid) ([]Event, error) {
	if g.Phase != domain.PhaseBidding {
		return nil, ErrWrongPhase
	}
	if seat != g.CurrentSeat {
		return nil, ErrNotYourTurn
	}
	if !bid.Valid() {
		return nil, ErrUnknownBid
	}
	if bid != domain.BidPass {
		if best, _ := domain.HighestBid(g.Bids); bid <= best {
			return nil, domain.RuleError("bid must outrank the standing bid")
		}
	}

	g.Bids = append(g.Bids, domain.BidRecord{Seat: seat, Bid: bid})
	events := []Event{{
		Kind:    EventBidRecorded,
		Payload: BidRecordedPayload{Seat: seat, Bid: bid.String()},
	}}

	if bid == domain.BidGardeContre || len(g.Bids) == g.SeatCount {
		return append(events, s.resolveBidding(g)...), nil
	}

	g.CurrentSeat = g.NextSeat(seat)
	return append(events, Event{
		Kind:    EventBiddingTurn,
		Payload: BiddingTurnPayload{Seat: g.CurrentSeat},
	}), nil
}

func (s *Service) resolveBidding(g *domain.Game) []Event {
	best, takerSeat := domain.HighestBid(g.Bids)
	if takerSeat < 0 {
		// Everyone passed; the table redeals with a rotated first bidder.
		g.Phase = domain.PhaseFinished
		return []Event{{Kind: EventAllPassed, Payload: struct{}{}}}
	}

	g.Contract = best
	g.TakerSeat = takerSeat

	resolved := BiddingResolvedPayload{Taker: takerSeat, Contract: best.String()}
	if best <= domain.BidGarde {
		resolved.Dog = g.Dog
	}
	events := []Event{{Kind: EventBiddingResolved, Payload: resolved}}

	if g.SeatCount == 5 {
		g.Phase = domain.PhaseKingCall
		g.CurrentSeat = takerSeat
		return append(events, Event{
			Kind:    EventKingCallRequest,
			Payload: KingCallRequestPayload{Taker: takerSeat},
		})
	}
	return append(events, s.afterCall(g)...)
}

// SubmitKingCall names the partner suit at a five-seat table. The holder of
// the called king becomes the silent partner; a king in the taker's own hand
// or in the dog leaves the taker alone.
func (s *Service) SubmitKingCall(g *domain.Game, seat int, suit domain.Suit) ([]Event, error) {
	if g.Phase != domain.PhaseKingCall {
		return nil, ErrWrongPhase
	}
	if seat != g.TakerSeat {
		return nil, ErrNotTaker
	}
	if !suit.Ordinary() {
		return nil, domain.RuleError("called suit must be spades, hearts, clubs or diamonds")
	}

	g.CalledSuit = suit
	king := domain.Card{Suit: suit, Rank: domain.RankKing}
	g.PartnerSeat = -1
	for holder := 0; holder < g.SeatCount; holder++ {
		if holder != g.TakerSeat && domain.ContainsCard(g.Hands[holder], king) {
			g.PartnerSeat = holder
			break
		}
	}

	events := []Event{{
		Kind:    EventKingCallResolved,
		Payload: KingCallResolvedPayload{Taker: g.TakerSeat, Suit: suit},
	}}
	return append(events, s.afterCall(g)...), nil
}

// afterCall routes to the dog phase or straight to play, per the contract's
// dog handling.
func (s *Service) afterCall(g *domain.Game) []Event {
	if g.Contract <= domain.BidGarde {
		g.Phase = domain.PhaseDiscard
		g.CurrentSeat = g.TakerSeat
		hand := append(g.Hands[g.TakerSeat], g.Dog...)
		domain.SortHand(hand)
		g.Hands[g.TakerSeat] = hand
		return []Event{{
			Kind: EventDogRequest,
			Payload: DogRequestPayload{
				Hand:        hand,
				Dog:         g.Dog,
				DiscardSize: domain.DogSize(g.SeatCount),
			},
			Seats: []int{g.TakerSeat},
		}}
	}
	// Garde sans and garde contre play the dog untouched; scoring settles
	// which side its points count for.
	return s.startPlay(g)
}

// SubmitDiscard returns the taker's face-down discard set and begins play.
func (s *Service) SubmitDiscard(g *domain.Game, seat int, discards []domain.Card) ([]Event, error) {
	if g.Phase != domain.PhaseDiscard {
		return nil, ErrWrongPhase
	}
	if seat != g.TakerSeat {
		return nil, ErrNotTaker
	}
	if err := domain.ValidateDiscard(g.Hands[seat], discards, domain.DogSize(g.SeatCount)); err != nil {
		return nil, err
	}

	domain.ApplyDiscard(g, seat, discards)
	events := []Event{
		{
			Kind:    EventDogResolved,
			Payload: DogResolvedPayload{Taker: seat, DiscardSize: len(discards)},
		},
		{
			Kind:    EventHandUpdated,
			Payload: HandUpdatedPayload{Seat: seat, Hand: g.Hands[seat]},
			Seats:   []int{seat},
		},
	}
	return append(events, s.startPlay(g)...), nil
}

func (s *Service) startPlay(g *domain.Game) []Event {
	g.Phase = domain.PhasePlaying
	g.TrickNumber = 1
	g.Trick = nil
	g.LeadSuit = nil
	g.CurrentSeat = g.FirstSeat
	return []Event{{
		Kind:    EventTrickReset,
		Payload: TrickResetPayload{Leader: g.FirstSeat, TrickNumber: 1},
	}}
}

// SubmitPlay plays one card for the acting seat. When the card completes the
// trick the hand enters a settling pause; the caller releases it with
// FinishSettle after its presentation delay.
func (s *Service) SubmitPlay(g *domain.Game, seat int, card domain.Card) ([]Event, error) {
	if g.Phase != domain.PhasePlaying {
		return nil, ErrWrongPhase
	}
	if g.Settling {
		return nil, ErrSettling
	}
	if seat != g.CurrentSeat {
		return nil, ErrNotYourTurn
	}
	hand := g.Hands[seat]
	if !domain.ContainsCard(hand, card) {
		return nil, ErrCardNotHeld
	}
	if err := domain.CheckPlay(card, hand, g); err != nil {
		return nil, err
	}

	g.Hands[seat], _ = domain.RemoveCard(hand, card)
	g.Trick = append(g.Trick, domain.TrickPlay{Seat: seat, Card: card})
	if g.LeadSuit == nil && !card.IsExcuse() {
		// The first non-excuse card of the trick fixes the led suit.
		lead := card.Suit
		if card.IsTrump() {
			lead = domain.SuitTrump
		}
		g.LeadSuit = &lead
	}

	played := CardPlayedPayload{
		Seat:      seat,
		Card:      card,
		Trick:     g.Trick,
		Remaining: len(g.Hands[seat]),
		NextSeat:  -1,
	}

	if len(g.Trick) < g.SeatCount {
		g.CurrentSeat = g.NextSeat(seat)
		played.NextSeat = g.CurrentSeat
		return []Event{{Kind: EventCardPlayed, Payload: played}}, nil
	}

	delta := domain.ResolveTrick(g.Trick, g.LeadSuit, g.Side())
	g.TakerPoints += delta.TakerPoints
	g.DefensePoints += delta.DefensePoints
	g.TakerBouts += delta.TakerBouts
	g.LastWinner = delta.Winner
	g.Settling = true

	if g.HandsExhausted() {
		for _, p := range g.Trick {
			if p.Card.IsTrump() && p.Card.Rank == domain.TrumpPetit {
				g.PetitAuBout = true
				g.PetitAuBoutTaker = g.Side().Holds(delta.Winner)
			}
		}
	}

	return []Event{
		{Kind: EventCardPlayed, Payload: played},
		{
			Kind: EventTrickResolved,
			Payload: TrickResolvedPayload{
				Winner:        delta.Winner,
				TrickNumber:   g.TrickNumber,
				TakerPoints:   g.TakerPoints,
				DefensePoints: g.DefensePoints,
				TakerBouts:    g.TakerBouts,
			},
		},
	}, nil
}

// FinishSettle releases the settling pause after a completed trick. It either
// opens the next trick under the winner's lead or, when the hands are out,
// scores the whole hand.
func (s *Service) FinishSettle(g *domain.Game) ([]Event, error) {
	if g.Phase != domain.PhasePlaying || !g.Settling {
		return nil, ErrNotSettling
	}
	g.Settling = false

	if g.HandsExhausted() {
		result, err := domain.ScoreHand(g)
		if err != nil {
			return nil, err
		}
		g.Phase = domain.PhaseFinished
		return []Event{{Kind: EventHandFinished, Payload: HandFinishedPayload{Result: result}}}, nil
	}

	g.TrickNumber++
	g.Trick = nil
	g.LeadSuit = nil
	g.CurrentSeat = g.LastWinner
	return []Event{{
		Kind:    EventTrickReset,
		Payload: TrickResetPayload{Leader: g.LastWinner, TrickNumber: g.TrickNumber},
	}}, nil
}
