package app

import (
	"errors"

	"tarot/internal/domain"
)

// ProtocolError marks requests that are malformed or out of sequence,
// as opposed to well-formed actions that the rules forbid.
type ProtocolError string

func (e ProtocolError) Error() string { return string(e) }

var (
	ErrNotYourTurn = ProtocolError("not your turn")
	ErrWrongPhase  = ProtocolError("action not valid in this phase")
	ErrNotTaker    = ProtocolError("only the taker may do that")
	ErrCardNotHeld = ProtocolError("card is not in your hand")
	ErrSettling    = ProtocolError("trick is still settling")
	ErrNotSettling = ProtocolError("no trick is settling")
	ErrHandNotOver = ProtocolError("hand is not finished")
	ErrUnknownBid  = ProtocolError("unknown bid")
)

// ViolationClass buckets a rejected action for client reporting.
type ViolationClass string

const (
	ViolationProtocol  ViolationClass = "protocol"
	ViolationRule      ViolationClass = "rule"
	ViolationInvariant ViolationClass = "invariant"
)

// Classify maps an error from a Service call onto a violation class.
func Classify(err error) ViolationClass {
	var pe ProtocolError
	if errors.As(err, &pe) {
		return ViolationProtocol
	}
	var re domain.RuleError
	if errors.As(err, &re) {
		return ViolationRule
	}
	return ViolationInvariant
}
