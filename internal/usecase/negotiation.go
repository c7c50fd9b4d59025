package usecase

import (
	"time"

	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/protocol"
)

type OfferKind int

const (
	OfferDraw OfferKind = iota
	OfferRematch
)

func (that OfferKind) String() string {
	if that == OfferRematch {
		return "rematch"
	}

	return "draw"
}

// NegotiationPolicy - zero durations disable the matching timer.
type NegotiationPolicy struct {
	AnswerTimeout  time.Duration
	AcceptDisplay  time.Duration
	DeclineDisplay time.Duration
}

type TimerKind int

const (
	// TimerAnswer - an unanswered Requested offer is declined.
	TimerAnswer TimerKind = iota
	// TimerRevert - Accepted or Declined falls back to None.
	TimerRevert
)

// Timer - a deadline the caller must schedule and hand back through Expire.
type Timer struct {
	Offer      OfferKind
	Kind       TimerKind
	Generation uint64
	After      time.Duration
}

// Outcome - what a transition asks of the caller. Both fields are optional.
type Outcome struct {
	Command protocol.Command
	Timer   *Timer
}

// Negotiation - one draw or rematch sub-protocol. Not safe for concurrent use.
type Negotiation struct {
	kind       OfferKind
	policy     NegotiationPolicy
	state      entity.NegotiationState
	generation uint64
}

func NewNegotiation(kind OfferKind, policy NegotiationPolicy) *Negotiation {
	return &Negotiation{kind: kind, policy: policy}
}

func (that *Negotiation) Kind() OfferKind {
	return that.kind
}

func (that *Negotiation) State() entity.NegotiationState {
	return that.state
}

// Propose - only from None.
func (that *Negotiation) Propose() (Outcome, bool) {
	if that.state != entity.NegotiationNone {
		return Outcome{}, false
	}

	that.transition(entity.NegotiationSent)

	return Outcome{Command: that.command(protocol.OfferRequest)}, true
}

// Answer - only while the peer's offer is waiting for us.
func (that *Negotiation) Answer(accept bool) (Outcome, bool) {
	if that.state != entity.NegotiationRequested {
		return Outcome{}, false
	}

	if accept {
		return that.settle(entity.NegotiationAccepted, protocol.OfferAccept), true
	}

	return that.settle(entity.NegotiationDeclined, protocol.OfferDecline), true
}

// Receive - the server broadcast overrides whatever we hold locally.
// proposedLocally tells whether the proposer of a Sent/Request event is us.
func (that *Negotiation) Receive(action protocol.OfferAction, proposedLocally bool) Outcome {
	switch action {
	case protocol.OfferSent, protocol.OfferRequest:
		if proposedLocally {
			that.transition(entity.NegotiationSent)
			return Outcome{}
		}

		that.transition(entity.NegotiationRequested)

		return Outcome{Timer: that.timer(TimerAnswer, that.policy.AnswerTimeout)}
	case protocol.OfferAccept:
		that.transition(entity.NegotiationAccepted)
		return Outcome{Timer: that.timer(TimerRevert, that.policy.AcceptDisplay)}
	case protocol.OfferDecline:
		that.transition(entity.NegotiationDeclined)
		return Outcome{Timer: that.timer(TimerRevert, that.policy.DeclineDisplay)}
	default:
		return Outcome{}
	}
}

// Expire - stale timers are ignored.
func (that *Negotiation) Expire(timer Timer) Outcome {
	if timer.Offer != that.kind || timer.Generation != that.generation {
		return Outcome{}
	}

	switch {
	case timer.Kind == TimerAnswer && that.state == entity.NegotiationRequested:
		return that.settle(entity.NegotiationDeclined, protocol.OfferDecline)
	case timer.Kind == TimerRevert && that.state.IsTransient():
		that.transition(entity.NegotiationNone)
	}

	return Outcome{}
}

// Reopen - puts an answer that never reached the peer back to Requested,
// with a fresh answer window.
func (that *Negotiation) Reopen() Outcome {
	if !that.state.IsTransient() {
		return Outcome{}
	}

	that.transition(entity.NegotiationRequested)

	return Outcome{Timer: that.timer(TimerAnswer, that.policy.AnswerTimeout)}
}

// Dismiss - clears a shown result early.
func (that *Negotiation) Dismiss() bool {
	if !that.state.IsTransient() {
		return false
	}

	that.transition(entity.NegotiationNone)

	return true
}

// Reset - a new connection starts without pending offers.
func (that *Negotiation) Reset() {
	that.transition(entity.NegotiationNone)
}

func (that *Negotiation) settle(state entity.NegotiationState, action protocol.OfferAction) Outcome {
	that.transition(state)

	after := that.policy.DeclineDisplay
	if state == entity.NegotiationAccepted {
		after = that.policy.AcceptDisplay
	}

	return Outcome{
		Command: that.command(action),
		Timer:   that.timer(TimerRevert, after),
	}
}

func (that *Negotiation) transition(state entity.NegotiationState) {
	that.state = state
	that.generation++
}

func (that *Negotiation) timer(kind TimerKind, after time.Duration) *Timer {
	if after <= 0 {
		return nil
	}

	return &Timer{Offer: that.kind, Kind: kind, Generation: that.generation, After: after}
}

func (that *Negotiation) command(action protocol.OfferAction) protocol.Command {
	switch {
	case that.kind == OfferRematch && action == protocol.OfferAccept:
		return protocol.AcceptRematch()
	case that.kind == OfferRematch && action == protocol.OfferDecline:
		return protocol.DeclineRematch()
	case that.kind == OfferRematch:
		return protocol.ProposeRematch()
	case action == protocol.OfferAccept:
		return protocol.AcceptDraw()
	case action == protocol.OfferDecline:
		return protocol.DeclineDraw()
	default:
		return protocol.ProposeDraw()
	}
}
