package verification

import (
	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/cryptox"
)

// DefaultAttempts is how many codes a user may enter per registration.
const DefaultAttempts = 2

type State int

const (
	StatePending State = iota
	StateAccepted
	StateRejected
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is the gate state after a submission.
type Result struct {
	State        State
	AttemptsLeft int
}

// Gate checks entered codes against the issued one. It starts Pending with
// DefaultAttempts; Accepted and Rejected are terminal. A Gate is used by one
// registration and is not safe for concurrent use.
type Gate struct {
	code         string
	attemptsLeft int
	state        State
}

func NewGate(code string) *Gate {
	return &Gate{code: code, attemptsLeft: DefaultAttempts, state: StatePending}
}

func (g *Gate) State() State { return g.state }

func (g *Gate) AttemptsLeft() int { return g.attemptsLeft }

// Submit checks one entered code. A wrong code that uses the last attempt
// moves the gate to Rejected and returns common.ErrVerificationExhausted;
// any submission to a finished gate returns common.ErrGateClosed.
func (g *Gate) Submit(code string) (Result, error) {
	if g.state != StatePending {
		return g.result(), common.ErrGateClosed
	}

	if cryptox.ConstantTimeEqual(code, g.code) {
		g.state = StateAccepted
		return g.result(), nil
	}

	g.attemptsLeft--
	if g.attemptsLeft <= 0 {
		g.attemptsLeft = 0
		g.state = StateRejected
		return g.result(), common.ErrVerificationExhausted
	}

	return g.result(), nil
}

func (g *Gate) result() Result {
	return Result{State: g.state, AttemptsLeft: g.attemptsLeft}
}
