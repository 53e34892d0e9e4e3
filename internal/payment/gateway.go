package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// OutcomeSource decides how a charge attempt ends. Injectable so tests can
// force success or a specific refusal.
type OutcomeSource interface {
	Outcome() (ChargeStatus, RefusalReason, string)
}

// RandomOutcome approves ~95% of charges, refuses the rest.
type RandomOutcome struct{}

func (RandomOutcome) Outcome() (ChargeStatus, RefusalReason, string) {
	n := rand.Intn(101) // 101 because Intn is exclusive of the upper bound
	return calcOutcome(n)
}

func calcOutcome(n int) (ChargeStatus, RefusalReason, string) {
	if n < 95 {
		return ChargeStatusSuccess, RefusalUnknown, ""
	}
	reason := n - 95
	if reason == 0 || reason > 5 {
		return ChargeStatusFailed, RefusalUnknown, "unknown reason"
	}
	return ChargeStatusFailed, RefusalReason(reason), ""
}

// AlwaysApprove is an OutcomeSource for tests and local runs.
type AlwaysApprove struct{}

func (AlwaysApprove) Outcome() (ChargeStatus, RefusalReason, string) {
	return ChargeStatusSuccess, RefusalUnknown, ""
}

// Gateway simulates the external processor. It never errors at the transport
// level; refusals travel in the result like the real processor's do.
type Gateway struct {
	outcome OutcomeSource
	now     func() time.Time
}

func NewGateway(outcome OutcomeSource) *Gateway {
	return &Gateway{
		outcome: outcome,
		now:     time.Now,
	}
}

func (g *Gateway) Charge(_ context.Context, req ChargeRequest) (ChargeResult, error) {
	status, refusal, other := g.outcome.Outcome()

	return ChargeResult{
		Status:        status,
		TransactionID: fmt.Sprintf("TXN-%d", g.now().UnixNano()),
		Refusal:       refusal,
		RefusalOther:  other,
	}, nil
}

// Refund always succeeds in the simulation.
func (g *Gateway) Refund(context.Context, RefundRequest) error {
	return nil
}
