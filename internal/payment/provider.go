// Package payment is the boundary to the payment processor. The rest of the
// repo only sees Provider; whether a charge is real or simulated is wiring.
package payment

import (
	"context"

	"github.com/JackHouche/cbdproject/internal/domain"
)

type ChargeStatus int

const (
	ChargeStatusUnknown ChargeStatus = iota
	ChargeStatusSuccess
	ChargeStatusFailed
)

type RefusalReason int

const (
	RefusalUnknown RefusalReason = iota
	RefusalInsufficientFunds
	RefusalCardExpired
	RefusalCardBlocked
	RefusalSuspectedFraud
	RefusalLimitExceeded
)

func (r RefusalReason) String() string {
	switch r {
	case RefusalInsufficientFunds:
		return "insufficient funds"
	case RefusalCardExpired:
		return "card expired"
	case RefusalCardBlocked:
		return "card blocked"
	case RefusalSuspectedFraud:
		return "suspected fraud"
	case RefusalLimitExceeded:
		return "limit exceeded"
	}
	return "unknown reason"
}

type ChargeRequest struct {
	CheckoutID string
	Amount     domain.Cents // minor units, always
	Currency   string
}

type ChargeResult struct {
	Status        ChargeStatus
	TransactionID string
	Refusal       RefusalReason
	RefusalOther  string
}

// Succeeded reports whether the processor accepted the charge.
func (r ChargeResult) Succeeded() bool {
	return r.Status == ChargeStatusSuccess
}

// RefusalMessage renders the refusal for user-facing error surfaces.
func (r ChargeResult) RefusalMessage() string {
	if r.RefusalOther != "" {
		return r.RefusalOther
	}
	return r.Refusal.String()
}

type RefundRequest struct {
	TransactionID string
	Amount        domain.Cents
}

// Provider accepts an amount in minor units and answers with an opaque
// transaction identifier. A transport error is returned as error; a refused
// charge comes back in the result.
type Provider interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
	Refund(ctx context.Context, req RefundRequest) error
}
