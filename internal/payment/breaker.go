package payment

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerProvider wraps a Provider with a circuit breaker so a struggling
// processor stops eating checkout requests.
type BreakerProvider struct {
	inner   Provider
	charges *gobreaker.CircuitBreaker[ChargeResult]
	refunds *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerProvider(inner Provider) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:    "payment-provider",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &BreakerProvider{
		inner:   inner,
		charges: gobreaker.NewCircuitBreaker[ChargeResult](settings),
		refunds: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (b *BreakerProvider) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	return b.charges.Execute(func() (ChargeResult, error) {
		return b.inner.Charge(ctx, req)
	})
}

func (b *BreakerProvider) Refund(ctx context.Context, req RefundRequest) error {
	_, err := b.refunds.Execute(func() (struct{}, error) {
		return struct{}{}, b.inner.Refund(ctx, req)
	})
	return err
}
