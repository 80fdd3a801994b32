// Package payment isolates the payment step behind a gateway interface so the
// purchase workflow never depends on how a charge is actually made.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrDeclined is returned when a charge does not go through. The caller is
// expected to retry the whole purchase, not resume it.
var ErrDeclined = errors.New("payment declined")

type Gateway interface {
	// Charge attempts to take amount from the user and returns a transaction
	// identifier on success.
	Charge(ctx context.Context, userID int, amount float64) (string, error)
}

// Simulator stands in for a real payment provider. Charges succeed with
// SuccessRate probability (default 0.8) and produce a timestamp-derived
// transaction id, unique enough for display and audit purposes.
type Simulator struct {
	SuccessRate float64
	Roll        func() float64
	Now         func() time.Time
}

func (s *Simulator) rate() float64 {
	if s.SuccessRate > 0 {
		return s.SuccessRate
	}
	return 0.8
}

func (s *Simulator) roll() float64 {
	if s.Roll != nil {
		return s.Roll()
	}
	return rand.Float64()
}

func (s *Simulator) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Simulator) Charge(_ context.Context, _ int, _ float64) (string, error) {
	if s.roll() >= s.rate() {
		return "", ErrDeclined
	}
	return fmt.Sprintf("TXN-%d", s.now().UnixMilli()), nil
}
