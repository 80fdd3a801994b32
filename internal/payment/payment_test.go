package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChargeSuccess(t *testing.T) {
	when := time.UnixMilli(1700000000000)
	s := &Simulator{Roll: func() float64 { return 0.1 }, Now: func() time.Time { return when }}

	txn, err := s.Charge(context.Background(), 7, 300.0)
	require.NoError(t, err)
	require.Equal(t, "TXN-1700000000000", txn)
	require.True(t, strings.HasPrefix(txn, "TXN-"))
}

func TestChargeDeclined(t *testing.T) {
	s := &Simulator{Roll: func() float64 { return 0.95 }}

	txn, err := s.Charge(context.Background(), 7, 300.0)
	require.ErrorIs(t, err, ErrDeclined)
	require.Empty(t, txn)
}
