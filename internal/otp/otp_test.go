package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		seen[code] = true
	}
	require.Greater(t, len(seen), 1, "codes should not all collide")
}

func TestStoreConsume(t *testing.T) {
	s := NewStore()
	s.Put("user@example.com", "123456")

	require.False(t, s.Consume("user@example.com", "000000"))
	require.True(t, s.Consume("user@example.com", "123456"))
	require.False(t, s.Consume("user@example.com", "123456"), "consumed entry is gone")
	require.False(t, s.Consume("other@example.com", "123456"))
}

func TestStoreExpiry(t *testing.T) {
	now := time.Now()
	s := NewStore()
	s.Now = func() time.Time { return now }
	s.Put("user@example.com", "123456")

	now = now.Add(DefaultTTL + time.Second)
	require.False(t, s.Consume("user@example.com", "123456"))
}
