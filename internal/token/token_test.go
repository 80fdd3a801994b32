package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueValidateRoundTrip(t *testing.T) {
	svc := &Service{Secret: []byte("test-secret")}

	raw, err := svc.Issue(42, "USER")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	id, err := svc.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, 42, id.UserID)
	require.Equal(t, "USER", id.Role)
}

func TestValidateExpired(t *testing.T) {
	issued := time.Now()
	svc := &Service{Secret: []byte("test-secret"), TTL: time.Hour, Now: func() time.Time { return issued }}

	raw, err := svc.Issue(7, "ADMIN")
	require.NoError(t, err)

	svc.Now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.Validate(raw)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateBadSignature(t *testing.T) {
	issuer := &Service{Secret: []byte("secret-a")}
	raw, err := issuer.Issue(1, "USER")
	require.NoError(t, err)

	verifier := &Service{Secret: []byte("secret-b")}
	_, err = verifier.Validate(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateMalformed(t *testing.T) {
	svc := &Service{Secret: []byte("test-secret")}
	_, err := svc.Validate("not.a.token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateNonIntegerSubject(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"sub":  "not-a-number",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	svc := &Service{Secret: secret}
	_, err = svc.Validate(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
