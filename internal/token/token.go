// Package token issues and validates the signed identity tokens presented on
// every request. Tokens are stateless: nothing is stored server-side, blocking
// a user is enforced at request time against the user store instead.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const DefaultTTL = 24 * time.Hour

type Identity struct {
	UserID int
	Role   string
}

// Service signs with a single shared HS256 secret loaded once at startup.
// Now is overridable for expiry tests and defaults to time.Now.
type Service struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultTTL
}

func (s *Service) Issue(userID int, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  strconv.Itoa(userID),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl()).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Validate returns ErrTokenExpired for a token past its expiry claim and
// ErrTokenInvalid for every other failure (bad signature, malformed payload,
// non-integer subject).
func (s *Service) Validate(raw string) (Identity, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return Identity{}, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, ErrTokenInvalid
	}
	userID, err := strconv.Atoi(sub)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{UserID: userID, Role: role}, nil
}
