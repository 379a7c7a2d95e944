// Package share issues and verifies signed, expiring links to a bill's split.
package share

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired share token")
	ErrMissingToken = errors.New("share token required")
	ErrNoSecret     = errors.New("share secret must not be empty")
)

const issuer = "splitit"

// Signer handles share token generation and validation.
type Signer struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// Claims are the JWT claims of a share token.
type Claims struct {
	BillID string `json:"bill_id"`
	jwt.RegisteredClaims
}

// NewSigner creates a signer with the given HMAC secret and token lifetime.
// A zero duration means tokens never expire.
func NewSigner(secretKey string, tokenDuration time.Duration) (*Signer, error) {
	if secretKey == "" {
		return nil, ErrNoSecret
	}
	return &Signer{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}, nil
}

// Issue creates a token granting read access to the bill.
func (s *Signer) Issue(billID string) (string, error) {
	now := s.now()
	claims := &Claims{
		BillID: billID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   billID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if s.tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token, returning the bill it grants access to.
func (s *Signer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.BillID == "" {
		return "", ErrInvalidToken
	}
	return claims.BillID, nil
}
