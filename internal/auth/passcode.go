// Package auth guards bill edits with an optional passcode.
//
// Bills have no owner accounts. Whoever creates a bill may set a passcode;
// afterwards anyone may read the bill (through a share link) but edits must
// present the passcode. Only the bcrypt hash is stored.
//
// Leading and trailing whitespace is not part of a passcode. Passcodes travel
// in an HTTP header, and header values lose surrounding whitespace on the way.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasscodeLength is the shortest accepted passcode.
	MinPasscodeLength = 4
	// MaxPasscodeLength is the longest passcode bcrypt can hash, in bytes.
	MaxPasscodeLength = 72
)

var (
	ErrWeakPasscode     = fmt.Errorf("passcode must be at least %d characters", MinPasscodeLength)
	ErrPasscodeTooLong  = fmt.Errorf("passcode must be at most %d bytes", MaxPasscodeLength)
	ErrPasscodeRequired = errors.New("this bill is protected by a passcode")
	ErrPasscodeMismatch = errors.New("invalid passcode")
)

// HashPasscode validates and hashes a passcode. The empty passcode hashes to
// the empty string, meaning the bill is unguarded.
func HashPasscode(passcode string) (string, error) {
	if passcode == "" {
		return "", nil
	}
	passcode = strings.TrimSpace(passcode)
	if len(passcode) < MinPasscodeLength {
		return "", ErrWeakPasscode
	}
	if len(passcode) > MaxPasscodeLength {
		return "", ErrPasscodeTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hashed), nil
}

// CheckPasscode verifies passcode against a stored hash. An empty hash
// accepts anything.
func CheckPasscode(hash, passcode string) error {
	if hash == "" {
		return nil
	}
	passcode = strings.TrimSpace(passcode)
	if passcode == "" {
		return ErrPasscodeRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)); err != nil {
		return ErrPasscodeMismatch
	}
	return nil
}
