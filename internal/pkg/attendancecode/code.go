// Package attendancecode generates the short numeric codes students redeem
// to self-report presence.
package attendancecode

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Length of a generated code in digits.
const Length = 6

const codeSpace = 1000000

// New draws a uniform random 6-digit code. Leading zeros are preserved, so
// "004821" is a valid code. Uniqueness among active codes is enforced by the
// caller against the code registry, not here.
func New() (string, error) {
	// Rejection sampling keeps the draw uniform over the code space.
	max := (^uint32(0) / codeSpace) * codeSpace
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		v := binary.BigEndian.Uint32(buf[:])
		if v < max {
			return fmt.Sprintf("%06d", v%codeSpace), nil
		}
	}
}
