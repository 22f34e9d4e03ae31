// Package shortid generates short, human-shareable identifiers.
package shortid

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// Alphabet excludes visually confusable characters (0/O, I/1/l) so ids stay
// safe to read aloud or retype.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// DefaultLength is the length of short-link identifiers.
const DefaultLength = 6

// DefaultMaxAttempts bounds collision retries. Length 6 over this alphabet
// gives ~2.8e10 combinations, so exhausting the budget signals a corrupt or
// near-full id space rather than bad luck.
const DefaultMaxAttempts = 10

// ExistsFunc probes the backing store for a candidate id. The allocator
// performs no writes itself; reservation atomicity belongs to the caller.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Allocate draws length characters uniformly from charset and retries on
// collision, up to maxAttempts times. It returns an EXHAUSTED domain error
// when every attempt collides.
func Allocate(ctx context.Context, charset string, length int, exists ExistsFunc, maxAttempts int) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := draw(charset, length)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", apperrors.NewExhausted("short id allocation exhausted retry budget")
}

func draw(charset string, length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(charset[rand.IntN(len(charset))])
	}
	return b.String()
}

// NewActivationID returns the first segment (8 hex characters) of a random
// 128-bit identifier. Uniqueness is not re-checked: collision probability is
// negligible at that width.
func NewActivationID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
