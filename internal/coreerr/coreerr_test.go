package coreerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visaexpert/internal/coreerr"
)

func TestKindConstructors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind coreerr.Kind
	}{
		{"not_found", coreerr.NotFound("no rule %d", 5), coreerr.KindNotFound},
		{"bad_input", coreerr.BadInput("bad answer %q", "maybe"), coreerr.KindBadInput},
		{"conflict", coreerr.Conflict("version mismatch"), coreerr.KindConflict},
		{"internal", coreerr.Internal(errors.New("boom"), "unexpected state"), coreerr.KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, coreerr.Of(tc.err, tc.kind))
			for _, other := range []coreerr.Kind{coreerr.KindNotFound, coreerr.KindBadInput, coreerr.KindConflict, coreerr.KindInternal} {
				if other != tc.kind {
					assert.False(t, coreerr.Of(tc.err, other))
				}
			}
		})
	}
}

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	err1 := coreerr.NotFound("no rule %d", 1)
	err2 := coreerr.NotFound("no rule %d", 2)
	assert.True(t, errors.Is(err1, err2), "two not_found errors should match regardless of message")

	conflictErr := coreerr.Conflict("version mismatch")
	assert.False(t, errors.Is(err1, conflictErr))
}

func TestInternalUnwrapsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := coreerr.Internal(cause, "wrapped")
	require.ErrorIs(t, err, cause)
}
