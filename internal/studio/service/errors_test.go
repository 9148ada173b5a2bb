package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Run("tagged errors report their kind", func(t *testing.T) {
		require.Equal(t, KindValidation, KindOf(E(KindValidation, "nope")))
		require.Equal(t, KindCannotChangeOwner, KindOf(E(KindCannotChangeOwner, "nope")))
	})

	t.Run("store failures are database errors", func(t *testing.T) {
		err := dbError(errors.New("disk on fire"))
		require.Equal(t, KindDatabase, KindOf(err))
	})

	t.Run("local failures are internal, not database", func(t *testing.T) {
		err := internalError(errors.New("entropy pool exhausted"))
		require.Equal(t, KindInternal, KindOf(err))
	})

	t.Run("kind survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("sending invite: %w", internalError(errors.New("rand failed")))
		require.Equal(t, KindInternal, KindOf(err))
	})

	t.Run("untagged errors fall back to internal", func(t *testing.T) {
		require.Equal(t, KindInternal, KindOf(errors.New("who knows")))
	})
}
