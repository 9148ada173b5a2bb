package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

func TestInvitationAcceptable(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	accepted := now.Add(-time.Hour)

	pending := domain.Invitation{
		Status:    domain.InvitationPending,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	t.Run("pending unexpired unaccepted is acceptable", func(t *testing.T) {
		require.True(t, pending.Acceptable(now))
	})

	t.Run("non-pending statuses are not acceptable", func(t *testing.T) {
		for _, status := range []domain.InvitationStatus{
			domain.InvitationAccepted,
			domain.InvitationRevoked,
			domain.InvitationExpired,
		} {
			inv := pending
			inv.Status = status
			require.False(t, inv.Acceptable(now), "status %s", status)
		}
	})

	t.Run("accepted_at set makes it unacceptable regardless of status", func(t *testing.T) {
		inv := pending
		inv.AcceptedAt = &accepted
		require.False(t, inv.Acceptable(now))
	})

	t.Run("expiry is strict", func(t *testing.T) {
		inv := pending
		inv.ExpiresAt = now
		require.False(t, inv.Acceptable(now), "expires_at == now means expired")

		inv.ExpiresAt = now.Add(-time.Second)
		require.False(t, inv.Acceptable(now))

		inv.ExpiresAt = now.Add(time.Second)
		require.True(t, inv.Acceptable(now))
	})

	t.Run("zero expiry is unacceptable", func(t *testing.T) {
		inv := pending
		inv.ExpiresAt = time.Time{}
		require.False(t, inv.Acceptable(now))
	})
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	require.Equal(t, "amy@example.com", domain.NormalizeEmail("  Amy@Example.COM "))
	require.Equal(t, "", domain.NormalizeEmail("   "))
}
