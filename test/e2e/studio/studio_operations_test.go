package studio_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

func TestSchedulingFlow(t *testing.T) {
	baseURL, cleanup := setupStudioContainer(t)
	defer cleanup()

	client := studiosdk.NewSDKClient(baseURL)
	ctx := context.Background()

	owner, studio := createStudioWithOwner(t, client, "sched@example.com", "Schedule Studio")
	member := inviteAndAccept(t, client, owner, studio.ID, "drummer@example.com", "member")

	room, err := owner.CreateRoom(ctx, studio.ID, "Live Room", 8000)
	require.NoError(t, err)
	require.Equal(t, studio.ID, room.StudioID)

	day := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)

	t.Run("member books a session", func(t *testing.T) {
		session, err := member.BookSession(ctx, studio.ID, studiosdk.BookSessionRequest{
			RoomID:   room.ID,
			Title:    "Drum tracking",
			StartsAt: day,
			EndsAt:   day.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		require.Equal(t, "scheduled", session.Status)
		require.Equal(t, member.Identity().ID, session.BookedBy)
	})

	t.Run("overlapping booking rejected", func(t *testing.T) {
		_, err := owner.BookSession(ctx, studio.ID, studiosdk.BookSessionRequest{
			RoomID:   room.ID,
			Title:    "Clash",
			StartsAt: day.Add(time.Hour),
			EndsAt:   day.Add(3 * time.Hour),
		})
		assertAPIError(t, err, studiosdk.ErrorCodeValidation, "overlapping booking")
	})

	t.Run("back to back booking allowed", func(t *testing.T) {
		_, err := owner.BookSession(ctx, studio.ID, studiosdk.BookSessionRequest{
			RoomID:   room.ID,
			Title:    "Mixdown",
			StartsAt: day.Add(2 * time.Hour),
			EndsAt:   day.Add(4 * time.Hour),
		})
		require.NoError(t, err, "half-open slots should not clash at the boundary")
	})

	t.Run("list sessions in range", func(t *testing.T) {
		sessions, err := member.ListSessions(ctx, studio.ID, day.Add(-time.Hour), day.Add(5*time.Hour))
		require.NoError(t, err)
		require.Len(t, sessions, 2)
	})

	t.Run("only booker or admin cancels", func(t *testing.T) {
		sessions, err := member.ListSessions(ctx, studio.ID, day.Add(-time.Hour), day.Add(5*time.Hour))
		require.NoError(t, err)

		var mine studiosdk.StudioSession
		for _, s := range sessions {
			if s.BookedBy == member.Identity().ID {
				mine = s
			}
		}
		require.NotEmpty(t, mine.ID)

		stranger := inviteAndAccept(t, client, owner, studio.ID, "bassist@example.com", "member")
		err = stranger.CancelSession(ctx, studio.ID, mine.ID)
		assertAPIError(t, err, studiosdk.ErrorCodeInsufficientPermissions, "unrelated member cancelling")

		require.NoError(t, member.CancelSession(ctx, studio.ID, mine.ID))
	})
}

func TestGearAndInvoices(t *testing.T) {
	baseURL, cleanup := setupStudioContainer(t)
	defer cleanup()

	client := studiosdk.NewSDKClient(baseURL)
	ctx := context.Background()

	owner, studio := createStudioWithOwner(t, client, "ops@example.com", "Ops Studio")
	member := inviteAndAccept(t, client, owner, studio.ID, "tech@example.com", "member")

	t.Run("gear lifecycle", func(t *testing.T) {
		item, err := owner.AddGear(ctx, studio.ID, studiosdk.AddGearRequest{
			Name:         "U87",
			Category:     "microphone",
			SerialNumber: "123456",
		})
		require.NoError(t, err)
		require.Equal(t, "available", item.Status)

		// Any member may flip status.
		require.NoError(t, member.SetGearStatus(ctx, studio.ID, item.ID, "in-use"))

		items, err := member.ListGear(ctx, studio.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, "in-use", items[0].Status)

		// Only admins may add or remove.
		_, err = member.AddGear(ctx, studio.ID, studiosdk.AddGearRequest{Name: "SM57"})
		assertAPIError(t, err, studiosdk.ErrorCodeInsufficientPermissions, "member adding gear")

		require.NoError(t, owner.RemoveGear(ctx, studio.ID, item.ID))
	})

	t.Run("invoice lifecycle", func(t *testing.T) {
		inv, err := owner.CreateInvoice(ctx, studio.ID, studiosdk.CreateInvoiceRequest{
			Number:     "INV-001",
			ClientName: "Big Label",
			TaxRateBps: 1000,
			Lines: []studiosdk.InvoiceLine{
				{Description: "Tracking day", Quantity: 2, UnitCents: 50000},
				{Description: "Mixing", Quantity: 1, UnitCents: 30000},
			},
		})
		require.NoError(t, err)
		require.Equal(t, "draft", inv.Status)
		require.Equal(t, int64(130000), inv.SubtotalCents)
		require.Equal(t, int64(13000), inv.TaxCents)
		require.Equal(t, int64(143000), inv.TotalCents)

		// Duplicate numbers rejected per studio.
		_, err = owner.CreateInvoice(ctx, studio.ID, studiosdk.CreateInvoiceRequest{
			Number:     "INV-001",
			ClientName: "Big Label",
			Lines:      []studiosdk.InvoiceLine{{Description: "Dup", Quantity: 1, UnitCents: 100}},
		})
		assertAPIError(t, err, studiosdk.ErrorCodeValidation, "duplicate invoice number")

		// draft -> sent -> paid is the happy path.
		require.NoError(t, owner.SetInvoiceStatus(ctx, studio.ID, inv.ID, "sent"))
		require.NoError(t, owner.SetInvoiceStatus(ctx, studio.ID, inv.ID, "paid"))

		// Paid is terminal.
		err = owner.SetInvoiceStatus(ctx, studio.ID, inv.ID, "void")
		assertAPIError(t, err, studiosdk.ErrorCodeValidation, "voiding a paid invoice")

		// Members read, admins write.
		got, err := member.GetInvoice(ctx, studio.ID, inv.ID)
		require.NoError(t, err)
		require.Equal(t, "paid", got.Status)

		_, err = member.CreateInvoice(ctx, studio.ID, studiosdk.CreateInvoiceRequest{
			Number:     "INV-002",
			ClientName: "Indie Act",
			Lines:      []studiosdk.InvoiceLine{{Description: "Session", Quantity: 1, UnitCents: 100}},
		})
		assertAPIError(t, err, studiosdk.ErrorCodeInsufficientPermissions, "member creating invoices")
	})

	t.Run("invite link join", func(t *testing.T) {
		rotated, err := owner.RotateInviteLink(ctx, studio.ID, "member")
		require.NoError(t, err)
		require.NotEmpty(t, rotated.Token)
		require.True(t, rotated.Link.Enabled)

		joiner := loginAs(t, client, "walkin@example.com", "Walk In")
		joined, err := joiner.JoinByLink(ctx, rotated.Token)
		require.NoError(t, err)
		require.Equal(t, studio.ID, joined.StudioID)

		// Disabled links stop working.
		require.NoError(t, owner.SetInviteLinkEnabled(ctx, studio.ID, false))

		late := loginAs(t, client, "toolate@example.com", "Too Late")
		_, err = late.JoinByLink(ctx, rotated.Token)
		assertAPIError(t, err, studiosdk.ErrorCodeValidation, "joining via a disabled link")
	})
}
