package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

func TestBookSessionOverlap(t *testing.T) {
	st := newTestStore(t)
	svc := &ScheduleService{Store: st}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	member := seedIdentity(t, st, "member@example.com")
	seedMember(t, st, studio, member, domain.RoleMember)

	room, err := svc.CreateRoom(ctx, owner.ID, studio.ID, "Live Room", 12000)
	require.NoError(t, err)

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	booked, err := svc.BookSession(ctx, member.ID, studio.ID, room.ID, "Tracking", base, base.Add(2*time.Hour))
	require.NoError(t, err)

	t.Run("overlapping booking rejected", func(t *testing.T) {
		_, err := svc.BookSession(ctx, owner.ID, studio.ID, room.ID, "Clash", base.Add(time.Hour), base.Add(3*time.Hour))
		require.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("back to back bookings allowed", func(t *testing.T) {
		// [10:00, 12:00) then [12:00, 13:00): half-open intervals touch
		// without overlapping.
		_, err := svc.BookSession(ctx, owner.ID, studio.ID, room.ID, "Mixing", base.Add(2*time.Hour), base.Add(3*time.Hour))
		require.NoError(t, err)
	})

	t.Run("inverted interval rejected", func(t *testing.T) {
		_, err := svc.BookSession(ctx, owner.ID, studio.ID, room.ID, "Backwards", base.Add(time.Hour), base)
		require.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("cancelled sessions free the slot", func(t *testing.T) {
		require.NoError(t, svc.CancelSession(ctx, member.ID, studio.ID, booked.ID))

		_, err := svc.BookSession(ctx, owner.ID, studio.ID, room.ID, "Replacement", base, base.Add(time.Hour))
		require.NoError(t, err)
	})
}

func TestCancelSessionAuthorization(t *testing.T) {
	st := newTestStore(t)
	svc := &ScheduleService{Store: st}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	booker := seedIdentity(t, st, "booker@example.com")
	seedMember(t, st, studio, booker, domain.RoleMember)
	other := seedIdentity(t, st, "other@example.com")
	seedMember(t, st, studio, other, domain.RoleMember)

	room, err := svc.CreateRoom(ctx, owner.ID, studio.ID, "Live Room", 0)
	require.NoError(t, err)

	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	session, err := svc.BookSession(ctx, booker.ID, studio.ID, room.ID, "Rehearsal", start, start.Add(time.Hour))
	require.NoError(t, err)

	t.Run("unrelated members cannot cancel", func(t *testing.T) {
		err := svc.CancelSession(ctx, other.ID, studio.ID, session.ID)
		require.Equal(t, KindInsufficientPermissions, KindOf(err))
	})

	t.Run("admins can cancel any session", func(t *testing.T) {
		require.NoError(t, svc.CancelSession(ctx, owner.ID, studio.ID, session.ID))
	})
}

func TestListSessionsInRange(t *testing.T) {
	st := newTestStore(t)
	svc := &ScheduleService{Store: st}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")

	room, err := svc.CreateRoom(ctx, owner.ID, studio.ID, "Live Room", 0)
	require.NoError(t, err)

	day := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	_, err = svc.BookSession(ctx, owner.ID, studio.ID, room.ID, "Morning", day.Add(9*time.Hour), day.Add(11*time.Hour))
	require.NoError(t, err)
	_, err = svc.BookSession(ctx, owner.ID, studio.ID, room.ID, "Evening", day.Add(19*time.Hour), day.Add(21*time.Hour))
	require.NoError(t, err)

	sessions, err := svc.ListSessions(ctx, owner.ID, studio.ID, day, day.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "Morning", sessions[0].Title)

	sessions, err = svc.ListSessions(ctx, owner.ID, studio.ID, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "Morning", sessions[0].Title)
}

func TestRoomManagement(t *testing.T) {
	st := newTestStore(t)
	svc := &ScheduleService{Store: st}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	member := seedIdentity(t, st, "member@example.com")
	seedMember(t, st, studio, member, domain.RoleMember)

	t.Run("members cannot create rooms", func(t *testing.T) {
		_, err := svc.CreateRoom(ctx, member.ID, studio.ID, "Booth", 0)
		require.Equal(t, KindInsufficientPermissions, KindOf(err))
	})

	room, err := svc.CreateRoom(ctx, owner.ID, studio.ID, "Booth", 5000)
	require.NoError(t, err)

	rooms, err := svc.ListRooms(ctx, member.ID, studio.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	require.NoError(t, svc.DeleteRoom(ctx, owner.ID, studio.ID, room.ID))

	rooms, err = svc.ListRooms(ctx, member.ID, studio.ID)
	require.NoError(t, err)
	require.Empty(t, rooms)
}
