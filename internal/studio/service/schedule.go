package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/idx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

// ScheduleService manages rooms and session bookings. Session intervals are
// half-open [starts_at, ends_at); two scheduled sessions in a room never
// overlap.
type ScheduleService struct {
	Store store.Store
}

// CreateRoom adds a bookable room to a studio.
func (s *ScheduleService) CreateRoom(ctx context.Context, actorID, studioID, name string, hourlyRateCents int64) (domain.Room, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return domain.Room{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Room{}, E(KindValidation, "room name must not be empty")
	}
	if hourlyRateCents < 0 {
		return domain.Room{}, E(KindValidation, "hourly rate must not be negative")
	}

	room := domain.Room{
		ID:              idx.New().String(),
		StudioID:        studioID,
		Name:            name,
		HourlyRateCents: hourlyRateCents,
	}
	if err := s.Store.Rooms().CreateRoom(ctx, room); err != nil {
		return domain.Room{}, dbError(err)
	}
	return room, nil
}

// ListRooms returns a studio's rooms.
func (s *ScheduleService) ListRooms(ctx context.Context, actorID, studioID string) ([]domain.Room, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return nil, err
	}

	rooms, err := s.Store.Rooms().ListStudioRooms(ctx, studioID)
	if err != nil {
		return nil, dbError(err)
	}
	return rooms, nil
}

// DeleteRoom removes a room.
func (s *ScheduleService) DeleteRoom(ctx context.Context, actorID, studioID, roomID string) error {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return err
	}

	room, err := s.Store.Rooms().GetRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindValidation, "room not found")
		}
		return dbError(err)
	}
	if room.StudioID != studioID {
		return E(KindValidation, "room not found")
	}

	if err := s.Store.Rooms().DeleteRoom(ctx, roomID); err != nil {
		return dbError(err)
	}
	return nil
}

// BookSession schedules a session in a room. The overlap check and insert
// run in one transaction so two racing bookings cannot both land.
func (s *ScheduleService) BookSession(
	ctx context.Context,
	actorID, studioID, roomID, title string,
	startsAt, endsAt time.Time,
) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return domain.Session{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Session{}, E(KindValidation, "session title must not be empty")
	}
	if !startsAt.Before(endsAt) {
		return domain.Session{}, E(KindValidation, "session must end after it starts")
	}

	session := domain.Session{
		ID:       idx.New().String(),
		StudioID: studioID,
		RoomID:   roomID,
		Title:    title,
		BookedBy: actorID,
		Status:   domain.SessionScheduled,
		StartsAt: startsAt.UTC(),
		EndsAt:   endsAt.UTC(),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		room, err := tx.Rooms().GetRoomByID(ctx, roomID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return E(KindValidation, "room not found")
			}
			return err
		}
		if room.StudioID != studioID {
			return E(KindValidation, "room not found")
		}

		clashes, err := tx.Sessions().ListRoomSessionsOverlapping(ctx, roomID, session.StartsAt, session.EndsAt)
		if err != nil {
			return err
		}
		if len(clashes) > 0 {
			return E(KindValidation, "the room is already booked for that time")
		}

		return tx.Sessions().CreateSession(ctx, session)
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return domain.Session{}, se
		}
		log.Error("failed to book session",
			slog.String("studio_id", studioID),
			slog.String("room_id", roomID),
			slog.Any("error", err),
		)
		return domain.Session{}, dbError(err)
	}

	log.Info("session booked",
		slog.String("session_id", session.ID),
		slog.String("room_id", roomID),
	)
	return session, nil
}

// ListSessions returns a studio's scheduled sessions intersecting [from, to).
func (s *ScheduleService) ListSessions(ctx context.Context, actorID, studioID string, from, to time.Time) ([]domain.Session, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !from.Before(to) {
		return nil, E(KindValidation, "range must end after it starts")
	}

	sessions, err := s.Store.Sessions().ListSessionsInRange(ctx, studioID, from.UTC(), to.UTC())
	if err != nil {
		return nil, dbError(err)
	}
	return sessions, nil
}

// CancelSession cancels a scheduled session. The booker may cancel their own
// session; admins may cancel any.
func (s *ScheduleService) CancelSession(ctx context.Context, actorID, studioID, sessionID string) error {
	actor, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember)
	if err != nil {
		return err
	}

	session, err := s.Store.Sessions().GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindValidation, "session not found")
		}
		return dbError(err)
	}
	if session.StudioID != studioID {
		return E(KindValidation, "session not found")
	}
	if session.BookedBy != actorID && !actor.Role.AtLeast(domain.RoleAdmin) {
		return E(KindInsufficientPermissions, "only the booker or an admin may cancel a session")
	}

	if err := s.Store.Sessions().CancelSession(ctx, sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindValidation, "session is not scheduled")
		}
		return dbError(err)
	}
	return nil
}
