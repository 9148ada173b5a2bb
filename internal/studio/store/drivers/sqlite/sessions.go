package sqlite

import (
	"context"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, studio_id, room_id, title, booked_by, status, starts_at, ends_at, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.StudioID, &s.RoomID, &s.Title, &s.BookedBy,
		&s.Status, &s.StartsAt, &s.EndsAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, studio_id, room_id, title, booked_by, status, starts_at, ends_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.StudioID, s.RoomID, s.Title, s.BookedBy, s.Status, s.StartsAt, s.EndsAt)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) ListSessionsInRange(ctx context.Context, studioID string, from, to time.Time) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE studio_id = ? AND status = 'scheduled' AND starts_at < ? AND ends_at > ?
		 ORDER BY starts_at ASC`,
		studioID, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionsRepo) ListRoomSessionsOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE room_id = ? AND status = 'scheduled' AND starts_at < ? AND ends_at > ?
		 ORDER BY starts_at ASC`,
		roomID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionsRepo) CancelSession(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'scheduled'`,
		id)
	return affectedOrNotFound(res, err)
}
