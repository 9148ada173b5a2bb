package sqlite

import (
	"context"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type roomsRepo struct {
	db dbtx
}

const roomColumns = `id, studio_id, name, hourly_rate_cents, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (domain.Room, error) {
	var rm domain.Room
	err := row.Scan(&rm.ID, &rm.StudioID, &rm.Name, &rm.HourlyRateCents,
		&rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return domain.Room{}, err
	}
	return rm, nil
}

func (r *roomsRepo) CreateRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (id, studio_id, name, hourly_rate_cents) VALUES (?, ?, ?, ?)`,
		rm.ID, rm.StudioID, rm.Name, rm.HourlyRateCents)
	return mapConstraint(err)
}

func (r *roomsRepo) GetRoomByID(ctx context.Context, id string) (domain.Room, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	rm, err := scanRoom(row)
	if err != nil {
		return domain.Room{}, mapNotFound(err)
	}
	return rm, nil
}

func (r *roomsRepo) ListStudioRooms(ctx context.Context, studioID string) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE studio_id = ? ORDER BY name ASC`,
		studioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *roomsRepo) DeleteRoom(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
