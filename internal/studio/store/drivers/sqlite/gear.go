package sqlite

import (
	"context"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type gearRepo struct {
	db dbtx
}

const gearColumns = `id, studio_id, name, category, serial_number, status, notes, created_at, updated_at`

func scanGearItem(row interface{ Scan(...any) error }) (domain.GearItem, error) {
	var g domain.GearItem
	err := row.Scan(&g.ID, &g.StudioID, &g.Name, &g.Category, &g.SerialNumber,
		&g.Status, &g.Notes, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.GearItem{}, err
	}
	return g, nil
}

func (r *gearRepo) CreateGearItem(ctx context.Context, g domain.GearItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO gear_items (id, studio_id, name, category, serial_number, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.StudioID, g.Name, g.Category, g.SerialNumber, g.Status, g.Notes)
	return mapConstraint(err)
}

func (r *gearRepo) GetGearItemByID(ctx context.Context, id string) (domain.GearItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+gearColumns+` FROM gear_items WHERE id = ?`, id)
	g, err := scanGearItem(row)
	if err != nil {
		return domain.GearItem{}, mapNotFound(err)
	}
	return g, nil
}

func (r *gearRepo) ListStudioGear(ctx context.Context, studioID string) ([]domain.GearItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gearColumns+` FROM gear_items WHERE studio_id = ? ORDER BY name ASC`,
		studioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GearItem
	for rows.Next() {
		g, err := scanGearItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *gearRepo) UpdateGearItemStatus(ctx context.Context, id string, status domain.GearStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE gear_items SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id)
	return affectedOrNotFound(res, err)
}

func (r *gearRepo) DeleteGearItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gear_items WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
