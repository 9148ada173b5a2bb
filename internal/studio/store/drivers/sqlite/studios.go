package sqlite

import (
	"context"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type studiosRepo struct {
	db dbtx
}

const studioColumns = `id, name, slug, owner_id, created_at, updated_at`

func scanStudio(row interface{ Scan(...any) error }) (domain.Studio, error) {
	var s domain.Studio
	err := row.Scan(&s.ID, &s.Name, &s.Slug, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Studio{}, err
	}
	return s, nil
}

func (r *studiosRepo) CreateStudio(ctx context.Context, s domain.Studio) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO studios (id, name, slug, owner_id) VALUES (?, ?, ?, ?)`,
		s.ID, s.Name, s.Slug, s.OwnerID)
	return mapConstraint(err)
}

func (r *studiosRepo) GetStudioByID(ctx context.Context, id string) (domain.Studio, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+studioColumns+` FROM studios WHERE id = ?`, id)
	s, err := scanStudio(row)
	if err != nil {
		return domain.Studio{}, mapNotFound(err)
	}
	return s, nil
}

func (r *studiosRepo) GetStudioBySlug(ctx context.Context, slug string) (domain.Studio, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+studioColumns+` FROM studios WHERE slug = ?`, slug)
	s, err := scanStudio(row)
	if err != nil {
		return domain.Studio{}, mapNotFound(err)
	}
	return s, nil
}

func (r *studiosRepo) UpdateStudioName(ctx context.Context, studioID, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE studios SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, studioID)
	return affectedOrNotFound(res, err)
}
