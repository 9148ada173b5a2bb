package sqlite

import (
	"context"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type membershipsRepo struct {
	db dbtx
}

const membershipColumns = `id, studio_id, identity_id, role, status, joined_at, created_at, updated_at`

func scanMembership(row interface{ Scan(...any) error }) (domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(&m.ID, &m.StudioID, &m.IdentityID, &m.Role, &m.Status,
		&m.JoinedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Membership{}, err
	}
	return m, nil
}

func (r *membershipsRepo) GetMembershipByID(ctx context.Context, id string) (domain.Membership, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE id = ?`, id)
	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) GetMembership(ctx context.Context, studioID, identityID string) (domain.Membership, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE studio_id = ? AND identity_id = ?`,
		studioID, identityID)
	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListActiveMemberships(ctx context.Context, identityID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.studio_id, m.identity_id, m.role, m.status, m.joined_at,
		        m.created_at, m.updated_at,
		        s.id, s.name, s.slug, s.owner_id, s.created_at, s.updated_at
		 FROM memberships m
		 JOIN studios s ON s.id = m.studio_id
		 WHERE m.identity_id = ? AND m.status = 'active'
		 ORDER BY s.created_at DESC, s.id DESC`,
		identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		var m domain.Membership
		err := rows.Scan(&m.ID, &m.StudioID, &m.IdentityID, &m.Role, &m.Status,
			&m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
			&m.Studio.ID, &m.Studio.Name, &m.Studio.Slug, &m.Studio.OwnerID,
			&m.Studio.CreatedAt, &m.Studio.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) ListStudioMembers(ctx context.Context, studioID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+membershipColumns+`
		 FROM memberships
		 WHERE studio_id = ? AND status != 'removed'
		 ORDER BY joined_at ASC`,
		studioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) UpsertMembership(ctx context.Context, m domain.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO memberships (id, studio_id, identity_id, role, status, joined_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (studio_id, identity_id) DO UPDATE SET
		     role = excluded.role,
		     status = excluded.status,
		     joined_at = excluded.joined_at,
		     updated_at = CURRENT_TIMESTAMP`,
		m.ID, m.StudioID, m.IdentityID, m.Role, m.Status, m.JoinedAt)
	return err
}

func (r *membershipsRepo) UpdateMembershipRole(ctx context.Context, membershipID string, next, expected domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET role = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND role = ?`,
		next, membershipID, expected)
	return affectedOrStale(res, err)
}

func (r *membershipsRepo) UpdateMembershipStatus(ctx context.Context, membershipID string, status domain.MemberStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, membershipID)
	return affectedOrNotFound(res, err)
}
