package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type invitationsRepo struct {
	db dbtx
}

const invitationColumns = `id, studio_id, email, role, token_hash, status, expires_at, accepted_at, created_by, created_at, updated_at`

func scanInvitation(row interface{ Scan(...any) error }) (domain.Invitation, error) {
	var (
		inv        domain.Invitation
		acceptedAt sql.NullTime
	)
	err := row.Scan(&inv.ID, &inv.StudioID, &inv.Email, &inv.Role, &inv.TokenHash,
		&inv.Status, &inv.ExpiresAt, &acceptedAt, &inv.CreatedBy,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (id, studio_id, email, role, token_hash, status, expires_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.StudioID, inv.Email, inv.Role, inv.TokenHash, inv.Status,
		inv.ExpiresAt, inv.CreatedBy)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetPendingInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+`
		 FROM invitations
		 WHERE token_hash = ? AND status = 'pending'`,
		hash)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetPendingInvitation(ctx context.Context, studioID, email string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+`
		 FROM invitations
		 WHERE studio_id = ? AND email = ? AND status = 'pending'`,
		studioID, email)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) ListPendingInvitationsByEmail(ctx context.Context, email string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.id, i.studio_id, i.email, i.role, i.token_hash, i.status,
		        i.expires_at, i.accepted_at, i.created_by, i.created_at, i.updated_at,
		        s.id, s.name, s.slug, s.owner_id, s.created_at, s.updated_at
		 FROM invitations i
		 JOIN studios s ON s.id = i.studio_id
		 WHERE i.email = ? AND i.status = 'pending' AND i.expires_at > ?
		 ORDER BY i.created_at DESC`,
		email, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		var (
			inv        domain.Invitation
			acceptedAt sql.NullTime
		)
		err := rows.Scan(&inv.ID, &inv.StudioID, &inv.Email, &inv.Role, &inv.TokenHash,
			&inv.Status, &inv.ExpiresAt, &acceptedAt, &inv.CreatedBy,
			&inv.CreatedAt, &inv.UpdatedAt,
			&inv.Studio.ID, &inv.Studio.Name, &inv.Studio.Slug, &inv.Studio.OwnerID,
			&inv.Studio.CreatedAt, &inv.Studio.UpdatedAt)
		if err != nil {
			return nil, err
		}
		inv.AcceptedAt = mapNullTimePtr(acceptedAt)
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) ListStudioInvitations(ctx context.Context, studioID string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationColumns+`
		 FROM invitations
		 WHERE studio_id = ?
		 ORDER BY created_at DESC`,
		studioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) RefreshInvitation(ctx context.Context, id string, role domain.Role, tokenHash string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations
		 SET role = ?, token_hash = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'pending'`,
		role, tokenHash, expiresAt, id)
	return affectedOrNotFound(res, err)
}

func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, id string, acceptedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations
		 SET status = 'accepted', accepted_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'pending'`,
		acceptedAt, id)
	return affectedOrStale(res, err)
}

func (r *invitationsRepo) MarkInvitationRevoked(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations
		 SET status = 'revoked', updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'pending'`,
		id)
	return affectedOrStale(res, err)
}

func (r *invitationsRepo) MarkInvitationsExpired(ctx context.Context, asOf time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE invitations
		 SET status = 'expired', updated_at = CURRENT_TIMESTAMP
		 WHERE status = 'pending' AND expires_at < ?`,
		asOf)
	return err
}
