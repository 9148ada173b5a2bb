package sqlite

import (
	"context"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type inviteLinksRepo struct {
	db dbtx
}

const inviteLinkColumns = `id, studio_id, token_hash, default_role, is_enabled, created_at, updated_at`

func scanInviteLink(row interface{ Scan(...any) error }) (domain.InviteLink, error) {
	var l domain.InviteLink
	err := row.Scan(&l.ID, &l.StudioID, &l.TokenHash, &l.DefaultRole,
		&l.Enabled, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return domain.InviteLink{}, err
	}
	return l, nil
}

func (r *inviteLinksRepo) GetInviteLinkByStudio(ctx context.Context, studioID string) (domain.InviteLink, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteLinkColumns+` FROM invite_links WHERE studio_id = ?`, studioID)
	l, err := scanInviteLink(row)
	if err != nil {
		return domain.InviteLink{}, mapNotFound(err)
	}
	return l, nil
}

func (r *inviteLinksRepo) GetEnabledInviteLinkByTokenHash(ctx context.Context, hash string) (domain.InviteLink, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteLinkColumns+` FROM invite_links WHERE token_hash = ? AND is_enabled = 1`, hash)
	l, err := scanInviteLink(row)
	if err != nil {
		return domain.InviteLink{}, mapNotFound(err)
	}
	return l, nil
}

func (r *inviteLinksRepo) UpsertInviteLink(ctx context.Context, link domain.InviteLink) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invite_links (id, studio_id, token_hash, default_role, is_enabled)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (studio_id) DO UPDATE SET
		     token_hash = excluded.token_hash,
		     default_role = excluded.default_role,
		     is_enabled = excluded.is_enabled,
		     updated_at = CURRENT_TIMESTAMP`,
		link.ID, link.StudioID, link.TokenHash, link.DefaultRole, link.Enabled)
	return err
}

func (r *inviteLinksRepo) SetInviteLinkEnabled(ctx context.Context, studioID string, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invite_links SET is_enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE studio_id = ?`,
		enabled, studioID)
	return affectedOrNotFound(res, err)
}
