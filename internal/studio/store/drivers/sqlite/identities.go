package sqlite

import (
	"context"
	"database/sql"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type identitiesRepo struct {
	db dbtx
}

const identityColumns = `id, email, display_name, totp_secret, mfa_enabled, created_at, updated_at`

func scanIdentity(row interface{ Scan(...any) error }) (domain.Identity, error) {
	var (
		i          domain.Identity
		totpSecret sql.NullString
		mfaEnabled sql.NullTime
	)
	err := row.Scan(&i.ID, &i.Email, &i.DisplayName, &totpSecret, &mfaEnabled, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return domain.Identity{}, err
	}
	i.TOTPSecret = mapNullStringPtr(totpSecret)
	i.MFAEnabled = mapNullTimePtr(mfaEnabled)
	return i, nil
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM identities WHERE id = ?`, id)
	identity, err := scanIdentity(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return identity, nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM identities WHERE email = ?`, email)
	identity, err := scanIdentity(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return identity, nil
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, identity domain.Identity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (id, email, display_name) VALUES (?, ?, ?)`,
		identity.ID, identity.Email, identity.DisplayName)
	return mapConstraint(err)
}

func (r *identitiesRepo) UpdateDisplayName(ctx context.Context, identityID, displayName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identities SET display_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		displayName, identityID)
	return affectedOrNotFound(res, err)
}

func (r *identitiesRepo) SetTOTPSecret(ctx context.Context, identityID, secret string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identities SET totp_secret = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		secret, identityID)
	return affectedOrNotFound(res, err)
}

func (r *identitiesRepo) EnableMFA(ctx context.Context, identityID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identities
		 SET mfa_enabled = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		identityID)
	return affectedOrNotFound(res, err)
}

func (r *identitiesRepo) DisableMFA(ctx context.Context, identityID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identities
		 SET mfa_enabled = NULL, totp_secret = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		identityID)
	return affectedOrNotFound(res, err)
}
