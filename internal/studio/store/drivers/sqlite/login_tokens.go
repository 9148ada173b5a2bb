package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type loginTokensRepo struct {
	db dbtx
}

func (r *loginTokensRepo) CreateLoginToken(ctx context.Context, t domain.LoginToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO login_tokens (id, identity_id, verifier_hash, expires_at)
		 VALUES (?, ?, ?, ?)`,
		t.ID, t.IdentityID, t.VerifierHash, t.ExpiresAt)
	return mapConstraint(err)
}

func (r *loginTokensRepo) GetLoginToken(ctx context.Context, id string) (domain.LoginToken, error) {
	var (
		t          domain.LoginToken
		consumedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, identity_id, verifier_hash, expires_at, consumed_at, created_at
		 FROM login_tokens WHERE id = ?`, id).
		Scan(&t.ID, &t.IdentityID, &t.VerifierHash, &t.ExpiresAt, &consumedAt, &t.CreatedAt)
	if err != nil {
		return domain.LoginToken{}, mapNotFound(err)
	}
	t.ConsumedAt = mapNullTimePtr(consumedAt)
	return t, nil
}

func (r *loginTokensRepo) ConsumeLoginToken(ctx context.Context, id string, consumedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE login_tokens SET consumed_at = ? WHERE id = ? AND consumed_at IS NULL`,
		consumedAt, id)
	return affectedOrStale(res, err)
}

func (r *loginTokensRepo) DeleteExpiredLoginTokens(ctx context.Context, before time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM login_tokens WHERE expires_at < ?`, before)
	return err
}
