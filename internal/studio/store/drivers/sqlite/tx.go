package sqlite

import (
	"context"
	"database/sql"

	"github.com/trackroomhq/trackroom/internal/studio/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the outer DB stays
// open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op for transactions; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested transactions are not supported; SAVEPOINTs could emulate them
	// if ever needed.
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Identities() store.Identities   { return &identitiesRepo{db: t.tx} }
func (t *txStore) Studios() store.Studios         { return &studiosRepo{db: t.tx} }
func (t *txStore) Memberships() store.Memberships { return &membershipsRepo{db: t.tx} }
func (t *txStore) Invitations() store.Invitations { return &invitationsRepo{db: t.tx} }
func (t *txStore) InviteLinks() store.InviteLinks { return &inviteLinksRepo{db: t.tx} }
func (t *txStore) LoginTokens() store.LoginTokens { return &loginTokensRepo{db: t.tx} }
func (t *txStore) Rooms() store.Rooms             { return &roomsRepo{db: t.tx} }
func (t *txStore) Sessions() store.Sessions       { return &sessionsRepo{db: t.tx} }
func (t *txStore) Gear() store.Gear               { return &gearRepo{db: t.tx} }
func (t *txStore) Invoices() store.Invoices       { return &invoicesRepo{db: t.tx} }
