package service

import "context"

// Notifier delivers out-of-band messages holding raw tokens. Tokens are never
// persisted in raw form, so the notifier call is the only place they leave the
// process.
type Notifier interface {
	// SendLoginLink delivers a magic-link login token to an email address.
	SendLoginLink(ctx context.Context, email, token string) error

	// SendInvitation delivers a studio invitation token.
	SendInvitation(ctx context.Context, email, studioName, token string) error
}
