package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/cryptox"
	"github.com/trackroomhq/trackroom/pkg/idx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

// DefaultLoginTokenTTL bounds how long a magic link stays redeemable.
const DefaultLoginTokenTTL = 15 * time.Minute

type IdentityService struct {
	Store    store.Store
	Notifier Notifier

	// LoginTTL overrides DefaultLoginTokenTTL when positive.
	LoginTTL time.Duration
}

func (s *IdentityService) loginTTL() time.Duration {
	if s.LoginTTL > 0 {
		return s.LoginTTL
	}
	return DefaultLoginTokenTTL
}

// RequestLogin issues a single-use magic-link token for an email address,
// creating the identity on first contact. The raw token is
// "<selector>.<verifier>": the selector locates the row, the verifier is
// stored only as an Argon2id hash. Returns the raw token so callers running
// in a debug environment can short-circuit email delivery.
func (s *IdentityService) RequestLogin(ctx context.Context, email, displayName string) (string, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", E(KindValidation, "a valid email address is required")
	}

	identity, err := s.Store.Identities().GetIdentityByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		identity = domain.Identity{
			ID:          idx.New().String(),
			Email:       email,
			DisplayName: displayName,
		}
		if err := s.Store.Identities().CreateIdentity(ctx, identity); err != nil {
			// Another request may have created the identity between our
			// read and write; re-fetch instead of failing the login.
			if errors.Is(err, store.ErrAlreadyExists) {
				identity, err = s.Store.Identities().GetIdentityByEmail(ctx, email)
			}
			if err != nil {
				log.Error("failed to create identity", slog.Any("error", err))
				return "", dbError(err)
			}
		}
	} else if err != nil {
		log.Error("failed to fetch identity", slog.Any("error", err))
		return "", dbError(err)
	}

	selector := idx.New().String()
	verifier, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate login verifier", slog.Any("error", err))
		return "", internalError(err)
	}
	verifierHash, err := cryptox.HashSecret(verifier)
	if err != nil {
		log.Error("failed to hash login verifier", slog.Any("error", err))
		return "", internalError(err)
	}

	token := domain.LoginToken{
		ID:           selector,
		IdentityID:   identity.ID,
		VerifierHash: verifierHash,
		ExpiresAt:    time.Now().UTC().Add(s.loginTTL()),
	}
	if err := s.Store.LoginTokens().CreateLoginToken(ctx, token); err != nil {
		log.Error("failed to store login token", slog.Any("error", err))
		return "", dbError(err)
	}

	raw := selector + "." + verifier

	if err := s.Notifier.SendLoginLink(ctx, email, raw); err != nil {
		log.Error("failed to send login link",
			slog.String("identity_id", identity.ID),
			slog.Any("error", err),
		)
		return "", E(KindValidation, "could not deliver the login email; try again")
	}

	log.Info("login link issued", slog.String("identity_id", identity.ID))
	return raw, nil
}

// RedeemLogin consumes a magic-link token and returns the authenticated
// identity plus the authentication methods used ("link", and "otp" when a
// TOTP code was verified). Tokens are strictly single use; concurrent
// redemptions race on a compare-and-swap so exactly one wins.
func (s *IdentityService) RedeemLogin(ctx context.Context, rawToken, totpCode string) (domain.Identity, []string, error) {
	log := slogx.FromContext(ctx)

	selector, verifier, ok := strings.Cut(rawToken, ".")
	if !ok || selector == "" || verifier == "" {
		return domain.Identity{}, nil, E(KindValidation, "malformed login token")
	}

	token, err := s.Store.LoginTokens().GetLoginToken(ctx, selector)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, nil, E(KindAuthenticationRequired, "invalid or expired login link")
		}
		log.Error("failed to fetch login token", slog.Any("error", err))
		return domain.Identity{}, nil, dbError(err)
	}

	if !token.Redeemable(time.Now().UTC()) {
		return domain.Identity{}, nil, E(KindAuthenticationRequired, "invalid or expired login link")
	}

	if err := cryptox.VerifySecret(verifier, token.VerifierHash); err != nil {
		log.Warn("login verifier mismatch", slog.String("selector", selector))
		return domain.Identity{}, nil, E(KindAuthenticationRequired, "invalid or expired login link")
	}

	if err := s.Store.LoginTokens().ConsumeLoginToken(ctx, token.ID, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrStaleRow) {
			return domain.Identity{}, nil, E(KindAuthenticationRequired, "this login link was already used")
		}
		log.Error("failed to consume login token", slog.Any("error", err))
		return domain.Identity{}, nil, dbError(err)
	}

	identity, err := s.Store.Identities().GetIdentityByID(ctx, token.IdentityID)
	if err != nil {
		log.Error("failed to fetch identity for login token", slog.Any("error", err))
		return domain.Identity{}, nil, dbError(err)
	}

	amr := []string{"link"}
	if identity.MFAActive() {
		if totpCode == "" {
			return domain.Identity{}, nil, E(KindAuthenticationRequired, "a TOTP code is required")
		}
		if !totp.Validate(totpCode, *identity.TOTPSecret) {
			log.Warn("invalid TOTP code at login", slog.String("identity_id", identity.ID))
			return domain.Identity{}, nil, E(KindAuthenticationRequired, "invalid TOTP code")
		}
		amr = append(amr, "otp")
	}

	log.Info("login redeemed", slog.String("identity_id", identity.ID))
	return identity, amr, nil
}

// GetIdentity fetches an identity by ID.
func (s *IdentityService) GetIdentity(ctx context.Context, identityID string) (domain.Identity, error) {
	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, E(KindAuthenticationRequired, "unknown identity")
		}
		return domain.Identity{}, dbError(err)
	}
	return identity, nil
}

// UpdateProfile changes an identity's display name.
func (s *IdentityService) UpdateProfile(ctx context.Context, identityID, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return E(KindValidation, "display name must not be empty")
	}
	if err := s.Store.Identities().UpdateDisplayName(ctx, identityID, displayName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindAuthenticationRequired, "unknown identity")
		}
		return dbError(err)
	}
	return nil
}
