package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

// MFAEnrollment carries the provisioning data for a freshly generated TOTP
// secret back to the client.
type MFAEnrollment struct {
	Secret  string
	URL     string // otpauth:// provisioning URL, usually rendered as a QR code
	Issuer  string
	Account string
}

type MFAService struct {
	Store store.Store

	// Issuer appears in authenticator apps next to the account.
	Issuer string
}

// Enroll generates and stores a pending TOTP secret. MFA is not active until
// Activate verifies a code against it.
func (s *MFAService) Enroll(ctx context.Context, identityID string) (MFAEnrollment, error) {
	log := slogx.FromContext(ctx)

	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MFAEnrollment{}, E(KindAuthenticationRequired, "unknown identity")
		}
		return MFAEnrollment{}, dbError(err)
	}
	if identity.MFAActive() {
		return MFAEnrollment{}, E(KindValidation, "MFA is already active")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: identity.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		log.Error("failed to generate TOTP key", slog.Any("error", err))
		return MFAEnrollment{}, dbError(err)
	}

	if err := s.Store.Identities().SetTOTPSecret(ctx, identityID, key.Secret()); err != nil {
		log.Error("failed to store TOTP secret", slog.Any("error", err))
		return MFAEnrollment{}, dbError(err)
	}

	return MFAEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: identity.Email,
	}, nil
}

// Activate verifies a code against the pending secret and switches MFA on.
func (s *MFAService) Activate(ctx context.Context, identityID, code string) error {
	log := slogx.FromContext(ctx)

	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindAuthenticationRequired, "unknown identity")
		}
		return dbError(err)
	}
	if identity.TOTPSecret == nil || *identity.TOTPSecret == "" {
		return E(KindValidation, "no pending MFA enrollment; enroll first")
	}
	if identity.MFAActive() {
		return E(KindValidation, "MFA is already active")
	}

	if !totp.Validate(code, *identity.TOTPSecret) {
		return E(KindValidation, "invalid TOTP code")
	}

	if err := s.Store.Identities().EnableMFA(ctx, identityID); err != nil {
		log.Error("failed to enable MFA", slog.Any("error", err))
		return dbError(err)
	}

	log.Info("MFA activated", slog.String("identity_id", identityID))
	return nil
}

// Disable turns MFA off after verifying a current code, and clears the
// secret.
func (s *MFAService) Disable(ctx context.Context, identityID, code string) error {
	log := slogx.FromContext(ctx)

	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindAuthenticationRequired, "unknown identity")
		}
		return dbError(err)
	}
	if !identity.MFAActive() {
		return E(KindValidation, "MFA is not active")
	}

	if !totp.Validate(code, *identity.TOTPSecret) {
		return E(KindValidation, "invalid TOTP code")
	}

	if err := s.Store.Identities().DisableMFA(ctx, identityID); err != nil {
		log.Error("failed to disable MFA", slog.Any("error", err))
		return dbError(err)
	}

	log.Info("MFA disabled", slog.String("identity_id", identityID))
	return nil
}
