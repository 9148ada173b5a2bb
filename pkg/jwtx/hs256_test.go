package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trackroomhq/trackroom/pkg/jwtx"
)

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewSignerRejectsShortSecrets(t *testing.T) {
	_, err := jwtx.NewSigner([]byte("too-short"), "trackroom")
	require.Error(t, err)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, err := jwtx.NewSigner(testSecret(), "trackroom")
	require.NoError(t, err)

	raw, claims, err := signer.Issue("identity-1", "amy@example.com", []string{"link"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	parsed, err := signer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "identity-1", parsed.Subject)
	require.Equal(t, "amy@example.com", parsed.Email)
	require.Equal(t, []string{"link"}, parsed.AMR)
	require.Equal(t, claims.SID, parsed.SID)
}

func TestVerifyRejectsExpiredTokens(t *testing.T) {
	signer, err := jwtx.NewSigner(testSecret(), "trackroom")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("identity-1", "amy@example.com", nil,
		-time.Minute, "trackroom", time.Now().UTC().Add(-time.Hour))
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrTokenExpired)
}

func TestVerifyRejectsWrongSecretAndIssuer(t *testing.T) {
	signer, err := jwtx.NewSigner(testSecret(), "trackroom")
	require.NoError(t, err)

	other, err := jwtx.NewSigner([]byte("ffffffffffffffffffffffffffffffff"), "trackroom")
	require.NoError(t, err)

	raw, _, err := other.Issue("identity-1", "", nil, time.Hour)
	require.NoError(t, err)
	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)

	elsewhere, err := jwtx.NewSigner(testSecret(), "someone-else")
	require.NoError(t, err)
	raw, _, err = elsewhere.Issue("identity-1", "", nil, time.Hour)
	require.NoError(t, err)
	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}
