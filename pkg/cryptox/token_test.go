package cryptox_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trackroomhq/trackroom/pkg/cryptox"
)

func TestGenerateToken(t *testing.T) {
	t.Run("produces url-safe tokens of the right entropy", func(t *testing.T) {
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		require.Len(t, raw, cryptox.TokenSize256)
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := cryptox.GenerateToken(0)
		require.Error(t, err)

		_, err = cryptox.GenerateToken(-1)
		require.Error(t, err)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		a := cryptox.MustGenerateToken(cryptox.TokenSize128)
		b := cryptox.MustGenerateToken(cryptox.TokenSize128)
		require.NotEqual(t, a, b)
	})
}

func TestFingerprintToken(t *testing.T) {
	token := cryptox.MustGenerateToken(cryptox.TokenSize256)

	// A fingerprint computed at mint time must equal one recomputed from the
	// same raw token at redemption time.
	require.Equal(t, cryptox.FingerprintToken(token), cryptox.FingerprintToken(token))
	require.NotEqual(t, cryptox.FingerprintToken(token), cryptox.FingerprintToken(token+"x"))
	require.NotEqual(t, token, cryptox.FingerprintToken(token))
}
