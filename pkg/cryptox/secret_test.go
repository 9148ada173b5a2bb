package cryptox_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trackroomhq/trackroom/pkg/cryptox"
)

func TestHashAndVerifySecret(t *testing.T) {
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	hash, err := cryptox.HashSecret("correct-horse")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifySecret("correct-horse", hash))
	require.Error(t, cryptox.VerifySecret("wrong-horse", hash))
}

func TestVerifySecretRejectsMalformedHashes(t *testing.T) {
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	for _, bad := range []string{
		"",
		"$argon2id$v=19$m=19456,t=2,p=1$short",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	} {
		require.Error(t, cryptox.VerifySecret("anything", bad), "hash %q", bad)
	}
}

func TestHashSecretSaltsEachHash(t *testing.T) {
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	a, err := cryptox.HashSecret("same-secret")
	require.NoError(t, err)
	b, err := cryptox.HashSecret("same-secret")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, cryptox.VerifySecret("same-secret", a))
	require.NoError(t, cryptox.VerifySecret("same-secret", b))
}
