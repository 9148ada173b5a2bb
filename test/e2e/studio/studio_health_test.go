package studio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupStudioContainer(t)
	defer cleanup()

	client := studiosdk.NewSDKClient(baseURL)
	ctx := context.Background()

	t.Run("livez", func(t *testing.T) {
		health, err := client.Livez(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
		require.NotEmpty(t, health.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		health, err := client.Readyz(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
	})
}
