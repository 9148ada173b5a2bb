package studio_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

/*
 * Common constants and helper functions for studio service end-to-end tests.
 * This includes container setup, login helpers, and assertions.
 */

const testImageName = "trackroom-studio-test:latest"

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Studio Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Studio Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/studio/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupStudioContainer starts the studio service in a container and returns
// the base URL. Rate limits are raised so rapid test requests don't trip the
// production defaults.
func setupStudioContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"DATABASE_FILE":  "/studio.db",
			"PEPPER_FILE":    "/pepper",
			"SESSION_SECRET": "e2e-only-session-secret-0123456789abcdef",
			"ENV":            "test",
			"LOG_LEVEL":      "info",
			"LOG_FORMAT":     "json",
			// Raise rate limits so bursts of test requests pass
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// loginAs requests a magic link for the email and redeems it immediately.
// In the test environment the raw token rides along in the login response.
func loginAs(t *testing.T, client *studiosdk.SDKClient, email, displayName string) *studiosdk.Session {
	t.Helper()
	ctx := context.Background()

	loginResp, err := client.RequestLogin(ctx, email, displayName)
	require.NoError(t, err, "RequestLogin should succeed")
	require.True(t, loginResp.Sent)
	require.NotEmpty(t, loginResp.DebugToken, "test environment should expose the raw login token")

	session, err := client.RedeemLogin(ctx, loginResp.DebugToken, "")
	require.NoError(t, err, "RedeemLogin should succeed")
	require.NotNil(t, session)

	return session
}

// createStudioWithOwner logs in as the email and creates a studio, returning
// both the session and the studio.
func createStudioWithOwner(t *testing.T, client *studiosdk.SDKClient, email, studioName string) (*studiosdk.Session, studiosdk.Studio) {
	t.Helper()

	session := loginAs(t, client, email, "Owner")
	studio, err := session.CreateStudio(t.Context(), studioName)
	require.NoError(t, err)
	require.NotEmpty(t, studio.ID)

	return session, studio
}

// inviteAndAccept sends an invitation from the owner session and accepts it
// through the access resolver as the invitee.
func inviteAndAccept(t *testing.T, client *studiosdk.SDKClient, owner *studiosdk.Session, studioID, email, role string) *studiosdk.Session {
	t.Helper()
	ctx := context.Background()

	_, err := owner.SendInvite(ctx, studioID, email, role)
	require.NoError(t, err)

	invitee := loginAs(t, client, email, "Invitee")
	access, err := invitee.ResolveAccess(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "ready", access.State)
	require.Equal(t, studioID, access.StudioID)
	require.NotNil(t, access.AcceptedInvitation)

	return invitee
}

// assertAPIError checks that an error is a typed *APIError with the given
// wire code.
func assertAPIError(t *testing.T, err error, code string, context string) {
	t.Helper()
	require.Error(t, err, context)

	var apiErr *studiosdk.APIError
	require.ErrorAs(t, err, &apiErr, context)
	require.Equal(t, code, apiErr.Code, context)
}
