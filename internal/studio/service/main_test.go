package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store/drivers/sqlite"
	"github.com/trackroomhq/trackroom/pkg/cryptox"
	"github.com/trackroomhq/trackroom/pkg/idx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "trackroom-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// captureNotifier records tokens instead of delivering anything.
type captureNotifier struct {
	mu           sync.Mutex
	loginTokens  []string
	inviteTokens []string
}

func (n *captureNotifier) SendLoginLink(_ context.Context, _, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loginTokens = append(n.loginTokens, token)
	return nil
}

func (n *captureNotifier) SendInvitation(_ context.Context, _, _, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inviteTokens = append(n.inviteTokens, token)
	return nil
}

func seedIdentity(t *testing.T, st *sqlite.Store, email string) domain.Identity {
	t.Helper()

	identity := domain.Identity{
		ID:          idx.New().String(),
		Email:       domain.NormalizeEmail(email),
		DisplayName: email,
	}
	require.NoError(t, st.Identities().CreateIdentity(context.Background(), identity))
	return identity
}

func seedStudio(t *testing.T, st *sqlite.Store, owner domain.Identity, name string) domain.Studio {
	t.Helper()

	svc := &StudioService{Store: st}
	studio, err := svc.CreateStudio(context.Background(), owner.ID, name)
	require.NoError(t, err)
	return studio
}

func seedMember(t *testing.T, st *sqlite.Store, studio domain.Studio, identity domain.Identity, role domain.Role) domain.Membership {
	t.Helper()

	m := domain.Membership{
		ID:         idx.New().String(),
		StudioID:   studio.ID,
		IdentityID: identity.ID,
		Role:       role,
		Status:     domain.MemberStatusActive,
		JoinedAt:   time.Now().UTC(),
	}
	require.NoError(t, st.Memberships().UpsertMembership(context.Background(), m))

	got, err := st.Memberships().GetMembership(context.Background(), studio.ID, identity.ID)
	require.NoError(t, err)
	return got
}
