package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"

	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	name    string
	enabled bool
	err     error
	panics  bool

	mu     sync.Mutex
	events []Event
}

func (f *fakeChannel) Name() string  { return f.name }
func (f *fakeChannel) Enabled() bool { return f.enabled }

func (f *fakeChannel) Send(_ context.Context, event Event) error {
	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
	if f.panics {
		panic("channel exploded")
	}
	return f.err
}

func (f *fakeChannel) sent() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...)
}

// setup opens a fresh database with the bootstrap administrator "chief" and
// installs a single recording channel.
func setup(t *testing.T) *fakeChannel {
	t.Helper()
	t.Setenv("PORTAL_ADMIN_USERNAME", "chief")
	t.Setenv("PORTAL_ADMIN_PASSWORD", "chief-pass")
	t.Setenv("PORTAL_UPLOAD_FOLDER", filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "portal.db")))

	ch := &fakeChannel{name: t.Name(), enabled: true}
	SetChannels(ch)
	t.Cleanup(func() {
		SetChannels()
		_ = database.CloseDB()
	})
	return ch
}

func bootstrapAdmin(t *testing.T) *model.AdminUser {
	t.Helper()
	user, err := (&UserService{}).GetUserByUsername("chief")
	require.NoError(t, err)
	return user
}

func createUser(t *testing.T, username string, role model.Role) *model.AdminUser {
	t.Helper()
	user, err := (&UserService{}).CreateUser(UserForm{
		Username: username,
		Password: username + "-pass",
		Role:     role,
		FullName: "ПЕТРОВ " + username,
	})
	require.NoError(t, err)
	return user
}

func countRows(t *testing.T, table any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.GetDB().Model(table).Count(&n).Error)
	return n
}

var errBoom = errors.New("boom")
