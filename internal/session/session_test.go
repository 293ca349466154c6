package session

import (
	"errors"
	"testing"

	"github.com/robby/projecthub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashed(t *testing.T, password string) []byte {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func testUsers(t *testing.T) []domain.User {
	return []domain.User{
		{ID: "u1", Email: "pm@projecthub.io", Name: "Dana Kim", Role: domain.RolePM, PasswordHash: hashed(t, "demo")},
		{ID: "u2", Email: "dev@projecthub.io", Name: "Sam Lee", Role: domain.RoleMember, PasswordHash: hashed(t, "demo")},
	}
}

func TestFlagProvider_Credentials(t *testing.T) {
	p := &FlagProvider{Email: "pm@projecthub.io", Password: "demo", Role: "PM"}
	creds, err := p.Credentials()

	require.NoError(t, err)
	assert.Equal(t, Credentials{Email: "pm@projecthub.io", Password: "demo", Role: domain.RolePM}, creds)
}

func TestFlagProvider_Missing(t *testing.T) {
	_, err := (&FlagProvider{Email: "pm@projecthub.io"}).Credentials()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--password")
}

func TestEnvProvider_Credentials(t *testing.T) {
	t.Setenv("PROJECTHUB_EMAIL", "dev@projecthub.io")
	t.Setenv("PROJECTHUB_PASSWORD", "demo")
	t.Setenv("PROJECTHUB_ROLE", "Member")

	creds, err := (&EnvProvider{}).Credentials()

	require.NoError(t, err)
	assert.Equal(t, "dev@projecthub.io", creds.Email)
	assert.Equal(t, domain.RoleMember, creds.Role)
}

func TestEnvProvider_Missing(t *testing.T) {
	t.Setenv("PROJECTHUB_EMAIL", "")
	t.Setenv("PROJECTHUB_PASSWORD", "")

	creds, err := (&EnvProvider{}).Credentials()

	assert.Error(t, err)
	assert.Empty(t, creds.Email)
	assert.Contains(t, err.Error(), "PROJECTHUB_EMAIL")
}

func TestResolve_FallsBackToEnv(t *testing.T) {
	t.Setenv("PROJECTHUB_EMAIL", "dev@projecthub.io")
	t.Setenv("PROJECTHUB_PASSWORD", "demo")

	creds, err := Resolve(&FlagProvider{}, &EnvProvider{})

	require.NoError(t, err)
	assert.Equal(t, "dev@projecthub.io", creds.Email)
}

func TestResolve_FlagsWin(t *testing.T) {
	t.Setenv("PROJECTHUB_EMAIL", "dev@projecthub.io")
	t.Setenv("PROJECTHUB_PASSWORD", "demo")

	creds, err := Resolve(&FlagProvider{Email: "pm@projecthub.io", Password: "x"}, &EnvProvider{})

	require.NoError(t, err)
	assert.Equal(t, "pm@projecthub.io", creds.Email)
}

func TestResolve_AllFail(t *testing.T) {
	t.Setenv("PROJECTHUB_EMAIL", "")
	t.Setenv("PROJECTHUB_PASSWORD", "")

	_, err := Resolve(&FlagProvider{}, &EnvProvider{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCredentials))
	assert.Contains(t, err.Error(), "--email and --password not set")
	assert.Contains(t, err.Error(), "PROJECTHUB_EMAIL and PROJECTHUB_PASSWORD not set")
}

func TestCredentialProvider_Interface(t *testing.T) {
	var _ CredentialProvider = &FlagProvider{}
	var _ CredentialProvider = &EnvProvider{}
}

func TestLogin(t *testing.T) {
	users := testUsers(t)

	tests := []struct {
		name    string
		creds   Credentials
		wantID  string
		wantErr bool
	}{
		{"valid with role", Credentials{Email: "pm@projecthub.io", Password: "demo", Role: domain.RolePM}, "u1", false},
		{"valid without role", Credentials{Email: "dev@projecthub.io", Password: "demo"}, "u2", false},
		{"email is case insensitive", Credentials{Email: " PM@ProjectHub.io", Password: "demo"}, "u1", false},
		{"wrong password", Credentials{Email: "pm@projecthub.io", Password: "nope"}, "", true},
		{"wrong role", Credentials{Email: "dev@projecthub.io", Password: "demo", Role: domain.RolePM}, "", true},
		{"unknown email", Credentials{Email: "ghost@projecthub.io", Password: "demo"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Login(users, tt.creds)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, s.User.ID)
		})
	}
}

func TestNavItems(t *testing.T) {
	screens := func(role domain.Role) []Screen {
		var out []Screen
		for _, item := range NavItems(role) {
			out = append(out, item.Screen)
		}
		return out
	}

	assert.Equal(t, []Screen{
		ScreenDashboard, ScreenProjects, ScreenMyTasks, ScreenDelayRequests, ScreenReports, ScreenDrafts, ScreenNotifications,
	}, screens(domain.RolePM))
	assert.Equal(t, []Screen{
		ScreenDashboard, ScreenProjects, ScreenMyTasks, ScreenDelayRequests, ScreenReports, ScreenNotifications,
	}, screens(domain.RoleExecutive))
	assert.Equal(t, []Screen{
		ScreenDashboard, ScreenProjects, ScreenMyTasks, ScreenReports, ScreenNotifications,
	}, screens(domain.RoleMember))

	assert.True(t, CanSee(domain.RolePM, ScreenDrafts))
	assert.False(t, CanSee(domain.RoleExecutive, ScreenDrafts))
	assert.False(t, CanSee(domain.RoleMember, ScreenDelayRequests))
	assert.False(t, CanSee(domain.RolePM, Screen("unknown")))
}

func TestVisibleDelayRequests(t *testing.T) {
	requests := []domain.DelayRequest{
		{ID: "d1", RequesterID: "u2"},
		{ID: "d2", RequesterID: "u3"},
		{ID: "d3", RequesterID: "u2"},
	}

	member := Session{User: domain.User{ID: "u2", Role: domain.RoleMember}}
	got := VisibleDelayRequests(member, requests)
	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0].ID)
	assert.Equal(t, "d3", got[1].ID)

	pm := Session{User: domain.User{ID: "u1", Role: domain.RolePM}}
	assert.Len(t, VisibleDelayRequests(pm, requests), 3)

	other := Session{User: domain.User{ID: "u9", Role: domain.RoleMember}}
	assert.Empty(t, VisibleDelayRequests(other, requests))
}

func TestUnreadCount(t *testing.T) {
	assert.Equal(t, 0, UnreadCount(nil))
	assert.Equal(t, 2, UnreadCount([]domain.Notification{{Read: false}, {Read: true}, {Read: false}}))
}
