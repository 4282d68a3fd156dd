package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

type fakeProfiles struct {
	profiles map[string]*models.Profile
	created  []models.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]*models.Profile)}
}

func (f *fakeProfiles) Get(ctx context.Context, userID string) *models.Profile {
	return f.profiles[userID]
}

func (f *fakeProfiles) Create(ctx context.Context, p models.Profile) error {
	f.created = append(f.created, p)
	cp := p
	f.profiles[p.ID] = &cp
	return nil
}

func TestContextStartsLoading(t *testing.T) {
	require := require.New(t)

	c := NewContext(newFakeProfiles(), nil)
	require.True(c.Loading())
	require.Nil(c.User())
	require.Nil(c.Profile())
	require.Equal(models.RoleUser, c.Role())
}

func TestHandleAuthChangeResolvesExistingProfile(t *testing.T) {
	require := require.New(t)

	profiles := newFakeProfiles()
	profiles.profiles["u1"] = &models.Profile{ID: "u1", FullName: "Asha", Role: models.RoleInspector}

	c := NewContext(profiles, nil)
	c.HandleAuthChange(context.Background(), &User{ID: "u1", Name: "Asha", Email: "asha@example.com"})

	require.False(c.Loading())
	require.Equal("u1", c.User().ID)
	require.Equal(models.RoleInspector, c.Role())
	require.Empty(profiles.created)
}

func TestHandleAuthChangeCreatesDefaultProfile(t *testing.T) {
	require := require.New(t)

	profiles := newFakeProfiles()
	c := NewContext(profiles, nil)
	c.HandleAuthChange(context.Background(), &User{ID: "u2", Name: "Ravi", Email: "ravi@example.com"})

	require.Len(profiles.created, 1)
	require.Equal("u2", profiles.created[0].ID)
	require.Equal(models.RoleUser, profiles.created[0].Role)

	p := c.Profile()
	require.NotNil(p)
	require.Equal("Ravi", p.FullName)
	require.Equal(models.RoleUser, c.Role())
}

func TestHandleAuthChangeNilClearsState(t *testing.T) {
	require := require.New(t)

	profiles := newFakeProfiles()
	c := NewContext(profiles, nil)
	c.HandleAuthChange(context.Background(), &User{ID: "u3"})
	c.HandleAuthChange(context.Background(), nil)

	require.False(c.Loading())
	require.Nil(c.User())
	require.Nil(c.Profile())
	require.Equal(models.RoleUser, c.Role())
}

func TestSignOutClearsStateEvenWhenHookFails(t *testing.T) {
	require := require.New(t)

	profiles := newFakeProfiles()
	hookErr := errors.New("provider down")
	c := NewContext(profiles, func(ctx context.Context) error { return hookErr })
	c.HandleAuthChange(context.Background(), &User{ID: "u4"})

	err := c.SignOut(context.Background())
	require.ErrorIs(err, hookErr)
	require.Nil(c.User())
	require.Nil(c.Profile())
}

func TestRefreshProfileKeepsPreviousOnMiss(t *testing.T) {
	require := require.New(t)

	profiles := newFakeProfiles()
	c := NewContext(profiles, nil)
	c.HandleAuthChange(context.Background(), &User{ID: "u5", Name: "Mina"})

	// Simulate the store becoming unreadable.
	delete(profiles.profiles, "u5")
	c.RefreshProfile(context.Background())

	p := c.Profile()
	require.NotNil(p)
	require.Equal("Mina", p.FullName)
}

func TestRefreshProfilePicksUpChanges(t *testing.T) {
	require := require.New(t)

	profiles := newFakeProfiles()
	c := NewContext(profiles, nil)
	c.HandleAuthChange(context.Background(), &User{ID: "u6"})

	profiles.profiles["u6"] = &models.Profile{ID: "u6", Role: models.RoleAdmin}
	c.RefreshProfile(context.Background())

	require.Equal(models.RoleAdmin, c.Role())
	require.True(c.Allows(models.RoleInspector))
}

func TestSnapshotIsConsistent(t *testing.T) {
	require := require.New(t)

	profiles := newFakeProfiles()
	profiles.profiles["u7"] = &models.Profile{ID: "u7", Role: models.RoleInspector}

	c := NewContext(profiles, nil)
	c.HandleAuthChange(context.Background(), &User{ID: "u7"})

	u, p, role := c.Snapshot()
	require.Equal("u7", u.ID)
	require.Equal("u7", p.ID)
	require.Equal(models.RoleInspector, role)
	require.True(c.Allows(models.RoleUser))
	require.False(c.Allows(models.RoleAdmin))
}
