// Package session owns "who is signed in and what can they do". The
// Context is the only process-wide mutable state in the core; every
// mutation goes through a named transition under one lock, so user and
// role are never observed torn.
package session

import (
	"context"
	"sync"

	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// User is the identity provider's account view.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ProfileSource resolves and creates profiles in the document store.
type ProfileSource interface {
	Get(ctx context.Context, userID string) *models.Profile
	Create(ctx context.Context, p models.Profile) error
}

// SignOutFunc clears the identity provider's session.
type SignOutFunc func(ctx context.Context) error

// Context is the single source of truth for the current session. Loading
// stays true until the first auth resolution completes.
type Context struct {
	mu       sync.RWMutex
	user     *User
	profile  *models.Profile
	loading  bool
	profiles ProfileSource
	signOut  SignOutFunc
}

// NewContext builds a context that resolves profiles through profiles and
// clears provider sessions through signOut.
func NewContext(profiles ProfileSource, signOut SignOutFunc) *Context {
	return &Context{
		loading:  true,
		profiles: profiles,
		signOut:  signOut,
	}
}

// HandleAuthChange is the transition the identity provider invokes on
// every session change, including the initial resolution at startup. For
// a signed-in user the profile is re-resolved, creating the default one
// on first sign-in.
func (c *Context) HandleAuthChange(ctx context.Context, u *User) {
	if u == nil {
		c.mu.Lock()
		c.user = nil
		c.profile = nil
		c.loading = false
		c.mu.Unlock()
		return
	}

	profile := c.profiles.Get(ctx, u.ID)
	if profile == nil {
		created := models.DefaultProfile(u.ID, u.Name, u.Email)
		// May race with a concurrent first sign-in; the source treats
		// "already exists" as success.
		_ = c.profiles.Create(ctx, created)
		profile = &created
	}

	c.mu.Lock()
	c.user = u
	c.profile = profile
	c.loading = false
	c.mu.Unlock()
}

// SignOut clears the provider session, then the local state. Local state
// clears even when the provider call fails, matching the rule that
// nothing here is fatal.
func (c *Context) SignOut(ctx context.Context) error {
	var err error
	if c.signOut != nil {
		err = c.signOut(ctx)
	}
	c.mu.Lock()
	c.user = nil
	c.profile = nil
	c.mu.Unlock()
	return err
}

// RefreshProfile re-fetches the profile without touching the session.
// The previous profile is kept when the fetch comes back empty.
func (c *Context) RefreshProfile(ctx context.Context) {
	c.mu.RLock()
	u := c.user
	c.mu.RUnlock()
	if u == nil {
		return
	}

	profile := c.profiles.Get(ctx, u.ID)
	if profile == nil {
		return
	}
	c.mu.Lock()
	c.profile = profile
	c.mu.Unlock()
}

// Snapshot returns user, profile and role as one consistent triple.
func (c *Context) Snapshot() (*User, *models.Profile, models.Role) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user, c.profile, c.roleLocked()
}

// User returns the current user, or nil when signed out.
func (c *Context) User() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Profile returns the current profile, or nil before first resolution.
func (c *Context) Profile() *models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile
}

// Role returns the derived role, defaulting to user when no profile
// exists or its role field is absent.
func (c *Context) Role() models.Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roleLocked()
}

func (c *Context) roleLocked() models.Role {
	if c.profile == nil || !models.ValidRole(c.profile.Role) {
		return models.RoleUser
	}
	return c.profile.Role
}

// Loading reports whether the first auth resolution is still pending.
func (c *Context) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Allows reports whether the current role satisfies the required one.
func (c *Context) Allows(required models.Role) bool {
	return c.Role().Allows(required)
}
