package session

import (
	"context"
	"strconv"
	"sync"

	"github.com/tressa-sh/tressa/internal/api"
)

// Manager holds the process-wide auth state: a logged-in flag and the
// current username, backed by the persisted Store. It is constructed once at
// startup and passed explicitly to whatever needs it.
type Manager struct {
	mu       sync.RWMutex
	store    *Store
	client   *api.Client
	loggedIn bool
	username string

	hydrateOnce sync.Once
}

// NewManager wires the manager to its persisted store and API client.
func NewManager(store *Store, client *api.Client) *Manager {
	if store == nil || client == nil {
		panic("session: NewManager called without store or client")
	}
	return &Manager{store: store, client: client}
}

// Hydrate resolves the stored token into a live session by calling the
// backend's who-am-i endpoint. It runs the upstream call at most once per
// process regardless of how many callers race into it; a failure clears the
// session silently rather than surfacing an error.
func (m *Manager) Hydrate(ctx context.Context) {
	m.hydrateOnce.Do(func() {
		if m.store.Token() == "" {
			return
		}
		profile, err := m.client.Me(ctx)
		if err != nil {
			m.Logout()
			return
		}
		m.UpdateUserInfo(profile.Username, strconv.Itoa(profile.ID))
	})
}

// UpdateUserInfo marks the session logged-in and caches the username and,
// when non-empty, the user id.
func (m *Manager) UpdateUserInfo(username, userID string) {
	m.mu.Lock()
	m.loggedIn = true
	m.username = username
	m.mu.Unlock()

	m.store.Update(func(s *Session) {
		s.Username = username
		if userID != "" {
			s.UserID = userID
		}
	})
}

// Login stores the freshly issued token and marks the session logged-in.
func (m *Manager) Login(token, username string) error {
	if err := m.store.Update(func(s *Session) {
		s.Token = token
		s.Username = username
	}); err != nil {
		return err
	}
	m.mu.Lock()
	m.loggedIn = true
	m.username = username
	m.mu.Unlock()
	return nil
}

// Logout clears the token and cached user id and resets the in-memory state.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.loggedIn = false
	m.username = ""
	m.mu.Unlock()
	m.store.Clear()
}

// IsLoggedIn reports whether a session is active.
func (m *Manager) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loggedIn
}

// Username returns the logged-in username, or "" when logged out.
func (m *Manager) Username() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.username
}

// UserID returns the cached string-encoded user id, or "" when unknown.
func (m *Manager) UserID() string {
	return m.store.Current().UserID
}
