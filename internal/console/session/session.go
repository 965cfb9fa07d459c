// Package session owns the console's view of "who is signed in": the bearer
// token used on outbound requests plus minimal identity and the granted
// permissions the capability gate is built from.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/ledgerdesk/ledgerdesk/internal/console/ability"
	"github.com/ledgerdesk/ledgerdesk/internal/console/rest"
	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// Permission mirrors one granted capability as the backend reports it.
type Permission struct {
	Action  string `json:"action"`
	Subject string `json:"subject"`
}

// Session is the authenticated state created at sign-in and destroyed at
// sign-out or server-side invalidation.
type Session struct {
	Token     string
	ExpiresAt time.Time

	ID          uint
	Name        string
	Email       string
	Permissions []Permission
}

// Ability builds the capability gate's rule set from the session's granted
// permissions. A nil session yields a deny-all set.
func (s *Session) Ability() *ability.Set {
	if s == nil {
		return nil
	}
	rules := make([]ability.Rule, 0, len(s.Permissions))
	for _, p := range s.Permissions {
		rules = append(rules, ability.Rule{Action: p.Action, Subject: p.Subject})
	}
	return ability.New(rules...)
}

// Store is the session lookup collaborator the route decider consults.
type Store interface {
	// Current returns the active session, or nil when signed out.
	Current(ctx context.Context) (*Session, error)
	// SignOut destroys the session.
	SignOut(ctx context.Context) error
}

// profile mirrors the backend's signed-in admin payload.
type profile struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Permissions []Permission `json:"permissions"`
}

// loginData mirrors the backend's login response payload.
type loginData struct {
	Token     string  `json:"token"`
	ExpiresAt int64   `json:"expiresAt"`
	Admin     profile `json:"admin"`
}

// RestStore is a Store backed by the backend's auth endpoints.
type RestStore struct {
	api *rest.Client

	mu      sync.Mutex
	current *Session
}

// NewRestStore creates a RestStore around the given API client.
func NewRestStore(api *rest.Client) *RestStore {
	return &RestStore{api: api}
}

// SignIn authenticates with the backend and installs the resulting session.
func (st *RestStore) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var data loginData
	if err := st.api.Post(ctx, "", "/api/v1/auth/login", body, &data); err != nil {
		return nil, err
	}

	s := &Session{
		Token:       data.Token,
		ExpiresAt:   time.Unix(data.ExpiresAt, 0),
		ID:          data.Admin.ID,
		Name:        data.Admin.Name,
		Email:       data.Admin.Email,
		Permissions: data.Admin.Permissions,
	}

	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
	return s, nil
}

// Current returns the active session, or nil when signed out or expired.
func (st *RestStore) Current(_ context.Context) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.current != nil && !st.current.ExpiresAt.IsZero() && time.Now().After(st.current.ExpiresAt) {
		st.current = nil
	}
	return st.current, nil
}

// Token returns the active session's bearer token, or "" when signed out.
// It is what collection fetchers read per request.
func (st *RestStore) Token() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.current == nil {
		return ""
	}
	return st.current.Token
}

// Verify re-validates the session against the backend and refreshes the
// profile and granted permissions. A rejected token forces a sign-out, so
// the next navigation routes through the login redirect.
func (st *RestStore) Verify(ctx context.Context) error {
	st.mu.Lock()
	s := st.current
	st.mu.Unlock()
	if s == nil {
		return domain.ErrUnauthorized
	}

	var p profile
	if err := st.api.Get(ctx, s.Token, "/api/v1/auth/me", nil, &p); err != nil {
		if domain.IsUnauthorized(err) || domain.IsForbidden(err) {
			st.mu.Lock()
			st.current = nil
			st.mu.Unlock()
		}
		return err
	}

	// Install a fresh copy rather than writing through s: callers may still
	// hold the pointer Current handed out, and those reads are unlocked.
	st.mu.Lock()
	if st.current == s {
		refreshed := *s
		refreshed.ID = p.ID
		refreshed.Name = p.Name
		refreshed.Email = p.Email
		refreshed.Permissions = p.Permissions
		st.current = &refreshed
	}
	st.mu.Unlock()
	return nil
}

// SignOut discards the session.
func (st *RestStore) SignOut(_ context.Context) error {
	st.mu.Lock()
	st.current = nil
	st.mu.Unlock()
	return nil
}
