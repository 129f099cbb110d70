// Package session holds the authenticated identity for the storefront and
// keeps it in the persisted key-value store so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/fjod/shopease/internal/domain"
	"github.com/fjod/shopease/internal/storage"
)

const (
	keyUser  = "session.user"
	keyToken = "session.token"
)

type UserService interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
}

// CartClearer is the session-scoped state torn down together with the
// session on logout.
type CartClearer interface {
	Clear()
}

type Manager struct {
	users UserService
	store storage.Store
	cart  CartClearer

	mu      sync.RWMutex
	current *domain.Session
}

func NewManager(users UserService, store storage.Store, cart CartClearer) *Manager {
	return &Manager{
		users: users,
		store: store,
		cart:  cart,
	}
}

// Login authenticates against the user service. On success the identity and
// token are persisted and become the current session; on failure nothing
// changes and the server's reason is returned.
func (m *Manager) Login(ctx context.Context, username, password string) (domain.Session, error) {
	session, err := m.users.Login(ctx, username, password)
	if err != nil {
		return domain.Session{}, err
	}

	if err := m.persist(ctx, session); err != nil {
		// The session is still valid for this run; persistence only affects
		// the next restart.
		log.Printf("persist session error: %v", err)
	}

	m.mu.Lock()
	m.current = &session
	m.mu.Unlock()

	return session, nil
}

// Register creates an account. The service answers with the user only; the
// caller logs in afterwards to establish a session.
func (m *Manager) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	return m.users.Register(ctx, reg)
}

// Logout clears the persisted session, the in-memory session and the cart.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, keyUser); err != nil {
		return fmt.Errorf("clear persisted user: %w", err)
	}
	if err := m.store.Delete(ctx, keyToken); err != nil {
		return fmt.Errorf("clear persisted token: %w", err)
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	m.cart.Clear()
	return nil
}

// Restore loads a previously persisted session at startup. The token is not
// re-validated against the server; an expired one only surfaces when a later
// authenticated call is rejected. Returns false when no complete session was
// persisted.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	userJSON, err := m.store.Get(ctx, keyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read persisted user: %w", err)
	}

	token, err := m.store.Get(ctx, keyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read persisted token: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return false, fmt.Errorf("decode persisted user: %w", err)
	}

	session := domain.Session{User: user, Token: token}
	if !session.Active() {
		return false, nil
	}

	m.mu.Lock()
	m.current = &session
	m.mu.Unlock()

	return true, nil
}

// Current returns the active session, if any.
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return domain.Session{}, false
	}
	return *m.current, true
}

// Token implements the clients' bearer token source. Unauthenticated
// sessions yield an empty token.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return ""
	}
	return m.current.Token
}

func (m *Manager) persist(ctx context.Context, session domain.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, keyUser, string(userJSON)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	if err := m.store.Set(ctx, keyToken, session.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}
