package authsession

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashidharbabu/aerive-client/internal/storage"
	"github.com/shashidharbabu/aerive-client/pkg/auth"
	"github.com/shashidharbabu/aerive-client/pkg/enums"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
)

// Session is the signed-in identity persisted across restarts. The token is
// opaque on the wire; claims are decoded locally for display only.
type Session struct {
	UserID   string
	UserType enums.UserType
	Token    string
}

// Manager owns the durable auth keys and hands the gateway its bearer token.
type Manager struct {
	mu      sync.Mutex
	durable storage.Store
	logg    *logger.Logger
	current *Session
}

// NewManager builds the manager and hydrates any persisted session.
func NewManager(ctx context.Context, durable storage.Store, logg *logger.Logger) (*Manager, error) {
	if durable == nil {
		return nil, fmt.Errorf("durable store required")
	}
	m := &Manager{durable: durable, logg: logg}

	token, ok, err := durable.Get(ctx, storage.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("hydrating auth session: %w", err)
	}
	if !ok || token == "" {
		return m, nil
	}

	userID, _, _ := durable.Get(ctx, storage.KeyUser)
	rawType, _, _ := durable.Get(ctx, storage.KeyUserType)
	userType, typeErr := enums.ParseUserType(rawType)
	if userID == "" || typeErr != nil {
		if logg != nil {
			logg.Warn(ctx, "discarding incomplete persisted auth session")
		}
		return m, nil
	}

	m.current = &Session{UserID: userID, UserType: userType, Token: token}
	return m, nil
}

// SignIn persists the session. The token's claims are decoded as a sanity
// check but the signature is the server's business.
func (m *Manager) SignIn(ctx context.Context, session Session) error {
	if session.UserID == "" || session.Token == "" {
		return fmt.Errorf("user id and token are required")
	}
	if !session.UserType.IsValid() {
		return fmt.Errorf("invalid user type %q", session.UserType)
	}
	if _, err := auth.DecodeClaims(session.Token); err != nil && m.logg != nil {
		m.logg.Warn(ctx, fmt.Sprintf("token claims undecodable: %v", err))
	}

	m.mu.Lock()
	m.current = &session
	m.mu.Unlock()

	if err := m.durable.Set(ctx, storage.KeyToken, session.Token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	if err := m.durable.Set(ctx, storage.KeyUser, session.UserID); err != nil {
		return fmt.Errorf("persisting user: %w", err)
	}
	if err := m.durable.Set(ctx, storage.KeyUserType, session.UserType.String()); err != nil {
		return fmt.Errorf("persisting user type: %w", err)
	}
	return nil
}

// SignOut drops the session from memory and durable storage.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	for _, key := range []string{storage.KeyToken, storage.KeyUser, storage.KeyUserType} {
		if err := m.durable.Delete(ctx, key); err != nil {
			return fmt.Errorf("clearing %q: %w", key, err)
		}
	}
	return nil
}

// Current returns the signed-in session, or nil.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Token implements the gateway's token source; "" when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}
