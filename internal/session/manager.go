package session

import (
	"context"
	"time"

	"sweetshop-web/internal/api"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the session lifecycle: anonymous -> authenticated -> anonymous.
// It exchanges credentials with the sweets API and keeps the resulting state
// in the configured Store under an opaque cookie ID.
type Manager struct {
	store  Store
	client api.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewManager creates a new session manager
func NewManager(store Store, client api.Client, logger *zap.Logger, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Login authenticates against the sweets API and establishes a session
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	result, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.logger.Warn("Login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return m.establish(ctx, result)
}

// Register creates an account on the sweets API and establishes a session
func (m *Manager) Register(ctx context.Context, username, email, password string) (*Session, error) {
	result, err := m.client.Register(ctx, username, email, password)
	if err != nil {
		m.logger.Warn("Registration failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return m.establish(ctx, result)
}

// Logout clears the session. Purely local: the remote token is simply
// forgotten, matching the backend's stateless logout contract.
func (m *Manager) Logout(ctx context.Context, id string) {
	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Warn("Failed to delete session", zap.String("id", id), zap.Error(err))
	}
}

// Lookup resolves a cookie ID to its session, treating expired tokens as
// absent so the caller falls back to the login page
func (m *Manager) Lookup(ctx context.Context, id string) (*Session, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired() {
		m.Logout(ctx, id)
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (m *Manager) establish(ctx context.Context, result *api.AuthResult) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		Username:  result.User.Username,
		Email:     result.User.Email,
		Role:      result.User.Role,
		Token:     result.Token,
		ExpiresAt: time.Now().Add(m.ttl),
	}

	// The token's own exp claim, when present, bounds the session
	if claims, err := DecodeToken(result.Token); err == nil {
		expiry := claims.ExpiryOrDefault(m.ttl)
		if expiry.Before(sess.ExpiresAt) {
			sess.ExpiresAt = expiry
		}
		// Some deployments only carry identity in the token
		if sess.Username == "" {
			sess.Username = claims.Username
		}
		if sess.Role == "" {
			sess.Role = claims.Role
		}
	}

	if err := m.store.Set(ctx, sess, time.Until(sess.ExpiresAt)); err != nil {
		m.logger.Error("Failed to persist session", zap.Error(err))
		return nil, err
	}

	m.logger.Info("Session established",
		zap.String("username", sess.Username),
		zap.String("role", sess.Role),
		zap.Time("expires_at", sess.ExpiresAt),
	)

	return sess, nil
}
