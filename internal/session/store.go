package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"sweetshop-web/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var ErrSessionNotFound = &StoreError{Message: "session not found"}

type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// Store defines the interface for session persistence
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, sess *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// RedisStore implements Store using Redis
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// InMemoryStore is a fallback implementation when Redis is not available.
// Sessions kept here do not survive a restart.
type InMemoryStore struct {
	mu     sync.RWMutex
	logger *zap.Logger
	data   map[string]storeEntry
}

type storeEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewStore creates a new session store (Redis or InMemory fallback)
func NewStore(cfg *config.Config, logger *zap.Logger) Store {
	if !cfg.UseRedis {
		logger.Info("Session store: in-memory (USE_REDIS=false)")
		return NewInMemoryStore(logger)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		// Connection pool settings
		PoolSize:     10,
		MinIdleConns: 5,
		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		// Retry settings
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, using in-memory session store",
			zap.String("host", cfg.RedisHost),
			zap.String("port", cfg.RedisPort),
			zap.Error(err),
		)
		rdb.Close()
		return NewInMemoryStore(logger)
	}

	logger.Info("Redis session store initialized successfully",
		zap.String("host", cfg.RedisHost),
		zap.String("port", cfg.RedisPort),
		zap.Int("db", cfg.RedisDB),
	)

	return &RedisStore{
		client: rdb,
		logger: logger,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		s.logger.Warn("Redis session get failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess *Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), payload, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore(logger *zap.Logger) *InMemoryStore {
	return &InMemoryStore{
		logger: logger,
		data:   make(map[string]storeEntry),
	}
}

func (s *InMemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, exists := s.data[id]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.data, id)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal(entry.payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *InMemoryStore) Set(ctx context.Context, sess *Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[sess.ID] = storeEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
	return nil
}
