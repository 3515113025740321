package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"community-wins-system/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SessionTTL is the fixed validity window from issuance.
const SessionTTL = 24 * time.Hour

// SessionUser is the denormalized identity embedded in a session.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Session is the authenticated context bound to a validated access token.
// Overwritten wholesale on each login.
type Session struct {
	User         SessionUser `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresAt    int64       `json:"expiresAt"` // epoch ms
}

func (s *Session) Expired(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}

// SessionStore holds sessions keyed by access token: an in-memory cache in
// front of a durable storage slot. Passed explicitly to handlers, not a
// package-level singleton.
type SessionStore struct {
	mu      sync.RWMutex
	cache   map[string]*Session
	storage SessionStorage
}

func NewSessionStore(storage SessionStorage) *SessionStore {
	return &SessionStore{
		cache:   make(map[string]*Session),
		storage: storage,
	}
}

// NewSession builds a session for an authenticated user with the fixed
// 24-hour validity.
func NewSession(user SessionUser, accessToken, refreshToken string) *Session {
	return &Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(SessionTTL).UnixMilli(),
	}
}

// Set replaces any existing session for the token and persists it. Storage
// failures fail soft: the in-memory copy still serves until restart.
func (s *SessionStore) Set(ctx context.Context, sess *Session) {
	s.mu.Lock()
	s.cache[sess.AccessToken] = sess
	s.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		logger.Errorf("session serialize failed: %v", err)
		return
	}
	if err := s.storage.Write(ctx, sess.AccessToken, data, SessionTTL); err != nil {
		logger.Warnf("session persist failed: %v", err)
	}
}

// Get returns the session for a token, reading through to durable storage on
// a cache miss. An expired session is evicted from both tiers on sight.
// Malformed or unreadable durable data is treated as absent.
func (s *SessionStore) Get(ctx context.Context, accessToken string) *Session {
	if accessToken == "" {
		return nil
	}
	now := time.Now()

	s.mu.RLock()
	sess, ok := s.cache[accessToken]
	s.mu.RUnlock()
	if ok {
		if sess.Expired(now) {
			s.Clear(ctx, accessToken)
			return nil
		}
		return sess
	}

	data, err := s.storage.Read(ctx, accessToken)
	if err != nil {
		logger.Warnf("session read failed: %v", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var stored Session
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.WithFields(logrus.Fields{"error": err}).Warn("discarding malformed stored session")
		return nil
	}
	if stored.Expired(now) {
		s.Clear(ctx, accessToken)
		return nil
	}

	s.mu.Lock()
	s.cache[accessToken] = &stored
	s.mu.Unlock()
	return &stored
}

// Clear removes both the in-memory and durable copies.
func (s *SessionStore) Clear(ctx context.Context, accessToken string) {
	s.mu.Lock()
	delete(s.cache, accessToken)
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, accessToken); err != nil {
		logger.Warnf("session delete failed: %v", err)
	}
}

// IsAuthenticated reports whether an unexpired session exists for the token.
func (s *SessionStore) IsAuthenticated(ctx context.Context, accessToken string) bool {
	return s.Get(ctx, accessToken) != nil
}
