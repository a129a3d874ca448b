// Package session keeps server-side session records keyed by the opaque
// token carried in the cookie. Admin and traveler sessions are separate
// tracks; neither grants the other's privileges.
package session

import (
	"sync"
	"time"
)

type Kind string

const (
	KindAdmin    Kind = "admin"
	KindTraveler Kind = "traveler"
)

type Session struct {
	Token     string
	Kind      Kind
	ExpiresAt time.Time

	// admin track
	AdminUserID   int64
	AdminUsername string
	AdminName     string

	// traveler self-service track
	TravelerID       int64
	TravelerPassport string
}

// Store is an in-process session table with sliding expiry.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
	stop     chan struct{}
}

func NewStore(ttl time.Duration) *Store {
	s := &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put registers sess under its token and stamps the expiry.
func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ExpiresAt = time.Now().Add(s.ttl)
	s.sessions[sess.Token] = sess
}

// Get returns the live session for token, refreshing its expiry (sessions
// die after ttl of inactivity, not ttl after login).
func (s *Store) Get(token string, kind Kind) (*Session, bool) {
	if token == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || sess.Kind != kind {
		return nil, false
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return nil, false
	}
	sess.ExpiresAt = time.Now().Add(s.ttl)
	return sess, true
}

func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *Store) Close() {
	close(s.stop)
}

func (s *Store) janitor() {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-t.C:
			s.mu.Lock()
			for tok, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, tok)
				}
			}
			s.mu.Unlock()
		}
	}
}
