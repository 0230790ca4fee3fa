// Package session holds the client's authenticated identity. A Session
// is handed to the HTTP client at construction; nothing reads the token
// from ambient state.
package session

import (
	"sync"

	"ticketboard/internal/models"
)

// Data is the persisted form of a session.
type Data struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// Store persists session data between runs.
type Store interface {
	Load() (Data, error)
	Save(Data) error
	Clear() error
}

type Session struct {
	mu    sync.RWMutex
	data  Data
	store Store
}

// New loads any persisted session from store.
func New(store Store) (*Session, error) {
	s := &Session{store: store}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh reloads the session from its store, picking up logins made by
// another process.
func (s *Session) Refresh() error {
	d, err := s.store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.User == nil {
		return nil
	}
	u := *s.data.User
	return &u
}

func (s *Session) Authenticated() bool { return s.Token() != "" }

// Set stores a new token and user and persists them.
func (s *Session) Set(token string, user *models.User) error {
	d := Data{Token: token}
	if user != nil {
		u := *user
		d.User = &u
	}
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
	return s.store.Save(d)
}

// SetUser replaces the cached user and keeps the token.
func (s *Session) SetUser(user models.User) error {
	s.mu.Lock()
	s.data.User = &user
	d := s.data
	s.mu.Unlock()
	return s.store.Save(d)
}

// Clear forgets the token in memory and in the store.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.data = Data{}
	s.mu.Unlock()
	return s.store.Clear()
}
