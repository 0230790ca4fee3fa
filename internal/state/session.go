package state

import (
	"context"
	"sync"

	"ticketboard/internal/client"
	"ticketboard/internal/models"
	"ticketboard/internal/session"
)

// Phase is where the session is in its lifecycle:
// anonymous -> authenticating -> authenticated -> anonymous.
type Phase int

const (
	Anonymous Phase = iota
	Authenticating
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return "anonymous"
}

// AuthService is the slice of api.Auth the session manager calls.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Register(ctx context.Context, reg models.Registration) (*models.AuthResult, error)
	Verify(ctx context.Context) (*models.User, error)
	Logout() error
}

type SessionView struct {
	Phase Phase
	User  *models.User
	Error string
}

type Session struct {
	svc  AuthService
	sess *session.Session

	mu    sync.Mutex
	phase Phase
	user  *models.User
	err   string
}

func NewSession(svc AuthService, sess *session.Session) *Session {
	return &Session{svc: svc, sess: sess}
}

func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := SessionView{Phase: s.phase, Error: s.err}
	if s.user != nil {
		u := *s.user
		v.User = &u
	}
	return v
}

func (s *Session) Authenticated() bool { return s.Snapshot().Phase == Authenticated }

func (s *Session) set(phase Phase, user *models.User, msg string) {
	s.mu.Lock()
	s.phase, s.user, s.err = phase, user, msg
	s.mu.Unlock()
}

// Restore verifies a persisted token. On failure the token is dropped
// and the session stays anonymous.
func (s *Session) Restore(ctx context.Context) bool {
	if !s.sess.Authenticated() {
		s.set(Anonymous, nil, "")
		return false
	}
	s.set(Authenticating, nil, "")
	u, err := s.svc.Verify(ctx)
	if err != nil {
		_ = s.sess.Clear()
		s.set(Anonymous, nil, "")
		return false
	}
	_ = s.sess.SetUser(*u)
	s.set(Authenticated, u, "")
	return true
}

func (s *Session) Login(ctx context.Context, creds models.Credentials) bool {
	if creds.Username == "" || creds.Password == "" {
		s.set(Anonymous, nil, "username and password are required")
		return false
	}
	s.set(Authenticating, nil, "")
	res, err := s.svc.Login(ctx, creds)
	return s.settle(res, err)
}

func (s *Session) Register(ctx context.Context, reg models.Registration) bool {
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		s.set(Anonymous, nil, "username, email and password are required")
		return false
	}
	s.set(Authenticating, nil, "")
	res, err := s.svc.Register(ctx, reg)
	return s.settle(res, err)
}

func (s *Session) settle(res *models.AuthResult, err error) bool {
	if err != nil {
		msg := client.Message(err)
		if client.IsUnauthorized(err) {
			msg = "invalid username or password"
		}
		s.set(Anonymous, nil, msg)
		return false
	}
	u := res.User
	s.set(Authenticated, &u, "")
	return true
}

func (s *Session) Logout() {
	_ = s.svc.Logout()
	s.set(Anonymous, nil, "")
}

// SetUser refreshes the cached user after a profile edit.
func (s *Session) SetUser(u models.User) {
	_ = s.sess.SetUser(u)
	s.mu.Lock()
	if s.phase == Authenticated {
		s.user = &u
	}
	s.mu.Unlock()
}

// HandleError drops to anonymous when err is a 401. The HTTP client has
// already cleared the stored token; this keeps the visible state in step.
// It reports whether the session was ended.
func (s *Session) HandleError(err error) bool {
	if !client.IsUnauthorized(err) {
		return false
	}
	s.set(Anonymous, nil, client.Message(err))
	return true
}
