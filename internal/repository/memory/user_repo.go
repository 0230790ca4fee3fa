package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticketboard/internal/models"
	"ticketboard/internal/repository"
)

type userRow struct {
	user models.User
	hash string
}

type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]*userRow
	names map[string]string // lower(username) -> id
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: map[string]*userRow{}, names: map[string]string{}}
}

func (r *UserRepo) Create(_ context.Context, username, email, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(username)
	if _, taken := r.names[key]; taken {
		return nil, repository.ErrConflict
	}
	now := time.Now().UTC()
	row := &userRow{
		user: models.User{ID: uuid.NewString(), Username: username, Email: email, CreatedAt: now, UpdatedAt: now},
		hash: passwordHash,
	}
	r.byID[row.user.ID] = row
	r.names[key] = row.user.ID
	u := row.user
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*models.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.names[strings.ToLower(username)]
	if !ok {
		return nil, "", nil
	}
	row := r.byID[id]
	u := row.user
	return &u, row.hash, nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	u := row.user
	return &u, nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, id, username, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	oldKey, newKey := strings.ToLower(row.user.Username), strings.ToLower(username)
	if newKey != oldKey {
		if _, taken := r.names[newKey]; taken {
			return nil, repository.ErrConflict
		}
		delete(r.names, oldKey)
		r.names[newKey] = id
	}
	row.user.Username = username
	row.user.Email = email
	row.user.UpdatedAt = time.Now().UTC()
	u := row.user
	return &u, nil
}
