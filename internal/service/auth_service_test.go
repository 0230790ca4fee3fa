package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ticketboard/internal/models"
	"ticketboard/internal/repository"
	"ticketboard/internal/repository/memory"
	"ticketboard/internal/utils"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	utils.HashCost = bcrypt.MinCost
	return NewAuthService(memory.NewUserRepo(), "test-secret", time.Hour)
}

func TestRegisterThenLoginAndVerify(t *testing.T) {
	ctx := context.Background()
	a := newAuth(t)

	reg, err := a.Register(ctx, models.Registration{Username: " ana ", Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "ana", reg.User.Username)
	assert.NotEmpty(t, reg.Token)

	res, err := a.Login(ctx, models.Credentials{Username: "ana", Password: "hunter22"})
	require.NoError(t, err)

	u, err := a.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, u.ID)
}

func TestLoginRejectsBadPasswordAndUnknownUser(t *testing.T) {
	ctx := context.Background()
	a := newAuth(t)
	_, err := a.Register(ctx, models.Registration{Username: "ana", Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = a.Login(ctx, models.Credentials{Username: "ana", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.Login(ctx, models.Credentials{Username: "bob", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	a := newAuth(t)

	for name, in := range map[string]models.Registration{
		"no username":    {Email: "a@example.com", Password: "hunter22"},
		"bad email":      {Username: "ana", Email: "nope", Password: "hunter22"},
		"short password": {Username: "ana", Email: "a@example.com", Password: "123"},
	} {
		_, err := a.Register(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}

	_, err := a.Register(ctx, models.Registration{Username: "ana", Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)
	_, err = a.Register(ctx, models.Registration{Username: "ana", Email: "b@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := newAuth(t).Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	a := newAuth(t)
	reg, err := a.Register(ctx, models.Registration{Username: "ana", Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	email := "ana@corp.example"
	u, err := a.UpdateProfile(ctx, reg.User.ID, models.ProfileUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, email, u.Email)

	blank := ""
	_, err = a.UpdateProfile(ctx, reg.User.ID, models.ProfileUpdate{Username: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
