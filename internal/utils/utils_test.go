package utils

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	tok, err := SignJWT("s3cret", "u-1", "ana", time.Hour)
	require.NoError(t, err)

	c, err := ParseJWT("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "ana", c.Username)
}

func TestParseJWTRejectsWrongSecretAndExpired(t *testing.T) {
	tok, err := SignJWT("s3cret", "u-1", "ana", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT("other", tok)
	assert.Error(t, err)

	expired, err := SignJWT("s3cret", "u-1", "ana", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT("s3cret", expired)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	HashCost = bcrypt.MinCost
	h, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, "hunter22"))
	assert.False(t, CheckPassword(h, "hunter23"))
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, 418, "teapot")
	assert.Equal(t, 418, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"teapot"}`, w.Body.String())
}

func TestIdentity(t *testing.T) {
	ctx := WithIdentity(context.Background(), "u-1", "ana")
	id, name, ok := Identity(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", id)
	assert.Equal(t, "ana", name)

	_, _, ok = Identity(context.Background())
	assert.False(t, ok)
}
