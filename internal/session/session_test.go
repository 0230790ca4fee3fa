package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketboard/internal/models"
)

func TestFileStorePersistsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := New(NewFileStore(path))
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.Set("tok-1", &models.User{ID: "u-1", Username: "ana"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	restored, err := New(NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, "tok-1", restored.Token())
	require.NotNil(t, restored.User())
	assert.Equal(t, "ana", restored.User().Username)
}

func TestClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := New(NewFileStore(path))
	require.NoError(t, err)
	require.NoError(t, s.Set("tok", nil))

	require.NoError(t, s.Clear())
	assert.False(t, s.Authenticated())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	require.NoError(t, s.Clear())
}

func TestRefreshPicksUpOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	a, err := New(NewFileStore(path))
	require.NoError(t, err)
	b, err := New(NewFileStore(path))
	require.NoError(t, err)

	require.NoError(t, a.Set("from-a", nil))
	assert.Empty(t, b.Token())
	require.NoError(t, b.Refresh())
	assert.Equal(t, "from-a", b.Token())
}

func TestCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := New(NewFileStore(path))
	assert.Error(t, err)
}

func TestUserIsCopied(t *testing.T) {
	s := NewMemory()
	u := &models.User{ID: "u-1", Username: "ana"}
	require.NoError(t, s.Set("tok", u))
	u.Username = "mutated"
	assert.Equal(t, "ana", s.User().Username)

	require.NoError(t, s.SetUser(models.User{ID: "u-1", Username: "anna"}))
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, "anna", s.User().Username)
}
