package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

const lockTimeout = 2 * time.Second

// FileStore keeps the session as JSON in a single 0600 file. Writes are
// atomic and serialized across processes with a sibling .lock file.
type FileStore struct {
	path string
	lock *flock.Flock
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lock: flock.New(path + ".lock")}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) withLock(exclusive bool, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	var ok bool
	var err error
	if exclusive {
		ok, err = f.lock.TryLockContext(ctx, 20*time.Millisecond)
	} else {
		ok, err = f.lock.TryRLockContext(ctx, 20*time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("lock session: %w", err)
	}
	if !ok {
		return errors.New("lock session: timed out")
	}
	defer f.lock.Unlock()
	return fn()
}

// Load returns empty data when no session has been saved yet.
func (f *FileStore) Load() (Data, error) {
	var d Data
	err := f.withLock(false, func() error {
		b, err := os.ReadFile(f.path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(b)) == 0 {
			return nil
		}
		if err := json.Unmarshal(b, &d); err != nil {
			return fmt.Errorf("decode session %s: %w", f.path, err)
		}
		return nil
	})
	return d, err
}

func (f *FileStore) Save(d Data) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return f.withLock(true, func() error {
		if err := atomic.WriteFile(f.path, bytes.NewReader(b)); err != nil {
			return fmt.Errorf("write session: %w", err)
		}
		// atomic.WriteFile doesn't set permissions for new files
		return os.Chmod(f.path, 0o600)
	})
}

func (f *FileStore) Clear() error {
	return f.withLock(true, func() error {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}
