package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/studiowebux/blueline/internal/config"
	"github.com/studiowebux/blueline/internal/types"
)

// Store reads and writes the session file under an inter-process file lock.
type Store struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (s *Store) Load() (types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return types.Session{}, fmt.Errorf("lock session: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	return s.loadUnlocked()
}

// Update applies fn to the stored session and writes it back while holding
// the lock.
func (s *Store) Update(fn func(*types.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock session: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	sess, err := s.loadUnlocked()
	if err != nil {
		return err
	}
	if err := fn(&sess); err != nil {
		return err
	}
	return s.saveUnlocked(sess)
}

func (s *Store) loadUnlocked() (types.Session, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.Session{}, nil
		}
		return types.Session{}, fmt.Errorf("read session: %w", err)
	}

	var sess types.Session
	if len(b) == 0 {
		return sess, nil
	}
	if err := json.Unmarshal(b, &sess); err != nil {
		return types.Session{}, fmt.Errorf("parse session: %w", err)
	}
	return sess, nil
}

func (s *Store) saveUnlocked(sess types.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), config.DirPermissions); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	b = append(b, '\n')

	if err := atomicWriteFile(s.path, b, config.FilePermissions); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
