// Package session persists the authenticated identity across runs. The store
// is an explicit object passed to whoever needs it rather than ambient global
// state, which keeps the read/write races between concurrent users of the
// same state directory visible instead of hidden.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/meetingmind/meetingmind/internal/model"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store keeps two named entries under a state directory: the bearer token
// and the serialized user profile. The entries are written independently and
// without locking, mirroring origin-local browser storage: a second process
// pointing at the same directory sees whatever the last writer left, and the
// window between the two writes is real.
type Store struct {
	dir string
}

// NewStore prepares the state directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Token returns the stored credential, or "" when unauthenticated.
func (s *Store) Token() string {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetToken persists the credential.
func (s *Store) SetToken(token string) error {
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// User returns the stored profile, or nil when absent. A profile that fails
// to decode is treated as absent; it is only display data.
func (s *Store) User() *model.User {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// SetUser persists the profile.
func (s *Store) SetUser(u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), data, 0o600); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

// Clear removes both entries. It is idempotent: clearing an empty store
// succeeds.
func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	return nil
}

// Authenticated reports whether a token is present. No liveness or expiry
// check happens here: a server-side revocation is invisible until a call
// fails.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Current assembles a Session from storage, or nil when no token exists.
func (s *Store) Current() *model.Session {
	token := s.Token()
	if token == "" {
		return nil
	}
	return &model.Session{Token: token, User: s.User()}
}
