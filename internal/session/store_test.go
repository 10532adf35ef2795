package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/meetingmind/meetingmind/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if s.Token() != "" {
		t.Fatalf("fresh store should have no token")
	}
	if s.Authenticated() {
		t.Fatalf("fresh store should not be authenticated")
	}
	if err := s.SetToken("abc123"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if got := s.Token(); got != "abc123" {
		t.Fatalf("token: got %q", got)
	}
	if !s.Authenticated() {
		t.Fatalf("expected authenticated after SetToken")
	}
}

func TestUserRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if s.User() != nil {
		t.Fatalf("fresh store should have no user")
	}
	u := &model.User{ID: "7", Username: "ada", Email: "ada@example.com"}
	if err := s.SetUser(u); err != nil {
		t.Fatalf("set user: %v", err)
	}
	got := s.User()
	if got == nil || got.Username != "ada" || got.Email != "ada@example.com" {
		t.Fatalf("user: got %+v", got)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Clearing an empty store must succeed.
	if err := s.Clear(); err != nil {
		t.Fatalf("clear empty store: %v", err)
	}
	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.SetUser(&model.User{Username: "ada"}); err != nil {
		t.Fatalf("set user: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Token() != "" || s.User() != nil {
		t.Fatalf("store should be empty after clear")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestCurrent(t *testing.T) {
	s := newTestStore(t)
	if s.Current() != nil {
		t.Fatalf("no session expected without token")
	}
	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	// Token alone yields a session with a nil user: the two entries are
	// independent writes and the profile half may be missing.
	sess := s.Current()
	if sess == nil || sess.Token != "tok" || sess.User != nil {
		t.Fatalf("session: got %+v", sess)
	}
}

func TestCorruptUserTreatedAsAbsent(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.dir, userFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt user: %v", err)
	}
	if s.User() != nil {
		t.Fatalf("corrupt profile should read as absent")
	}
}

func TestSharedDirectoryLastWriterWins(t *testing.T) {
	dir := t.TempDir()
	a, err := NewStore(dir)
	if err != nil {
		t.Fatalf("store a: %v", err)
	}
	b, err := NewStore(dir)
	if err != nil {
		t.Fatalf("store b: %v", err)
	}
	if err := a.SetToken("first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.SetToken("second"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := a.Token(); got != "second" {
		t.Fatalf("expected last writer to win, got %q", got)
	}
}
