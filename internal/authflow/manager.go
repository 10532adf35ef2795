// Package authflow implements the session manager: login, registration,
// logout, protected-page gating, and the greeting. It owns no UI; messages
// go through notification slots and page changes through a navigate
// callback, so the terminal UI and the one-shot CLI share the same flow.
package authflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/meetingmind/meetingmind/internal/config"
	"github.com/meetingmind/meetingmind/internal/model"
	"github.com/meetingmind/meetingmind/internal/notify"
	"github.com/meetingmind/meetingmind/internal/schedule"
	"github.com/meetingmind/meetingmind/internal/session"
)

// RedirectDelay is how long a post-login/post-register success message stays
// on screen before navigation, so the user can read it.
const RedirectDelay = 1500 * time.Millisecond

// Normative user-facing strings.
const (
	msgLoginOK        = "Login successful! Redirecting..."
	msgRegisterOK     = "Registration successful! Redirecting to login..."
	msgNetworkError   = "Network error. Please check if the server is running."
	msgPasswordMatch  = "Passwords do not match"
	msgPasswordLength = "Password must be at least 6 characters"
	minPasswordLen    = 6
)

// API is the slice of the auth service the manager needs.
type API interface {
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Register(ctx context.Context, username, email, password string) error
}

// NavigateFunc switches the client to a page. May be nil when the caller
// has no pages (one-shot commands).
type NavigateFunc func(model.Page)

// Manager drives the session lifecycle against an explicit session store.
type Manager struct {
	api      API
	store    *session.Store
	success  *notify.Slot
	errors   *notify.Slot
	navigate NavigateFunc
	sched    schedule.Func

	mu     sync.Mutex
	navSeq uint64 // guards scheduled redirects against superseding actions
}

// New wires a Manager. success and errors are the two message slots of the
// auth pages; sched defaults to real timers when nil.
func New(api API, store *session.Store, success, errors *notify.Slot, navigate NavigateFunc, sched schedule.Func) *Manager {
	if sched == nil {
		sched = schedule.After
	}
	return &Manager{
		api:      api,
		store:    store,
		success:  success,
		errors:   errors,
		navigate: navigate,
		sched:    sched,
	}
}

// Login authenticates and, on success, persists the session and schedules
// navigation to the dashboard. Failures surface through the error slot and
// leave stored state untouched.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.errors.Hide()
	m.success.Hide()

	sess, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.showFailure(err)
		return err
	}

	// Two independent writes: the token and the profile are separate
	// storage entries and a concurrent reader can observe one without the
	// other.
	if err := m.store.SetToken(sess.Token); err != nil {
		config.Logger.Warnf("persist token: %v", err)
	}
	if sess.User != nil {
		if err := m.store.SetUser(sess.User); err != nil {
			config.Logger.Warnf("persist user: %v", err)
		}
	}
	m.success.Show(msgLoginOK, notify.Info)
	m.scheduleRedirect(model.PageDashboard)
	return nil
}

// Register validates locally, in order, before any network call: a supplied
// confirmation must match, then the password must be long enough. On
// success it schedules navigation to the login page; the new account is not
// auto-authenticated.
func (m *Manager) Register(ctx context.Context, username, email, password, confirmPassword string) error {
	m.errors.Hide()
	m.success.Hide()

	if confirmPassword != "" && confirmPassword != password {
		m.errors.Show(msgPasswordMatch, notify.Error)
		return &model.ValidationError{Reason: msgPasswordMatch}
	}
	if len(password) < minPasswordLen {
		m.errors.Show(msgPasswordLength, notify.Error)
		return &model.ValidationError{Reason: msgPasswordLength}
	}

	if err := m.api.Register(ctx, username, email, password); err != nil {
		m.showFailure(err)
		return err
	}
	m.success.Show(msgRegisterOK, notify.Info)
	m.scheduleRedirect(model.PageLogin)
	return nil
}

// Logout clears both storage entries unconditionally and navigates to the
// landing page at once. Safe to call with no session.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.bumpNavSeq() // supersede any pending post-login redirect
	if m.navigate != nil {
		m.navigate(model.PageLanding)
	}
	return nil
}

// CurrentSession reads the stored session; nil means unauthenticated. No
// server round-trip happens: a stale token stays believed until a call
// fails.
func (m *Manager) CurrentSession() *model.Session {
	return m.store.Current()
}

// Guard reports whether the page may render. A protected page without a
// session redirects to login and refuses.
func (m *Manager) Guard(page model.Page) bool {
	if page.Protected() && !m.store.Authenticated() {
		if m.navigate != nil {
			m.navigate(model.PageLogin)
		}
		return false
	}
	return true
}

// Greeting returns the welcome line for the user-info slot, or "" when
// there is nothing to greet.
func (m *Manager) Greeting() string {
	if !m.store.Authenticated() {
		return ""
	}
	user := m.store.User()
	if user == nil || user.Username == "" {
		return ""
	}
	return fmt.Sprintf("Welcome, %s!", user.Username)
}

func (m *Manager) showFailure(err error) {
	switch e := err.(type) {
	case *model.RemoteRejection:
		m.errors.Show(e.Message, notify.Error)
	case *model.TransportFailure:
		config.Logger.Debugf("auth transport failure: %v", e.Err)
		m.errors.Show(msgNetworkError, notify.Error)
	default:
		m.errors.Show(msgNetworkError, notify.Error)
	}
}

// scheduleRedirect arms a delayed navigation carrying the current sequence;
// a later Logout (or another redirect) bumps the sequence and the stale
// timer no-ops instead of yanking the user to an outdated page.
func (m *Manager) scheduleRedirect(page model.Page) {
	armed := m.bumpNavSeq()
	m.sched(RedirectDelay, func() {
		m.mu.Lock()
		stale := m.navSeq != armed
		m.mu.Unlock()
		if stale {
			return
		}
		if m.navigate != nil {
			m.navigate(page)
		}
	})
}

func (m *Manager) bumpNavSeq() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navSeq++
	return m.navSeq
}
