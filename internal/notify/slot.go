// Package notify implements transient single-slot status messages. A slot
// holds at most one message; a new message overwrites the old one rather
// than queueing behind it.
package notify

import (
	"sync"
	"time"

	"github.com/meetingmind/meetingmind/internal/schedule"
)

// Severity classifies a message for display purposes.
type Severity string

const (
	Info  Severity = "info"
	Error Severity = "error"
)

// HideAfter is how long a message stays visible before it clears itself.
const HideAfter = 5 * time.Second

// Message is one transient notification.
type Message struct {
	Text     string
	Severity Severity
}

// Slot is a single message slot with auto-expiry. Every Show bumps a
// sequence number that the scheduled hide captures; a hide whose sequence is
// no longer current no-ops, so a stale timer can never clear a message that
// arrived after it was armed.
type Slot struct {
	mu       sync.Mutex
	seq      uint64
	current  *Message
	sched    schedule.Func
	onChange func(*Message)
}

// NewSlot builds a slot using the given scheduler for auto-hide.
func NewSlot(sched schedule.Func) *Slot {
	if sched == nil {
		sched = schedule.After
	}
	return &Slot{sched: sched}
}

// OnChange registers a listener invoked with the new message on Show and
// with nil on hide. At most one listener; registering replaces.
func (s *Slot) OnChange(fn func(*Message)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Show replaces the slot content and arms the auto-hide.
func (s *Slot) Show(text string, severity Severity) {
	msg := &Message{Text: text, Severity: severity}
	s.mu.Lock()
	s.seq++
	armed := s.seq
	s.current = msg
	notify := s.onChange
	s.mu.Unlock()
	if notify != nil {
		notify(msg)
	}
	s.sched(HideAfter, func() {
		s.hideIfCurrent(armed)
	})
}

// Hide clears the slot immediately and supersedes any pending auto-hide.
func (s *Slot) Hide() {
	s.mu.Lock()
	s.seq++
	s.current = nil
	notify := s.onChange
	s.mu.Unlock()
	if notify != nil {
		notify(nil)
	}
}

// Current returns the visible message, or nil.
func (s *Slot) Current() *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Slot) hideIfCurrent(armed uint64) {
	s.mu.Lock()
	if s.seq != armed {
		s.mu.Unlock()
		return
	}
	s.current = nil
	notify := s.onChange
	s.mu.Unlock()
	if notify != nil {
		notify(nil)
	}
}
