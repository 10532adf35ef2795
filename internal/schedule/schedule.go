// Package schedule abstracts fire-and-forget delayed execution so flows can
// be exercised in tests without real timers.
package schedule

import "time"

// Func runs fn once after the given delay. Implementations never cancel a
// scheduled call; superseding is the caller's job via sequence tokens.
type Func func(delay time.Duration, fn func())

// After is the production implementation backed by time.AfterFunc.
func After(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

// Blocking sleeps for the delay and then runs fn on the calling goroutine.
// One-shot CLI commands use it so a scheduled follow-up still happens before
// the process exits.
func Blocking(delay time.Duration, fn func()) {
	time.Sleep(delay)
	fn()
}
