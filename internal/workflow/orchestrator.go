// Package workflow orchestrates the upload-then-refresh sequence: submit a
// file to the processing service, report progress through the status slot,
// and keep the meetings list view current.
package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/meetingmind/meetingmind/internal/config"
	"github.com/meetingmind/meetingmind/internal/model"
	"github.com/meetingmind/meetingmind/internal/notify"
	"github.com/meetingmind/meetingmind/internal/schedule"
)

// RefreshDelay is the pause between a successful upload and the follow-up
// list refresh. It gives the backend time to begin processing before the
// list is re-fetched; it is a heuristic, not a completion guarantee.
const RefreshDelay = 1000 * time.Millisecond

// Normative user-facing strings.
const (
	msgSelectFile   = "Please select a file to upload"
	msgUploading    = "Uploading and processing..."
	msgLoadFailed   = "Failed to load meetings"
	uploadOKFormat  = "File uploaded successfully: %s"
	uploadErrFormat = "Upload failed: %s"
	loadErrFormat   = "Error loading meetings: %s"
)

// API is the slice of the meetings service the orchestrator needs.
type API interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
	Meetings(ctx context.Context) ([]model.Meeting, error)
}

// ListView receives full replacements of the meetings display. An empty
// slice is a meaningful state (the view renders its own placeholder), so it
// is passed through rather than filtered.
type ListView interface {
	ShowLoading()
	ShowError(message string)
	ShowMeetings(items []model.MeetingView)
}

// Orchestrator runs uploads and list refreshes. Each triggered operation is
// an independent unit of work; nothing cancels an in-flight call, but every
// LoadMeetings takes a sequence number and a settling call whose sequence
// has been superseded discards its result instead of rendering it.
type Orchestrator struct {
	api    API
	status *notify.Slot
	list   ListView
	sched  schedule.Func
	busy   func(bool)

	mu      sync.Mutex
	loadSeq uint64
}

// New wires an Orchestrator. sched defaults to real timers when nil.
func New(api API, status *notify.Slot, list ListView, sched schedule.Func) *Orchestrator {
	if sched == nil {
		sched = schedule.After
	}
	return &Orchestrator{
		api:    api,
		status: status,
		list:   list,
		sched:  sched,
	}
}

// SetBusyHook registers the callback that disables/enables the submit
// control around an upload.
func (o *Orchestrator) SetBusyHook(fn func(bool)) {
	o.busy = fn
}

// SubmitUpload sends one file. An empty selection is rejected locally with
// no network call. The submit control is restored on every path, success or
// failure. A successful upload schedules exactly one list refresh after
// RefreshDelay.
func (o *Orchestrator) SubmitUpload(ctx context.Context, filename string, r io.Reader) error {
	if filename == "" || r == nil {
		o.status.Show(msgSelectFile, notify.Error)
		return &model.ValidationError{Reason: msgSelectFile}
	}

	o.setBusy(true)
	defer o.setBusy(false)
	o.status.Show(msgUploading, notify.Info)

	echoed, err := o.api.Upload(ctx, filename, r)
	if err != nil {
		o.status.Show(fmt.Sprintf(uploadErrFormat, uploadFailureText(err)), notify.Error)
		return err
	}

	o.status.Show(fmt.Sprintf(uploadOKFormat, echoed), notify.Info)
	o.sched(RefreshDelay, func() {
		if err := o.LoadMeetings(context.Background()); err != nil {
			config.Logger.Debugf("post-upload refresh: %v", err)
		}
	})
	return nil
}

// SubmitUploadFile is the path-based convenience used by the CLI and the
// dashboard form: it resolves the selection to a readable file first, so an
// unreadable path never reaches the wire.
func (o *Orchestrator) SubmitUploadFile(ctx context.Context, path string) error {
	if path == "" {
		return o.SubmitUpload(ctx, "", nil)
	}
	f, err := os.Open(path)
	if err != nil {
		o.status.Show(fmt.Sprintf(uploadErrFormat, err.Error()), notify.Error)
		return &model.ValidationError{Reason: err.Error()}
	}
	defer f.Close()
	return o.SubmitUpload(ctx, filepath.Base(path), f)
}

// LoadMeetings replaces the list view with a fresh fetch: a loading
// placeholder first, then either the rendered collection, an explicit
// empty-state, or an inline error. Safe to invoke repeatedly; when calls
// overlap, only the newest trigger's result is rendered.
func (o *Orchestrator) LoadMeetings(ctx context.Context) error {
	o.mu.Lock()
	o.loadSeq++
	seq := o.loadSeq
	o.mu.Unlock()

	o.list.ShowLoading()

	items, err := o.api.Meetings(ctx)

	o.mu.Lock()
	stale := seq != o.loadSeq
	o.mu.Unlock()
	if stale {
		config.Logger.Debugf("discarding superseded meetings fetch (seq %d)", seq)
		return nil
	}

	if err != nil {
		switch e := err.(type) {
		case *model.TransportFailure:
			o.list.ShowError(fmt.Sprintf(loadErrFormat, e.Err.Error()))
		default:
			o.list.ShowError(msgLoadFailed)
		}
		return err
	}

	o.list.ShowMeetings(model.Views(items))
	return nil
}

func (o *Orchestrator) setBusy(busy bool) {
	if o.busy != nil {
		o.busy(busy)
	}
}

// uploadFailureText picks the wording for the "Upload failed: ..." line:
// the server's detail when it declined, the raw error text when the
// transport broke.
func uploadFailureText(err error) string {
	switch e := err.(type) {
	case *model.RemoteRejection:
		return e.Message
	case *model.TransportFailure:
		return e.Err.Error()
	default:
		return err.Error()
	}
}
