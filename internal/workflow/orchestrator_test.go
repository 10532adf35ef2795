package workflow

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/meetingmind/meetingmind/internal/model"
	"github.com/meetingmind/meetingmind/internal/notify"
)

type fakeAPI struct {
	mu           sync.Mutex
	uploadCalls  int
	uploadName   string
	uploadBody   string
	uploadEcho   string
	uploadErr    error
	meetingCalls int
	meetings     []model.Meeting
	meetingsErr  error
	// meetingsFn, when set, replaces the canned meetings result per call.
	meetingsFn func(call int) ([]model.Meeting, error)
}

func (f *fakeAPI) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	f.uploadName = filename
	data, _ := io.ReadAll(r)
	f.uploadBody = string(data)
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if f.uploadEcho != "" {
		return f.uploadEcho, nil
	}
	return filename, nil
}

func (f *fakeAPI) Meetings(ctx context.Context) ([]model.Meeting, error) {
	f.mu.Lock()
	call := f.meetingCalls
	f.meetingCalls++
	fn := f.meetingsFn
	f.mu.Unlock()
	if fn != nil {
		return fn(call)
	}
	return f.meetings, f.meetingsErr
}

// recordingView captures every state transition of the list display.
type recordingView struct {
	mu     sync.Mutex
	states []string
	last   []model.MeetingView
}

func (v *recordingView) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, "loading")
}

func (v *recordingView) ShowError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, "error:"+msg)
}

func (v *recordingView) ShowMeetings(items []model.MeetingView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, "meetings")
	v.last = items
}

func (v *recordingView) history() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.states...)
}

type fakeScheduler struct {
	mu     sync.Mutex
	delays []time.Duration
	fns    []func()
}

func (f *fakeScheduler) schedule(d time.Duration, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays = append(f.delays, d)
	f.fns = append(f.fns, fn)
}

func (f *fakeScheduler) refreshes() []func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []func()
	for i, d := range f.delays {
		if d == RefreshDelay {
			out = append(out, f.fns[i])
		}
	}
	return out
}

type fixture struct {
	api    *fakeAPI
	view   *recordingView
	status *notify.Slot
	sched  *fakeScheduler
	busy   []bool
	orch   *Orchestrator
}

func newFixture() *fixture {
	f := &fixture{
		api:   &fakeAPI{},
		view:  &recordingView{},
		sched: &fakeScheduler{},
	}
	f.status = notify.NewSlot(f.sched.schedule)
	f.orch = New(f.api, f.status, f.view, f.sched.schedule)
	f.orch.SetBusyHook(func(b bool) { f.busy = append(f.busy, b) })
	return f
}

func TestSubmitUploadEmptySelection(t *testing.T) {
	f := newFixture()
	err := f.orch.SubmitUpload(context.Background(), "", nil)
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if f.api.uploadCalls != 0 {
		t.Fatalf("missing file must not reach the network")
	}
	if msg := f.status.Current(); msg == nil || msg.Text != "Please select a file to upload" || msg.Severity != notify.Error {
		t.Fatalf("status: %+v", msg)
	}
	if len(f.busy) != 0 {
		t.Fatalf("busy hook must not fire on local rejection")
	}
}

func TestSubmitUploadSuccessSchedulesOneRefresh(t *testing.T) {
	f := newFixture()
	f.api.uploadEcho = "standup.mp3"
	if err := f.orch.SubmitUpload(context.Background(), "standup.mp3", strings.NewReader("bytes")); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if f.api.uploadName != "standup.mp3" || f.api.uploadBody != "bytes" {
		t.Fatalf("upload payload: %q %q", f.api.uploadName, f.api.uploadBody)
	}
	if msg := f.status.Current(); msg == nil || msg.Text != "File uploaded successfully: standup.mp3" || msg.Severity != notify.Info {
		t.Fatalf("status: %+v", msg)
	}
	// The refresh is scheduled, not executed synchronously.
	refreshes := f.sched.refreshes()
	if len(refreshes) != 1 {
		t.Fatalf("expected exactly one scheduled refresh, got %d", len(refreshes))
	}
	if f.api.meetingCalls != 0 {
		t.Fatalf("refresh ran synchronously")
	}
	refreshes[0]()
	if f.api.meetingCalls != 1 {
		t.Fatalf("scheduled refresh should fetch once, got %d", f.api.meetingCalls)
	}
	// The submit control was disabled and restored.
	if len(f.busy) != 2 || f.busy[0] != true || f.busy[1] != false {
		t.Fatalf("busy transitions: %v", f.busy)
	}
}

func TestSubmitUploadRejectionShowsDetail(t *testing.T) {
	f := newFixture()
	f.api.uploadErr = &model.RemoteRejection{Message: "too large"}
	if err := f.orch.SubmitUpload(context.Background(), "big.wav", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}
	if msg := f.status.Current(); msg == nil || msg.Text != "Upload failed: too large" {
		t.Fatalf("status: %+v", msg)
	}
	if len(f.sched.refreshes()) != 0 {
		t.Fatalf("failed upload must not schedule a refresh")
	}
	// Control restored even on failure.
	if len(f.busy) != 2 || f.busy[1] != false {
		t.Fatalf("busy transitions: %v", f.busy)
	}
}

func TestSubmitUploadRejectionWithoutDetail(t *testing.T) {
	f := newFixture()
	// The API boundary has already defaulted the missing detail field.
	f.api.uploadErr = &model.RemoteRejection{Message: "Unknown error"}
	f.orch.SubmitUpload(context.Background(), "a.wav", strings.NewReader("x"))
	if msg := f.status.Current(); msg == nil || msg.Text != "Upload failed: Unknown error" {
		t.Fatalf("status: %+v", msg)
	}
}

func TestSubmitUploadTransportFailureShowsErrorText(t *testing.T) {
	f := newFixture()
	f.api.uploadErr = &model.TransportFailure{Err: errors.New("connection refused")}
	f.orch.SubmitUpload(context.Background(), "a.wav", strings.NewReader("x"))
	if msg := f.status.Current(); msg == nil || msg.Text != "Upload failed: connection refused" {
		t.Fatalf("status: %+v", msg)
	}
}

func TestSubmitUploadFileMissingPath(t *testing.T) {
	f := newFixture()
	err := f.orch.SubmitUploadFile(context.Background(), "")
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if f.api.uploadCalls != 0 {
		t.Fatalf("no network call expected")
	}
}

func TestSubmitUploadFileUnreadablePath(t *testing.T) {
	f := newFixture()
	err := f.orch.SubmitUploadFile(context.Background(), "/nonexistent/recording.mp3")
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if f.api.uploadCalls != 0 {
		t.Fatalf("unreadable file must not reach the network")
	}
	if msg := f.status.Current(); msg == nil || !strings.HasPrefix(msg.Text, "Upload failed: ") {
		t.Fatalf("status: %+v", msg)
	}
}

func TestLoadMeetingsReplacesList(t *testing.T) {
	f := newFixture()
	title := "Sync"
	f.api.meetings = []model.Meeting{{Title: &title}}
	if err := f.orch.LoadMeetings(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	h := f.view.history()
	if len(h) != 2 || h[0] != "loading" || h[1] != "meetings" {
		t.Fatalf("view transitions: %v", h)
	}
	if len(f.view.last) != 1 || f.view.last[0].Title != "Sync" {
		t.Fatalf("rendered items: %+v", f.view.last)
	}
}

func TestLoadMeetingsEmptyCollectionStillRenders(t *testing.T) {
	f := newFixture()
	if err := f.orch.LoadMeetings(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	h := f.view.history()
	if h[len(h)-1] != "meetings" {
		t.Fatalf("empty collection should reach ShowMeetings: %v", h)
	}
	if len(f.view.last) != 0 {
		t.Fatalf("expected empty projection")
	}
}

func TestLoadMeetingsHTTPError(t *testing.T) {
	f := newFixture()
	f.api.meetingsErr = &model.RemoteRejection{Message: "status 503"}
	if err := f.orch.LoadMeetings(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	h := f.view.history()
	if h[len(h)-1] != "error:Failed to load meetings" {
		t.Fatalf("view transitions: %v", h)
	}
}

func TestLoadMeetingsTransportError(t *testing.T) {
	f := newFixture()
	f.api.meetingsErr = &model.TransportFailure{Err: errors.New("connection refused")}
	f.orch.LoadMeetings(context.Background())
	h := f.view.history()
	if h[len(h)-1] != "error:Error loading meetings: connection refused" {
		t.Fatalf("view transitions: %v", h)
	}
}

func TestLoadMeetingsSupersededResultDiscarded(t *testing.T) {
	f := newFixture()
	oldTitle := "old"
	newTitle := "new"
	release := make(chan struct{})
	f.api.meetingsFn = func(call int) ([]model.Meeting, error) {
		if call == 0 {
			// First trigger: block until the second has fully settled.
			<-release
			return []model.Meeting{{Title: &oldTitle}}, nil
		}
		return []model.Meeting{{Title: &newTitle}}, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.orch.LoadMeetings(context.Background())
	}()
	// Make sure the first call is in flight before issuing the second.
	for {
		f.api.mu.Lock()
		started := f.api.meetingCalls > 0
		f.api.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := f.orch.LoadMeetings(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	close(release)
	<-done

	// The first (older) trigger settled last but must not have replaced the
	// newer render.
	if len(f.view.last) != 1 || f.view.last[0].Title != "new" {
		t.Fatalf("stale response clobbered newer render: %+v", f.view.last)
	}
}
