// Package tui hosts the interactive client: a landing page, login and
// register forms, and the dashboard with the upload form and meetings list.
// The bubbletea message loop is the single cooperative execution thread;
// network calls run as commands and everything the flows produce (slot
// changes, navigation, list states) arrives back as messages.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meetingmind/meetingmind/internal/authclient"
	"github.com/meetingmind/meetingmind/internal/authflow"
	"github.com/meetingmind/meetingmind/internal/config"
	"github.com/meetingmind/meetingmind/internal/meetingclient"
	"github.com/meetingmind/meetingmind/internal/model"
	"github.com/meetingmind/meetingmind/internal/notify"
	"github.com/meetingmind/meetingmind/internal/session"
	"github.com/meetingmind/meetingmind/internal/workflow"
)

type slotID int

const (
	slotAuthSuccess slotID = iota
	slotAuthError
	slotUpload
)

// Messages the flows push into the loop.
type (
	navigateMsg    struct{ page model.Page }
	slotChangedMsg struct {
		slot slotID
		msg  *notify.Message
	}
	busyMsg      struct{ busy bool }
	listStateMsg struct {
		state listState
		err   string
		items []model.MeetingView
	}
)

// app forwards flow events into the program once it is running.
type app struct {
	program *tea.Program
}

func (a *app) send(msg tea.Msg) {
	if a.program != nil {
		a.program.Send(msg)
	}
}

// teaListView adapts the orchestrator's list sink onto program messages.
type teaListView struct {
	app *app
}

func (v *teaListView) ShowLoading() {
	v.app.send(listStateMsg{state: listLoading})
}

func (v *teaListView) ShowError(message string) {
	v.app.send(listStateMsg{state: listFailed, err: message})
}

func (v *teaListView) ShowMeetings(items []model.MeetingView) {
	v.app.send(listStateMsg{state: listReady, items: items})
}

// Run wires the flows to a program and blocks until the user quits.
func Run(cfg *config.Config, store *session.Store) error {
	authAPI := authclient.New(cfg.AuthBaseURL, cfg.HTTPTimeout)
	meetingAPI := meetingclient.New(cfg.APIBaseURL, cfg.HTTPTimeout)

	a := &app{}
	success := notify.NewSlot(nil)
	errors := notify.NewSlot(nil)
	upload := notify.NewSlot(nil)
	success.OnChange(func(m *notify.Message) { a.send(slotChangedMsg{slotAuthSuccess, m}) })
	errors.OnChange(func(m *notify.Message) { a.send(slotChangedMsg{slotAuthError, m}) })
	upload.OnChange(func(m *notify.Message) { a.send(slotChangedMsg{slotUpload, m}) })

	mgr := authflow.New(authAPI, store, success, errors, func(p model.Page) {
		a.send(navigateMsg{page: p})
	}, nil)
	orch := workflow.New(meetingAPI, upload, &teaListView{app: a}, nil)
	orch.SetBusyHook(func(b bool) { a.send(busyMsg{busy: b}) })

	start := model.PageLanding
	if store.Authenticated() {
		start = model.PageDashboard
	}
	ui := newUI(mgr, orch, start)
	a.program = tea.NewProgram(ui, tea.WithAltScreen())
	_, err := a.program.Run()
	return err
}
