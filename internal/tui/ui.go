package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meetingmind/meetingmind/internal/authflow"
	"github.com/meetingmind/meetingmind/internal/model"
	"github.com/meetingmind/meetingmind/internal/notify"
	"github.com/meetingmind/meetingmind/internal/render"
	"github.com/meetingmind/meetingmind/internal/workflow"
)

type listState int

const (
	listLoading listState = iota
	listFailed
	listReady
)

// Form field indexes.
const (
	loginEmail = iota
	loginPassword
)

const (
	regUsername = iota
	regEmail
	regPassword
	regConfirm
)

// UI is the page model. One page is active at a time; the session manager
// decides whether the dashboard may render at all.
type UI struct {
	mgr  *authflow.Manager
	orch *workflow.Orchestrator

	page  model.Page
	width int

	loginInputs    []textinput.Model
	registerInputs []textinput.Model
	focus          int

	filePath  textinput.Model
	uploading bool

	authSuccess  *notify.Message
	authError    *notify.Message
	uploadStatus *notify.Message

	list     listState
	listErr  string
	meetings []model.MeetingView
}

func newUI(mgr *authflow.Manager, orch *workflow.Orchestrator, start model.Page) *UI {
	login := make([]textinput.Model, 2)
	login[loginEmail] = newInput("email", false)
	login[loginPassword] = newInput("password", true)

	register := make([]textinput.Model, 4)
	register[regUsername] = newInput("username", false)
	register[regEmail] = newInput("email", false)
	register[regPassword] = newInput("password", true)
	register[regConfirm] = newInput("confirm password", true)

	file := newInput("path to recording (.mp3 .wav .mp4)", false)

	ui := &UI{
		mgr:            mgr,
		orch:           orch,
		page:           model.PageLanding,
		width:          100,
		loginInputs:    login,
		registerInputs: register,
		filePath:       file,
		list:           listLoading,
	}
	ui.enterPage(start)
	return ui
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	if secret {
		in.EchoMode = textinput.EchoPassword
	}
	return in
}

func (u *UI) Init() tea.Cmd {
	if u.page == model.PageDashboard {
		return u.loadMeetingsCmd()
	}
	return nil
}

func (u *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		u.width = msg.Width
		return u, nil

	case navigateMsg:
		return u, u.enterPage(msg.page)

	case slotChangedMsg:
		switch msg.slot {
		case slotAuthSuccess:
			u.authSuccess = msg.msg
		case slotAuthError:
			u.authError = msg.msg
		case slotUpload:
			u.uploadStatus = msg.msg
		}
		return u, nil

	case busyMsg:
		u.uploading = msg.busy
		return u, nil

	case listStateMsg:
		u.list = msg.state
		u.listErr = msg.err
		u.meetings = msg.items
		return u, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return u, tea.Quit
		}
		switch u.page {
		case model.PageLanding:
			return u.updateLanding(msg)
		case model.PageLogin:
			return u.updateLogin(msg)
		case model.PageRegister:
			return u.updateRegister(msg)
		case model.PageDashboard:
			return u.updateDashboard(msg)
		}
	}
	return u, nil
}

// enterPage switches the visible page, consulting the guard first so a
// protected page never renders without a session.
func (u *UI) enterPage(page model.Page) tea.Cmd {
	if !u.mgr.Guard(page) {
		// Guard already navigated to login; that arrives as its own message.
		return nil
	}
	u.page = page
	u.focus = 0
	switch page {
	case model.PageLogin:
		resetInputs(u.loginInputs)
		u.loginInputs[loginEmail].Focus()
	case model.PageRegister:
		resetInputs(u.registerInputs)
		u.registerInputs[regUsername].Focus()
	case model.PageDashboard:
		u.filePath.Reset()
		u.filePath.Focus()
		u.list = listLoading
		// The dashboard loads the list once on entry, like the page did.
		return u.loadMeetingsCmd()
	}
	return nil
}

func resetInputs(inputs []textinput.Model) {
	for i := range inputs {
		inputs[i].Reset()
		inputs[i].Blur()
	}
}

func (u *UI) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "l", "enter":
		return u, u.enterPage(model.PageLogin)
	case "r":
		return u, u.enterPage(model.PageRegister)
	case "q", "esc":
		return u, tea.Quit
	}
	return u, nil
}

func (u *UI) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return u, u.enterPage(model.PageLanding)
	case tea.KeyTab, tea.KeyDown:
		u.cycleFocus(u.loginInputs, 1)
		return u, nil
	case tea.KeyShiftTab, tea.KeyUp:
		u.cycleFocus(u.loginInputs, -1)
		return u, nil
	case tea.KeyEnter:
		email := u.loginInputs[loginEmail].Value()
		password := u.loginInputs[loginPassword].Value()
		return u, func() tea.Msg {
			// Outcome arrives through the slots and a navigate message.
			_ = u.mgr.Login(context.Background(), email, password)
			return nil
		}
	}
	var cmd tea.Cmd
	u.loginInputs[u.focus], cmd = u.loginInputs[u.focus].Update(msg)
	return u, cmd
}

func (u *UI) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return u, u.enterPage(model.PageLanding)
	case tea.KeyTab, tea.KeyDown:
		u.cycleFocus(u.registerInputs, 1)
		return u, nil
	case tea.KeyShiftTab, tea.KeyUp:
		u.cycleFocus(u.registerInputs, -1)
		return u, nil
	case tea.KeyEnter:
		username := u.registerInputs[regUsername].Value()
		email := u.registerInputs[regEmail].Value()
		password := u.registerInputs[regPassword].Value()
		confirm := u.registerInputs[regConfirm].Value()
		return u, func() tea.Msg {
			_ = u.mgr.Register(context.Background(), username, email, password, confirm)
			return nil
		}
	}
	var cmd tea.Cmd
	u.registerInputs[u.focus], cmd = u.registerInputs[u.focus].Update(msg)
	return u, cmd
}

func (u *UI) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if u.uploading {
			// The submit control is disabled while an upload is in flight.
			return u, nil
		}
		path := strings.TrimSpace(u.filePath.Value())
		return u, func() tea.Msg {
			_ = u.orch.SubmitUploadFile(context.Background(), path)
			return nil
		}
	case tea.KeyCtrlR:
		return u, u.loadMeetingsCmd()
	case tea.KeyCtrlL:
		return u, func() tea.Msg {
			_ = u.mgr.Logout()
			return nil
		}
	}
	var cmd tea.Cmd
	u.filePath, cmd = u.filePath.Update(msg)
	return u, cmd
}

func (u *UI) cycleFocus(inputs []textinput.Model, dir int) {
	inputs[u.focus].Blur()
	u.focus = (u.focus + dir + len(inputs)) % len(inputs)
	inputs[u.focus].Focus()
}

func (u *UI) loadMeetingsCmd() tea.Cmd {
	return func() tea.Msg {
		_ = u.orch.LoadMeetings(context.Background())
		return nil
	}
}

func (u *UI) View() string {
	var body string
	switch u.page {
	case model.PageLanding:
		body = u.viewLanding()
	case model.PageLogin:
		body = u.viewForm("Login", u.loginInputs, []string{"Email", "Password"},
			"enter submit · tab next field · esc back")
	case model.PageRegister:
		body = u.viewForm("Register", u.registerInputs, []string{"Username", "Email", "Password", "Confirm"},
			"enter submit · tab next field · esc back")
	case model.PageDashboard:
		body = u.viewDashboard()
	}
	return appTitleStyle.Render("Meeting Intelligence") + "\n\n" + body + "\n"
}

func (u *UI) viewLanding() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Turn your meetings into insight."))
	b.WriteString("\n\n")
	b.WriteString("Upload a recording, let the platform transcribe and analyze it,\n")
	b.WriteString("and browse the results from your dashboard.\n\n")
	b.WriteString(helpStyle.Render("l login · r register · q quit"))
	return panelStyle.Render(b.String())
}

func (u *UI) viewForm(title string, inputs []textinput.Model, labels []string, help string) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n\n")
	for i, in := range inputs {
		b.WriteString(fieldLabelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if line := render.Status(u.authError); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	if line := render.Status(u.authSuccess); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))
	return panelStyle.Render(b.String())
}

func (u *UI) viewDashboard() string {
	var b strings.Builder
	if greeting := u.mgr.Greeting(); greeting != "" {
		b.WriteString(greetingStyle.Render(greeting))
		b.WriteString("\n\n")
	}

	b.WriteString(headingStyle.Render("Upload Meeting Recording"))
	b.WriteString("\n")
	b.WriteString(u.filePath.View())
	b.WriteString("\n")
	if u.uploading {
		b.WriteString(dimStyle.Render("[ uploading... ]"))
	} else {
		b.WriteString(dimStyle.Render("[ enter to upload ]"))
	}
	if line := render.Status(u.uploadStatus); line != "" {
		b.WriteString("\n" + line)
	}
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Your Meetings"))
	b.WriteString("\n")
	switch u.list {
	case listLoading:
		b.WriteString(render.Loading())
	case listFailed:
		b.WriteString(render.ListError(u.listErr))
	case listReady:
		b.WriteString(render.Meetings(u.meetings))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter upload · ctrl+r reload meetings · ctrl+l logout · ctrl+c quit"))

	return panelStyle.Width(min(u.width-2, 90)).Render(b.String())
}
