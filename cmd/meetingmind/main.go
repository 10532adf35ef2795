// Package main is the meetingmind client binary: one-shot commands for the
// session and upload workflows, plus the interactive dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/meetingmind/meetingmind/internal/authclient"
	"github.com/meetingmind/meetingmind/internal/authflow"
	"github.com/meetingmind/meetingmind/internal/config"
	"github.com/meetingmind/meetingmind/internal/meetingclient"
	"github.com/meetingmind/meetingmind/internal/model"
	"github.com/meetingmind/meetingmind/internal/notify"
	"github.com/meetingmind/meetingmind/internal/render"
	"github.com/meetingmind/meetingmind/internal/schedule"
	"github.com/meetingmind/meetingmind/internal/session"
	"github.com/meetingmind/meetingmind/internal/tui"
	"github.com/meetingmind/meetingmind/internal/workflow"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.InitLogger()
	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "meetingmind: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meetingmind",
		Short: "Client for the meeting intelligence platform",
		Long: `meetingmind manages your session against the authentication service and drives
the upload-then-refresh workflow against the meeting processing service. Run
"meetingmind dashboard" for the interactive view, or use the one-shot commands.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newUploadCmd(),
		newMeetingsCmd(),
		newDashboardCmd(),
	)
	return cmd
}

// deps bundles everything a one-shot command needs.
type deps struct {
	cfg   *config.Config
	store *session.Store
}

func newDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := session.NewStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &deps{cfg: cfg, store: store}, nil
}

// printingSlot builds a notification slot that writes messages straight to
// the terminal: errors to stderr, everything else to stdout.
func printingSlot() *notify.Slot {
	slot := notify.NewSlot(schedule.After)
	slot.OnChange(func(m *notify.Message) {
		if m == nil {
			return
		}
		if m.Severity == notify.Error {
			fmt.Fprintln(os.Stderr, render.Status(m))
			return
		}
		fmt.Println(render.Status(m))
	})
	return slot
}

// consoleList prints list states as they happen, the way the page swapped
// the list container's contents.
type consoleList struct{}

func (consoleList) ShowLoading() { fmt.Println(render.Loading()) }

func (consoleList) ShowError(message string) {
	fmt.Fprintln(os.Stderr, render.ListError(message))
}

func (consoleList) ShowMeetings(items []model.MeetingView) {
	fmt.Println(render.Meetings(items))
}

func (d *deps) newManager() *authflow.Manager {
	api := authclient.New(d.cfg.AuthBaseURL, d.cfg.HTTPTimeout)
	// One-shot commands have no pages to navigate; scheduled redirects are
	// fire-and-forget and simply never land.
	return authflow.New(api, d.store, printingSlot(), printingSlot(), nil, nil)
}

func (d *deps) newOrchestrator(sched schedule.Func) *workflow.Orchestrator {
	api := meetingclient.New(d.cfg.APIBaseURL, d.cfg.HTTPTimeout)
	return workflow.New(api, printingSlot(), consoleList{}, sched)
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			return d.newManager().Login(cmd.Context(), email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var username, email, password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (does not log you in)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			return d.newManager().Register(cmd.Context(), username, email, password, confirm)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Desired username")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "Repeat the password (optional check)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session (safe to repeat)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			if err := d.newManager().Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			mgr := d.newManager()
			sess := mgr.CurrentSession()
			if sess == nil {
				fmt.Println("Not logged in.")
				return nil
			}
			if greeting := mgr.Greeting(); greeting != "" {
				fmt.Println(greeting)
			}
			if sess.User != nil && sess.User.Email != "" {
				fmt.Printf("Email: %s\n", sess.User.Email)
			}
			return nil
		},
	}
}

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a recording and show the refreshed meeting list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			// Blocking scheduler: the post-upload refresh still honors its
			// delay but completes before the process exits.
			orch := d.newOrchestrator(schedule.Blocking)
			return orch.SubmitUploadFile(cmd.Context(), args[0])
		},
	}
}

func newMeetingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meetings",
		Short: "Fetch and display the meeting list",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			return d.newOrchestrator(nil).LoadMeetings(cmd.Context())
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			return tui.Run(d.cfg, d.store)
		},
	}
}
