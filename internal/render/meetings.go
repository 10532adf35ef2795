// Package render turns projections into styled terminal output. It is the
// display glue around the workflow: all fallback handling already happened
// in the model projection, so rendering is purely presentational.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meetingmind/meetingmind/internal/model"
	"github.com/meetingmind/meetingmind/internal/notify"
)

// Placeholders the list can show instead of meeting items.
const (
	LoadingPlaceholder = "Loading meetings..."
	EmptyPlaceholder   = "No meetings found."
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	itemStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238")).
			PaddingLeft(1).
			MarginBottom(1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("242")).
				Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// Meetings renders the full list, or the explicit empty placeholder when
// there is nothing to show.
func Meetings(items []model.MeetingView) string {
	if len(items) == 0 {
		return placeholderStyle.Render(EmptyPlaceholder)
	}
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, meetingBlock(item))
	}
	return strings.Join(blocks, "\n")
}

func meetingBlock(item model.MeetingView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(item.Title))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Status: ") + item.Status)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Created: ") + item.Created)
	if item.Duration != nil {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Duration: ") + fmt.Sprintf("%g seconds", *item.Duration))
	}
	if item.Sentiment != nil {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Sentiment: ") + *item.Sentiment)
	}
	return itemStyle.Render(b.String())
}

// Loading renders the in-flight placeholder.
func Loading() string {
	return placeholderStyle.Render(LoadingPlaceholder)
}

// ListError renders an inline error in place of the list.
func ListError(message string) string {
	return errorStyle.Render(message)
}

// Status renders a transient notification, or "" for an empty slot.
func Status(msg *notify.Message) string {
	if msg == nil {
		return ""
	}
	if msg.Severity == notify.Error {
		return errorStyle.Render(msg.Text)
	}
	return infoStyle.Render(msg.Text)
}
