// Package model contains simple struct definitions shared across packages.
package model

import "time"

// Meeting mirrors one record of the meetings API response. Every field the
// server may omit is a pointer so absence survives decoding and can be
// defaulted in one place instead of at each render site.
type Meeting struct {
	ID               int      `json:"id,omitempty"`
	Title            *string  `json:"title"`
	Status           *string  `json:"status"`
	CreatedAt        *string  `json:"created_at"`
	Duration         *float64 `json:"duration"`
	SentimentOverall *string  `json:"sentiment_overall"`
}

// MeetingList is the envelope returned by GET /meetings.
type MeetingList struct {
	Meetings []Meeting `json:"meetings"`
}

// MeetingView is the display projection of a Meeting with all optional
// fields resolved: required text falls back to placeholders, optional lines
// stay nil so renderers can skip them entirely.
type MeetingView struct {
	Title     string
	Status    string
	Created   string
	Duration  *float64
	Sentiment *string
}

const (
	fallbackTitle  = "Untitled Meeting"
	fallbackStatus = "Unknown"
	fallbackDate   = "Unknown"
)

// createdAtLayouts covers both timezone-qualified timestamps and the bare
// ISO form the meetings backend emits for UTC datetimes.
var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// View resolves a Meeting into its display projection.
func (m Meeting) View() MeetingView {
	v := MeetingView{
		Title:   fallbackTitle,
		Status:  fallbackStatus,
		Created: fallbackDate,
	}
	if m.Title != nil && *m.Title != "" {
		v.Title = *m.Title
	}
	if m.Status != nil && *m.Status != "" {
		v.Status = *m.Status
	}
	if m.CreatedAt != nil && *m.CreatedAt != "" {
		v.Created = formatCreated(*m.CreatedAt)
	}
	// A zero duration is treated the same as an absent one; the page never
	// showed a "0 seconds" line.
	if m.Duration != nil && *m.Duration != 0 {
		d := *m.Duration
		v.Duration = &d
	}
	if m.SentimentOverall != nil && *m.SentimentOverall != "" {
		s := *m.SentimentOverall
		v.Sentiment = &s
	}
	return v
}

// Views projects a whole collection.
func Views(meetings []Meeting) []MeetingView {
	out := make([]MeetingView, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, m.View())
	}
	return out
}

// formatCreated renders the date portion of a timestamp, discarding the
// time of day. Unparseable values pass through verbatim so bad server data
// is visible rather than silently replaced.
func formatCreated(raw string) string {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("1/2/2006")
		}
	}
	return raw
}
