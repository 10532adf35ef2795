package model

// Page identifies one of the client's views. Navigation between pages is
// what the session manager schedules after login/register and forces on
// guard failures.
type Page string

const (
	PageLanding   Page = "landing"
	PageLogin     Page = "login"
	PageRegister  Page = "register"
	PageDashboard Page = "dashboard"
)

// Protected reports whether a page must not render without a session. This
// is advisory client-side gating only; the server remains the real boundary.
func (p Page) Protected() bool {
	return p == PageDashboard
}
