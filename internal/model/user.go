package model

// User is the profile half of a session. The client only ever displays it,
// so just the fields the pages read are declared.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the client-local belief that a user is authenticated. Presence
// of the token is the only thing that makes it real; User may be nil if the
// profile entry is missing or unreadable.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
