package domain

import "time"

// Session is one admin's logged-in state. A zero Session is LOGGED_OUT.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoggedIn reports whether s is an active session at now.
func (s Session) LoggedIn(now time.Time) bool {
	if s.ID == "" || s.Username == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}
