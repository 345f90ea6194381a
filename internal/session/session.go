// Package session associates requests with authenticated users via a signed
// cookie, and carries one-shot flash messages between redirects.
package session

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/kmalov/cashlogger/internal/auth"
	"github.com/kmalov/cashlogger/internal/models"
)

const (
	sessionCookie = "session"
	flashCookie   = "flash"
)

// Manager issues and validates session cookies. The cookie value is a signed
// token (see auth.JWTManager), so no server-side session state is kept.
type Manager struct {
	tokens *auth.JWTManager
	ttl    time.Duration
}

// NewManager creates a session manager that signs cookies with the given
// token manager. ttl bounds the cookie lifetime to the token lifetime.
func NewManager(tokens *auth.JWTManager, ttl time.Duration) *Manager {
	return &Manager{tokens: tokens, ttl: ttl}
}

// Establish logs the user in: it signs a session token and sets the cookie.
func (m *Manager) Establish(w http.ResponseWriter, user *models.User) error {
	token, err := m.tokens.Generate(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear logs the user out by expiring the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID resolves the request to an authenticated user id.
// Returns false for missing, expired, or tampered cookies.
func (m *Manager) UserID(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return 0, false
	}
	claims, err := m.tokens.Validate(cookie.Value)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

// Flash queues a one-shot message for the next rendered page.
// The value is base64-encoded so arbitrary text survives the cookie charset.
func (m *Manager) Flash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlash returns the queued flash message, if any, and clears it.
func (m *Manager) TakeFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
