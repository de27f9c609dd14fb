package server

import (
	"net/http"
	"strings"
)

const modeCookie = "curator_mode"

// Mode is the resolved request mode: which backend this request reads and
// writes. Resolved once per request from the mode cookie and passed down.
type Mode struct {
	Demo    bool
	Backend Backend
}

// mode picks demo or live for one request. Live requires a configured
// database; without one every request is demo regardless of the cookie.
func (s *Server) mode(r *http.Request) Mode {
	if s.live == nil {
		return Mode{Demo: true, Backend: s.demo}
	}
	if c, err := r.Cookie(modeCookie); err == nil && c.Value == "demo" {
		return Mode{Demo: true, Backend: s.demo}
	}
	return Mode{Demo: false, Backend: *s.live}
}

// handleModeToggle sets the mode cookie and returns to the dashboard.
func (s *Server) handleModeToggle(w http.ResponseWriter, r *http.Request) {
	mode := r.FormValue("mode")
	if mode != "demo" {
		mode = "live"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     modeCookie,
		Value:    mode,
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

const sessionCookie = "curator_session"

// requireSession gates live-mode pages behind a login when identity is
// available. Demo mode, the login page itself, and signed downloads stay
// open; a studio without a user database runs unauthenticated.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.users == nil || s.cfg.SessionSecret == "" {
			next.ServeHTTP(w, r)
			return
		}
		if s.mode(r).Demo || exemptPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if _, err := s.sessions.Verify(c.Value); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func exemptPath(path string) bool {
	return path == "/login" || path == "/mode" || strings.HasPrefix(path, "/dl")
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, "")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.users == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	user, err := s.users.Authenticate(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		s.renderLogin(w, "Invalid email or password.")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.sessions.Issue(user.ID),
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
