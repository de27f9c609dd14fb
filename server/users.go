package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/mdrahmanz/curator/identity"
)

type usersPage struct {
	Title  string
	Demo   bool
	Users  []identity.User
	Notice string
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	m := s.mode(r)
	if m.Demo || s.users == nil {
		s.render(w, "users", usersPage{Title: "Users", Demo: true})
		return
	}
	users, err := s.users.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, "users", usersPage{Title: "Users", Users: users, Notice: r.URL.Query().Get("notice")})
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if s.mode(r).Demo || s.users == nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	_, err := s.users.Create(r.Context(), r.FormValue("email"), r.FormValue("password"), r.FormValue("role"))
	if err != nil {
		http.Redirect(w, r, "/users?notice="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserRole(w http.ResponseWriter, r *http.Request) {
	if s.mode(r).Demo || s.users == nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	if err := s.users.SetRole(r.Context(), r.FormValue("id"), r.FormValue("role")); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserDisable(w http.ResponseWriter, r *http.Request) {
	if s.mode(r).Demo || s.users == nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	disabled, _ := strconv.ParseBool(r.FormValue("disabled"))
	if err := s.users.SetDisabled(r.Context(), r.FormValue("id"), disabled); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserReset(w http.ResponseWriter, r *http.Request) {
	if s.mode(r).Demo || s.users == nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	token, err := s.users.StartPasswordReset(r.Context(), r.FormValue("email"))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	// No mailer; the token is surfaced to the admin who requested it.
	http.Redirect(w, r, "/users?notice="+url.QueryEscape("Reset token: "+token), http.StatusSeeOther)
}
