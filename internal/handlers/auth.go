// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"crabcms/internal/middleware"
	"crabcms/internal/render"
	"crabcms/internal/session"
)

// Auth groups the admin login handlers. There are no accounts or
// passwords: the login form is a placeholder gate that opens a session so
// the rest of the admin chrome behaves like a real multi-user CMS.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store) *Auth {
	return &Auth{renderer: renderer, sessions: sessions}
}

// LoginPage renders the login form. Already-authenticated visitors are
// sent straight to the dashboard.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign in",
	})
}

// LoginSubmit accepts any display name and creates a session.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("display_name"))
	if name == "" {
		name = "Admin"
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{DisplayName: name}); err != nil {
		slog.Error("session create failed", "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title:   "Sign in",
			Flashes: []render.Flash{{Type: "error", Message: "Could not start a session. Is Valkey running?"}},
		})
		return
	}

	slog.Info("admin signed in", "name", name)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout destroys the session and returns to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
