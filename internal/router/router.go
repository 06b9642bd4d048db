// Package router sets up all HTTP routes and middleware chains for
// Crab CMS. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crabcms/internal/handlers"
	"crabcms/internal/middleware"
	"crabcms/internal/session"
	"crabcms/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. secureCookies should be true behind TLS.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets for the admin interface.
	if static, err := fs.Sub(web.StaticFS, "static"); err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	// Admin routes — require authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))

		// Login is rate-limited but open; the gate is a placeholder, the
		// limiter still keeps bots from hammering session creation.
		loginLimiter := middleware.NewRateLimiter(10, time.Minute)
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// Authenticated admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/", admin.Dashboard)

			// Posts and pages share storage and the editor; the pages
			// routes only filter the listing.
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.PostsList)
				r.Get("/new", admin.PostNew)
				r.Post("/", admin.PostCreate)
				r.Get("/{id}", admin.PostEdit)
				r.Post("/{id}", admin.PostUpdate)
				r.Post("/{id}/delete", admin.PostDelete)
			})
			r.Route("/pages", func(r chi.Router) {
				r.Get("/", admin.PagesList)
				r.Get("/new", admin.PageNew)
			})

			// Settings and theme
			r.Get("/settings", admin.SettingsPage)
			r.Post("/settings", admin.SettingsSave)
			r.Get("/theme", admin.ThemePage)
			r.Post("/theme", admin.ThemeSave)

			// Content snapshot download
			r.Get("/export", admin.ExportSnapshot)
		})
	})

	// Public routes.
	r.Get("/", public.Homepage)
	r.Get("/blog", public.Blog)
	r.Get("/blog/{slug}", public.Post)
	r.Get("/{slug}", public.Page)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
