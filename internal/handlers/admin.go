// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"crabcms/internal/cache"
	"crabcms/internal/models"
	"crabcms/internal/render"
	"crabcms/internal/storage"
	"crabcms/internal/storage/remote"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	db          storage.Adapter
	renderer    *render.Renderer
	pageCache   *cache.PageCache
	adapterName string
}

// NewAdmin creates a new Admin handler group. adapterName is shown on the
// dashboard so editors know where their content lives.
func NewAdmin(db storage.Adapter, renderer *render.Renderer, pageCache *cache.PageCache, adapterName string) *Admin {
	return &Admin{
		db:          db,
		renderer:    renderer,
		pageCache:   pageCache,
		adapterName: adapterName,
	}
}

// Dashboard renders the admin dashboard with content stats and the most
// recently updated records.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	posts, err := a.db.GetPosts(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
	}

	var published, drafts, pages int
	for _, p := range posts {
		switch {
		case p.Type == models.ContentTypePage:
			pages++
		case p.IsPublished():
			published++
		default:
			drafts++
		}
	}

	recent := make([]models.Post, len(posts))
	copy(recent, posts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"PublishedPosts": published,
			"DraftPosts":     drafts,
			"Pages":          pages,
			"Adapter":        a.adapterName,
			"Recent":         recent,
		},
	})
}

// --- Posts and pages CRUD ---

// PostsList renders the posts management page.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	a.listByType(w, r, models.ContentTypePost)
}

// PagesList renders the pages management page.
func (a *Admin) PagesList(w http.ResponseWriter, r *http.Request) {
	a.listByType(w, r, models.ContentTypePage)
}

func (a *Admin) listByType(w http.ResponseWriter, r *http.Request, kind models.ContentType) {
	posts, err := a.db.GetPosts(r.Context())
	if err != nil {
		slog.Error("list content failed", "error", err)
	}

	var items []models.Post
	for _, p := range posts {
		if p.Type == kind {
			items = append(items, p)
		}
	}

	section, heading := "posts", "Posts"
	if kind == models.ContentTypePage {
		section, heading = "pages", "Pages"
	}

	a.renderer.Page(w, r, "posts", &render.PageData{
		Title:   heading,
		Section: section,
		Data: map[string]any{
			"Heading": heading,
			"Kind":    string(kind),
			"NewPath": "/admin/" + section + "/new",
			"Posts":   items,
		},
	})
}

// PostNew renders the editor for a new post.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.newForm(w, r, models.ContentTypePost)
}

// PageNew renders the editor for a new page.
func (a *Admin) PageNew(w http.ResponseWriter, r *http.Request) {
	a.newForm(w, r, models.ContentTypePage)
}

func (a *Admin) newForm(w http.ResponseWriter, r *http.Request, kind models.ContentType) {
	section := "posts"
	if kind == models.ContentTypePage {
		section = "pages"
	}

	a.renderer.Page(w, r, "post_edit", &render.PageData{
		Title:   "New " + string(kind),
		Section: section,
		Data: map[string]any{
			"Heading":  "New " + string(kind),
			"Action":   "/admin/posts",
			"BackPath": "/admin/" + section,
			"Post":     &models.Post{Type: kind, Tags: []string{}},
		},
	})
}

// PostEdit renders the editor for an existing record.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := a.db.GetPost(r.Context(), id)
	if err != nil {
		slog.Error("load post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	a.renderEditor(w, r, post, nil)
}

// PostCreate handles the new-record form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	a.savePost(w, r, "")
}

// PostUpdate handles the edit form submission.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	a.savePost(w, r, chi.URLParam(r, "id"))
}

// savePost funnels create and update through one path: parse the form,
// validate, persist through the adapter, flush the page cache.
func (a *Admin) savePost(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	post := postFromForm(r, id)

	if msg := validatePost(post.Title, post.Slug, post.Body, post.Excerpt); msg != "" {
		a.renderEditor(w, r, &post, []string{msg})
		return
	}

	saved, err := a.db.SavePost(r.Context(), post)
	if err != nil {
		slog.Error("save post failed", "error", err, "id", id)
		a.renderEditor(w, r, &post, []string{"Saving failed. Check the storage backend and try again."})
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	slog.Info("content saved", "id", saved.ID, "slug", saved.Slug, "type", saved.Type)

	http.Redirect(w, r, "/admin/posts/"+saved.ID, http.StatusSeeOther)
}

// PostDelete removes a record and flushes the page cache. Deleting an
// absent identifier is a no-op, matching the adapter contract.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Remember the type so we can return to the right listing.
	section := "posts"
	if post, err := a.db.GetPost(r.Context(), id); err == nil && post != nil && post.Type == models.ContentTypePage {
		section = "pages"
	}

	if err := a.db.DeletePost(r.Context(), id); err != nil {
		slog.Error("delete post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	slog.Info("content deleted", "id", id)

	http.Redirect(w, r, "/admin/"+section, http.StatusSeeOther)
}

// renderEditor shows the editor form, optionally with validation errors.
func (a *Admin) renderEditor(w http.ResponseWriter, r *http.Request, post *models.Post, errs []string) {
	section := "posts"
	if post.Type == models.ContentTypePage {
		section = "pages"
	}

	heading := "Edit " + string(post.Type)
	action := "/admin/posts/" + post.ID
	if post.ID == "" {
		heading = "New " + string(post.Type)
		action = "/admin/posts"
	}

	a.renderer.Page(w, r, "post_edit", &render.PageData{
		Title:   heading,
		Section: section,
		Data: map[string]any{
			"Heading":  heading,
			"Action":   action,
			"BackPath": "/admin/" + section,
			"Post":     post,
			"Errors":   errs,
		},
	})
}

// postFromForm builds a Post from editor form values. Defaults for status,
// type, and slug are applied by the storage layer on save.
func postFromForm(r *http.Request, id string) models.Post {
	post := models.Post{
		ID:       id,
		Title:    strings.TrimSpace(r.FormValue("title")),
		Slug:     strings.TrimSpace(r.FormValue("slug")),
		Excerpt:  strings.TrimSpace(r.FormValue("excerpt")),
		Body:     r.FormValue("content"),
		Status:   models.Status(r.FormValue("status")),
		Type:     models.ContentType(r.FormValue("type")),
		AuthorID: "admin",
		Tags:     splitTags(r.FormValue("tags")),
	}

	if cover := strings.TrimSpace(r.FormValue("cover_image")); cover != "" {
		post.CoverImage = &cover
	}

	return post
}

// splitTags parses a comma-separated tag field, dropping empties.
func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// --- Settings ---

// SettingsPage renders the site settings form.
func (a *Admin) SettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := a.db.GetSettings(r.Context())
	if err != nil {
		slog.Error("load settings failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "settings", &render.PageData{
		Title:   "Settings",
		Section: "settings",
		Data: map[string]any{
			"Settings": settings,
			"Pages":    a.publishedPages(r),
		},
	})
}

// SettingsSave handles the settings form submission, including the
// homepage selection.
func (a *Admin) SettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	settings := models.SiteSettings{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		LogoURL:     strings.TrimSpace(r.FormValue("logo_url")),
		FooterText:  strings.TrimSpace(r.FormValue("footer_text")),
		HomepageID:  r.FormValue("homepage_id"),
	}

	if msg := validateSettings(settings.Title, settings.Description, settings.FooterText); msg != "" {
		a.renderer.Page(w, r, "settings", &render.PageData{
			Title:   "Settings",
			Section: "settings",
			Flashes: []render.Flash{{Type: "error", Message: msg}},
			Data: map[string]any{
				"Settings": &settings,
				"Pages":    a.publishedPages(r),
			},
		})
		return
	}

	if _, err := a.db.SaveSettings(r.Context(), settings); err != nil {
		slog.Error("save settings failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	slog.Info("settings saved", "homepage", settings.HomepageID)

	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

// publishedPages lists published pages for the homepage selector.
func (a *Admin) publishedPages(r *http.Request) []models.Post {
	posts, err := a.db.GetPosts(r.Context())
	if err != nil {
		slog.Error("list pages failed", "error", err)
		return nil
	}

	var pages []models.Post
	for _, p := range posts {
		if p.Type == models.ContentTypePage && p.IsPublished() {
			pages = append(pages, p)
		}
	}
	return pages
}

// --- Theme ---

// ThemePage renders the theme editor.
func (a *Admin) ThemePage(w http.ResponseWriter, r *http.Request) {
	theme, err := a.db.GetTheme(r.Context())
	if err != nil {
		slog.Error("load theme failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "theme", &render.PageData{
		Title:   "Theme",
		Section: "theme",
		Data:    map[string]any{"Theme": theme},
	})
}

// ThemeSave handles the theme form submission.
func (a *Admin) ThemeSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	theme := models.ThemeConfig{
		ID:   "custom",
		Name: strings.TrimSpace(r.FormValue("name")),
		Colors: models.ThemeColors{
			Background: r.FormValue("color_background"),
			Text:       r.FormValue("color_text"),
			Primary:    r.FormValue("color_primary"),
			Secondary:  r.FormValue("color_secondary"),
		},
		Fonts: models.ThemeFonts{
			Heading: strings.TrimSpace(r.FormValue("font_heading")),
			Body:    strings.TrimSpace(r.FormValue("font_body")),
		},
	}
	if theme.Name == "" {
		theme.Name = "Custom"
	}

	msg := validateTheme(
		[]string{theme.Colors.Background, theme.Colors.Text, theme.Colors.Primary, theme.Colors.Secondary},
		[]string{theme.Fonts.Heading, theme.Fonts.Body},
	)
	if msg != "" {
		a.renderer.Page(w, r, "theme", &render.PageData{
			Title:   "Theme",
			Section: "theme",
			Flashes: []render.Flash{{Type: "error", Message: msg}},
			Data:    map[string]any{"Theme": &theme},
		})
		return
	}

	if _, err := a.db.SaveTheme(r.Context(), theme); err != nil {
		slog.Error("save theme failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	slog.Info("theme saved", "name", theme.Name)

	http.Redirect(w, r, "/admin/theme", http.StatusSeeOther)
}

// --- Export ---

// ExportSnapshot serves the full content document as a JSON download.
// Committing the downloaded file next to the deployed site is how content
// authored locally goes live.
func (a *Admin) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := a.db.GetPosts(ctx)
	if err != nil {
		slog.Error("export: list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	settings, err := a.db.GetSettings(ctx)
	if err != nil {
		slog.Error("export: load settings failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	theme, err := a.db.GetTheme(ctx)
	if err != nil {
		slog.Error("export: load theme failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	doc := remote.Document{
		Posts:    posts,
		Settings: *settings,
		Theme:    *theme,
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		slog.Error("export: marshal failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="content.json"`)
	w.Write(payload)

	slog.Info("content snapshot downloaded", "posts", len(posts))
}
