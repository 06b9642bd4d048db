// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for Crab CMS.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crabcms/internal/cache"
	"crabcms/internal/markdown"
	"crabcms/internal/models"
	"crabcms/internal/render"
	"crabcms/internal/storage"
)

// Public groups handlers for the public-facing site. It checks the Valkey
// page cache before touching the storage adapter, and stores rendered
// results on miss. Drafts are never served here.
type Public struct {
	db        storage.Adapter
	renderer  *render.Renderer
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil when
// caching is disabled.
func NewPublic(db storage.Adapter, renderer *render.Renderer, pageCache *cache.PageCache) *Public {
	return &Public{db: db, renderer: renderer, pageCache: pageCache}
}

// Homepage renders the site root. When the settings name a homepage and it
// resolves to a published page, that page is served; otherwise the blog
// index takes its place.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.HomepageKey()); ok {
		writeHTML(w, cached)
		return
	}

	settings, theme, err := p.siteChrome(ctx)
	if err != nil {
		slog.Error("load site chrome failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if settings.HomepageID != "" {
		home, err := p.db.GetPost(ctx, settings.HomepageID)
		if err != nil {
			slog.Error("load homepage failed", "error", err, "id", settings.HomepageID)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if home != nil && home.IsPublished() {
			p.renderContent(w, ctx, cache.HomepageKey(), home, settings, theme)
			return
		}
		slog.Warn("configured homepage unavailable, serving blog index", "id", settings.HomepageID)
	}

	p.renderBlogIndex(w, ctx, cache.HomepageKey(), settings, theme)
}

// Blog renders the blog index: all published posts, newest first.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.BlogIndexKey()); ok {
		writeHTML(w, cached)
		return
	}

	settings, theme, err := p.siteChrome(ctx)
	if err != nil {
		slog.Error("load site chrome failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderBlogIndex(w, ctx, cache.BlogIndexKey(), settings, theme)
}

// Post renders a single published blog post by slug.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	p.serveBySlug(w, r, models.ContentTypePost)
}

// Page renders a standalone published page by slug.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	p.serveBySlug(w, r, models.ContentTypePage)
}

// serveBySlug looks up a published record of the wanted type and renders it.
func (p *Public) serveBySlug(w http.ResponseWriter, r *http.Request, want models.ContentType) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	key := cache.PageKey(slugParam)
	if want == models.ContentTypePost {
		key = cache.PostKey(slugParam)
	}

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		writeHTML(w, cached)
		return
	}

	post, err := p.db.GetPostBySlug(ctx, slugParam)
	if err != nil {
		slog.Error("find by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil || !post.IsPublished() || post.Type != want {
		http.NotFound(w, r)
		return
	}

	settings, theme, err := p.siteChrome(ctx)
	if err != nil {
		slog.Error("load site chrome failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderContent(w, ctx, key, post, settings, theme)
}

// renderBlogIndex renders the published-posts listing and caches it.
func (p *Public) renderBlogIndex(w http.ResponseWriter, ctx context.Context, key string, settings *models.SiteSettings, theme *models.ThemeConfig) {
	posts, err := p.db.GetPosts(ctx)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var published []models.Post
	for _, post := range posts {
		if post.IsPublished() && post.Type == models.ContentTypePost {
			published = append(published, post)
		}
	}

	rendered, err := p.renderer.Public("blog", &render.SiteData{
		Title:    "Blog",
		Settings: settings,
		Theme:    theme,
		Data:     map[string]any{"Posts": published},
	})
	if err != nil {
		slog.Error("render blog index failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, rendered)
	writeHTML(w, rendered)
}

// renderContent converts a record's markdown body to HTML, renders the
// right public template for its type, and caches the result.
func (p *Public) renderContent(w http.ResponseWriter, ctx context.Context, key string, post *models.Post, settings *models.SiteSettings, theme *models.ThemeConfig) {
	body, err := markdown.ToHTML(post.Body)
	if err != nil {
		slog.Error("markdown render failed", "error", err, "slug", post.Slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	tmplName := "page"
	if post.Type == models.ContentTypePost {
		tmplName = "post"
	}

	rendered, err := p.renderer.Public(tmplName, &render.SiteData{
		Title:    post.Title,
		Settings: settings,
		Theme:    theme,
		Data: map[string]any{
			"Post": post,
			// Markdown output is goldmark-sanitized; raw HTML in the
			// source is escaped before it gets here.
			"Body": template.HTML(body),
		},
	})
	if err != nil {
		slog.Error("render content failed", "error", err, "slug", post.Slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, rendered)
	writeHTML(w, rendered)
}

// siteChrome loads the settings and theme every public page needs.
func (p *Public) siteChrome(ctx context.Context) (*models.SiteSettings, *models.ThemeConfig, error) {
	settings, err := p.db.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	theme, err := p.db.GetTheme(ctx)
	if err != nil {
		return nil, nil, err
	}
	return settings, theme, nil
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
