// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

// Package remote implements the storage adapter for static hosting: reads
// come from a single JSON document fetched once from a well-known URL, and
// every mutation rewrites an export file holding the full snapshot. The
// export is the publish step — the operator commits the file back into the
// static content location. Durability therefore depends on that manual
// follow-up, which is the intended two-phase contract, not a bug.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"crabcms/internal/models"
	"crabcms/internal/storage"
)

// Document is the wire shape of the static content file.
type Document struct {
	Posts    []models.Post       `json:"posts"`
	Settings models.SiteSettings `json:"settings"`
	Theme    models.ThemeConfig  `json:"theme"`
}

// Adapter serves reads from an in-memory snapshot of the fetched document
// and exports the whole snapshot on every write.
type Adapter struct {
	url        string
	exportPath string
	client     *http.Client

	mu  sync.Mutex
	doc *Document // nil until loaded
}

// New creates a remote adapter that fetches the content document from url
// and writes exports to exportPath.
func New(url, exportPath string) *Adapter {
	return &Adapter{
		url:        url,
		exportPath: exportPath,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Connect loads the content document. A failed fetch is not fatal — the
// site must stay usable on static hosting with no backing file yet — so
// fetch failures fall back to seed data. Idempotent once loaded.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadLocked(ctx)
}

// GetPosts returns the full content list from the snapshot.
func (a *Adapter) GetPosts(ctx context.Context) ([]models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}
	return append([]models.Post(nil), a.doc.Posts...), nil
}

// GetPost returns the item with the given identifier, or nil.
func (a *Adapter) GetPost(ctx context.Context, id string) (*models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}
	return storage.FindPost(a.doc.Posts, id), nil
}

// GetPostBySlug returns the first item with the given slug, or nil.
func (a *Adapter) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}
	return storage.FindPostBySlug(a.doc.Posts, slug), nil
}

// SavePost upserts into the snapshot, exports it, and returns the
// persisted record.
func (a *Adapter) SavePost(ctx context.Context, post models.Post) (*models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}

	posts, saved := storage.UpsertPost(a.doc.Posts, post, time.Now())
	a.doc.Posts = posts
	if err := a.exportLocked(); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeletePost removes the item from the snapshot and exports. Absent
// identifiers are a silent no-op, but the export still runs.
func (a *Adapter) DeletePost(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return err
	}

	a.doc.Posts = storage.RemovePost(a.doc.Posts, id)
	return a.exportLocked()
}

// GetSettings returns the site settings from the snapshot.
func (a *Adapter) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}
	settings := a.doc.Settings
	return &settings, nil
}

// SaveSettings replaces the settings in the snapshot and exports.
func (a *Adapter) SaveSettings(ctx context.Context, settings models.SiteSettings) (*models.SiteSettings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}

	a.doc.Settings = settings
	if err := a.exportLocked(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetTheme returns the theme configuration from the snapshot.
func (a *Adapter) GetTheme(ctx context.Context) (*models.ThemeConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}
	theme := a.doc.Theme
	return &theme, nil
}

// SaveTheme replaces the theme in the snapshot and exports.
func (a *Adapter) SaveTheme(ctx context.Context, theme models.ThemeConfig) (*models.ThemeConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}

	a.doc.Theme = theme
	if err := a.exportLocked(); err != nil {
		return nil, err
	}
	return &theme, nil
}

// loadLocked populates the snapshot on first use. Callers hold a.mu.
func (a *Adapter) loadLocked(ctx context.Context) error {
	if a.doc != nil {
		return nil
	}

	doc, err := a.fetch(ctx)
	if err != nil {
		slog.Warn("content fetch failed, falling back to seed data",
			"url", a.url,
			"error", err,
		)
		a.doc = seedDocument()
		return nil
	}

	slog.Info("content document loaded", "url", a.url, "posts", len(doc.Posts))
	a.doc = doc
	return nil
}

// fetch retrieves and decodes the static content document.
func (a *Adapter) fetch(ctx context.Context) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch content: unexpected status %d", resp.StatusCode)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return &doc, nil
}

// exportLocked writes the full snapshot to the export path atomically
// (temp file + rename). Unlike the fetch, a failed export is a real
// backend failure and propagates. Callers hold a.mu.
func (a *Adapter) exportLocked() error {
	payload, err := json.MarshalIndent(a.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", storage.ErrBackend, err)
	}

	dir := filepath.Dir(a.exportPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create export dir: %v", storage.ErrBackend, err)
	}

	tmp, err := os.CreateTemp(dir, ".content-*.json")
	if err != nil {
		return fmt.Errorf("%w: create export temp file: %v", storage.ErrBackend, err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write export: %v", storage.ErrBackend, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close export: %v", storage.ErrBackend, err)
	}
	if err := os.Rename(tmp.Name(), a.exportPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: finalize export: %v", storage.ErrBackend, err)
	}

	slog.Info("content snapshot exported — commit the file to publish",
		"path", a.exportPath,
		"posts", len(a.doc.Posts),
	)
	return nil
}

func seedDocument() *Document {
	return &Document{
		Posts:    storage.SeedPosts(),
		Settings: storage.DefaultSettings(),
		Theme:    storage.DefaultTheme(),
	}
}
