// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

// Package memory implements the storage adapter entirely in memory. It
// backs the handler and router tests, and doubles as the reference for
// substituting any backend behind the contract.
package memory

import (
	"context"
	"sync"
	"time"

	"crabcms/internal/models"
	"crabcms/internal/storage"
)

// Adapter holds all state behind a mutex. The zero value is unusable; use New.
type Adapter struct {
	mu       sync.Mutex
	seeded   bool
	posts    []models.Post
	settings models.SiteSettings
	theme    models.ThemeConfig
}

// New creates an empty, unseeded in-memory adapter.
func New() *Adapter {
	return &Adapter{}
}

// Connect seeds the adapter on first call; later calls are no-ops.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	return nil
}

// GetPosts returns a copy of the full content list.
func (a *Adapter) GetPosts(ctx context.Context) ([]models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	return append([]models.Post(nil), a.posts...), nil
}

// GetPost returns the item with the given identifier, or nil.
func (a *Adapter) GetPost(ctx context.Context, id string) (*models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	return storage.FindPost(a.posts, id), nil
}

// GetPostBySlug returns the first item with the given slug, or nil.
func (a *Adapter) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	return storage.FindPostBySlug(a.posts, slug), nil
}

// SavePost upserts an item and returns the persisted record.
func (a *Adapter) SavePost(ctx context.Context, post models.Post) (*models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()

	posts, saved := storage.UpsertPost(a.posts, post, time.Now())
	a.posts = posts
	return &saved, nil
}

// DeletePost removes the item if present; absent identifiers are a no-op.
func (a *Adapter) DeletePost(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	a.posts = storage.RemovePost(a.posts, id)
	return nil
}

// GetSettings returns the site settings record.
func (a *Adapter) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	settings := a.settings
	return &settings, nil
}

// SaveSettings replaces the site settings record wholesale.
func (a *Adapter) SaveSettings(ctx context.Context, settings models.SiteSettings) (*models.SiteSettings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	a.settings = settings
	return &settings, nil
}

// GetTheme returns the theme configuration.
func (a *Adapter) GetTheme(ctx context.Context) (*models.ThemeConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	theme := a.theme
	return &theme, nil
}

// SaveTheme replaces the theme configuration wholesale.
func (a *Adapter) SaveTheme(ctx context.Context, theme models.ThemeConfig) (*models.ThemeConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureSeedLocked()
	a.theme = theme
	return &theme, nil
}

func (a *Adapter) ensureSeedLocked() {
	if a.seeded {
		return
	}
	a.posts = storage.SeedPosts()
	a.settings = storage.DefaultSettings()
	a.theme = storage.DefaultTheme()
	a.seeded = true
}
