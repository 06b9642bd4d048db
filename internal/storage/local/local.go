// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

// Package local implements the storage adapter on top of Valkey
// (Redis-compatible) key-value entries. The whole content list, the site
// settings, and the theme each live in a single JSON blob under a fixed
// key, plus one string entry holding the seed-version marker. Every write
// replaces a full blob — there is no partial update.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"crabcms/internal/models"
	"crabcms/internal/storage"
)

const (
	postsKey    = "crab:cms:posts"
	settingsKey = "crab:cms:settings"
	themeKey    = "crab:cms:theme"
	initKey     = "crab:cms:init"
)

// Artificial per-operation delays emulating network-backed storage.
// Enabled only when the adapter is constructed with simulateLatency.
const (
	connectDelay = 300 * time.Millisecond
	readDelay    = 200 * time.Millisecond
	writeDelay   = 400 * time.Millisecond
	deleteDelay  = 300 * time.Millisecond
)

// Adapter is the Valkey-backed storage adapter.
type Adapter struct {
	client          *redis.Client
	simulateLatency bool
}

// New creates a local adapter on the given Valkey client. When
// simulateLatency is true every operation sleeps for a fixed,
// operation-class-dependent duration before completing.
func New(client *redis.Client, simulateLatency bool) *Adapter {
	return &Adapter{client: client, simulateLatency: simulateLatency}
}

// Connect ensures the backend holds current seed data. Idempotent.
func (a *Adapter) Connect(ctx context.Context) error {
	a.delay(connectDelay)
	return a.ensureSeed(ctx)
}

// GetPosts returns the full content list, posts and pages alike.
func (a *Adapter) GetPosts(ctx context.Context) ([]models.Post, error) {
	a.delay(readDelay)
	if err := a.ensureSeed(ctx); err != nil {
		return nil, err
	}
	return a.readPosts(ctx)
}

// GetPost returns the item with the given identifier, or nil.
func (a *Adapter) GetPost(ctx context.Context, id string) (*models.Post, error) {
	posts, err := a.GetPosts(ctx)
	if err != nil {
		return nil, err
	}
	return storage.FindPost(posts, id), nil
}

// GetPostBySlug returns the first item with the given slug, or nil.
func (a *Adapter) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	posts, err := a.GetPosts(ctx)
	if err != nil {
		return nil, err
	}
	return storage.FindPostBySlug(posts, slug), nil
}

// SavePost upserts an item by identifier and returns the persisted record.
func (a *Adapter) SavePost(ctx context.Context, post models.Post) (*models.Post, error) {
	a.delay(writeDelay)
	if err := a.ensureSeed(ctx); err != nil {
		return nil, err
	}

	posts, err := a.readPosts(ctx)
	if err != nil {
		return nil, err
	}

	posts, saved := storage.UpsertPost(posts, post, time.Now())
	if err := a.writeJSON(ctx, postsKey, posts); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeletePost removes the item if present; absent identifiers are a no-op.
func (a *Adapter) DeletePost(ctx context.Context, id string) error {
	a.delay(deleteDelay)
	if err := a.ensureSeed(ctx); err != nil {
		return err
	}

	posts, err := a.readPosts(ctx)
	if err != nil {
		return err
	}

	return a.writeJSON(ctx, postsKey, storage.RemovePost(posts, id))
}

// GetSettings returns the site settings record.
func (a *Adapter) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	a.delay(readDelay)
	if err := a.ensureSeed(ctx); err != nil {
		return nil, err
	}

	var settings models.SiteSettings
	if err := a.readJSON(ctx, settingsKey, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings replaces the site settings record wholesale.
func (a *Adapter) SaveSettings(ctx context.Context, settings models.SiteSettings) (*models.SiteSettings, error) {
	a.delay(writeDelay)
	if err := a.ensureSeed(ctx); err != nil {
		return nil, err
	}
	if err := a.writeJSON(ctx, settingsKey, settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetTheme returns the theme configuration.
func (a *Adapter) GetTheme(ctx context.Context) (*models.ThemeConfig, error) {
	a.delay(readDelay)
	if err := a.ensureSeed(ctx); err != nil {
		return nil, err
	}

	var theme models.ThemeConfig
	if err := a.readJSON(ctx, themeKey, &theme); err != nil {
		return nil, err
	}
	return &theme, nil
}

// SaveTheme replaces the theme configuration wholesale.
func (a *Adapter) SaveTheme(ctx context.Context, theme models.ThemeConfig) (*models.ThemeConfig, error) {
	a.delay(writeDelay)
	if err := a.ensureSeed(ctx); err != nil {
		return nil, err
	}
	if err := a.writeJSON(ctx, themeKey, theme); err != nil {
		return nil, err
	}
	return &theme, nil
}

// ensureSeed checks the seed-version marker and, on mismatch, discards all
// blobs and writes the fixed seed data. A matching marker is a no-op, so
// calling this on every entry method keeps initialization lazy and cheap.
func (a *Adapter) ensureSeed(ctx context.Context) error {
	marker, err := a.client.Get(ctx, initKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("%w: read seed marker: %v", storage.ErrBackend, err)
	}
	if marker == storage.SeedVersion {
		return nil
	}

	// Stale or uninitialized: full reset, no merge with existing data.
	posts, err := json.Marshal(storage.SeedPosts())
	if err != nil {
		return fmt.Errorf("%w: encode seed posts: %v", storage.ErrBackend, err)
	}
	settings, err := json.Marshal(storage.DefaultSettings())
	if err != nil {
		return fmt.Errorf("%w: encode seed settings: %v", storage.ErrBackend, err)
	}
	theme, err := json.Marshal(storage.DefaultTheme())
	if err != nil {
		return fmt.Errorf("%w: encode seed theme: %v", storage.ErrBackend, err)
	}

	pipe := a.client.TxPipeline()
	pipe.Set(ctx, postsKey, posts, 0)
	pipe.Set(ctx, settingsKey, settings, 0)
	pipe.Set(ctx, themeKey, theme, 0)
	pipe.Set(ctx, initKey, storage.SeedVersion, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: write seed data: %v", storage.ErrBackend, err)
	}

	slog.Info("local adapter seeded", "version", storage.SeedVersion, "previous", marker)
	return nil
}

// readPosts decodes the full content list blob. The Post decoder back-fills
// the type field for items written before posts and pages were split.
func (a *Adapter) readPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := a.readJSON(ctx, postsKey, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (a *Adapter) readJSON(ctx context.Context, key string, v any) error {
	payload, err := a.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return fmt.Errorf("%w: key %s missing after seed", storage.ErrBackend, key)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", storage.ErrBackend, key, err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", storage.ErrBackend, key, err)
	}
	return nil
}

func (a *Adapter) writeJSON(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", storage.ErrBackend, key, err)
	}
	if err := a.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("%w: write %s: %v", storage.ErrBackend, key, err)
	}
	return nil
}

func (a *Adapter) delay(d time.Duration) {
	if a.simulateLatency {
		time.Sleep(d)
	}
}
