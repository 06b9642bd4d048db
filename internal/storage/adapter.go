// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

// Package storage defines the pluggable persistence contract for Crab CMS.
// Every backend — the Valkey-backed local adapter, the static-document
// remote adapter, the in-memory adapter — satisfies the Adapter interface,
// and the rest of the application never talks to a storage medium directly.
package storage

import (
	"context"
	"errors"

	"crabcms/internal/models"
)

// ErrBackend marks storage medium failures: the backend is unreachable or
// a stored blob fails to decode. Callers match it with errors.Is to offer
// a retry path. "Not found" is never an error — lookups return nil.
var ErrBackend = errors.New("storage backend failure")

// Adapter is the capability set every persistence backend must provide.
// All methods are safe to call before Connect; backends initialize lazily.
type Adapter interface {
	// Connect establishes readiness, performing seed initialization if the
	// backend holds no (or stale) data. Idempotent — safe to call any
	// number of times.
	Connect(ctx context.Context) error

	// GetPosts returns all content items, posts and pages alike, in
	// backend order (newest insertions first). Callers filter by type and
	// status themselves.
	GetPosts(ctx context.Context) ([]models.Post, error)

	// GetPost returns the item with the given identifier, or nil when no
	// such item exists.
	GetPost(ctx context.Context, id string) (*models.Post, error)

	// GetPostBySlug returns the first item with the given slug, or nil.
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)

	// SavePost inserts or updates an item by identifier and returns the
	// record as persisted: on insert the ID is generated, the slug derived
	// from the title when empty, the status defaulted to draft, and both
	// timestamps set; on update UpdatedAt is rewritten.
	SavePost(ctx context.Context, post models.Post) (*models.Post, error)

	// DeletePost removes the item if present. Deleting an absent
	// identifier is a silent no-op.
	DeletePost(ctx context.Context, id string) error

	// GetSettings returns the singleton site settings record.
	GetSettings(ctx context.Context) (*models.SiteSettings, error)

	// SaveSettings replaces the site settings record wholesale.
	SaveSettings(ctx context.Context, settings models.SiteSettings) (*models.SiteSettings, error)

	// GetTheme returns the singleton theme configuration.
	GetTheme(ctx context.Context) (*models.ThemeConfig, error)

	// SaveTheme replaces the theme configuration wholesale.
	SaveTheme(ctx context.Context, theme models.ThemeConfig) (*models.ThemeConfig, error)
}
