// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

package storage

import (
	"time"

	"github.com/google/uuid"

	"crabcms/internal/models"
	"crabcms/internal/slug"
)

// UpsertPost applies the shared save semantics to a content list and
// returns the new list plus the record as persisted. Every adapter funnels
// SavePost through here so insert defaults and timestamp rewrites behave
// identically across backends.
//
// Insert (no item with post.ID in the list, or empty ID): a UUID
// identifier is generated when missing, the slug is derived from the title
// when missing, the status defaults to draft, CreatedAt and UpdatedAt are
// both set to now, and the item is prepended.
//
// Update (matching ID found): the item is replaced in place with UpdatedAt
// rewritten to now, regardless of any caller-supplied value.
func UpsertPost(posts []models.Post, post models.Post, now time.Time) ([]models.Post, models.Post) {
	if post.Slug == "" {
		post.Slug = slug.Generate(post.Title)
	}
	if post.Status == "" {
		post.Status = models.StatusDraft
	}
	if post.Type == "" {
		post.Type = models.ContentTypePost
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if post.ID != "" {
		for i := range posts {
			if posts[i].ID == post.ID {
				post.CreatedAt = posts[i].CreatedAt
				post.UpdatedAt = now
				posts[i] = post
				return posts, post
			}
		}
	}

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = now
	post.UpdatedAt = now

	// Newest items first, matching the public site's listing order.
	return append([]models.Post{post}, posts...), post
}

// RemovePost deletes the item with the given identifier from the list.
// Removing an absent identifier leaves the list unchanged.
func RemovePost(posts []models.Post, id string) []models.Post {
	filtered := posts[:0]
	for _, p := range posts {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FindPost returns a copy of the item with the given identifier, or nil.
func FindPost(posts []models.Post, id string) *models.Post {
	for i := range posts {
		if posts[i].ID == id {
			p := posts[i]
			return &p
		}
	}
	return nil
}

// FindPostBySlug returns a copy of the first item with the given slug, or nil.
func FindPostBySlug(posts []models.Post, slug string) *models.Post {
	for i := range posts {
		if posts[i].Slug == slug {
			p := posts[i]
			return &p
		}
	}
	return nil
}
