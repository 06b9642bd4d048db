// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"
)

// ContentType distinguishes between posts and pages in the unified content list.
type ContentType string

const (
	ContentTypePost ContentType = "post"
	ContentTypePage ContentType = "page"
)

// Status represents the publishing state of a content item.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Post represents a blog post or a static page. Both kinds share the same
// shape and live in the same stored list, differentiated by the Type field.
type Post struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Slug       string      `json:"slug"`
	Excerpt    string      `json:"excerpt"`
	Body       string      `json:"content"` // Markdown source
	CoverImage *string     `json:"coverImage,omitempty"`
	Status     Status      `json:"status"`
	Type       ContentType `json:"type"`
	AuthorID   string      `json:"authorId"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Tags       []string    `json:"tags"`
}

// IsPublished returns true if the content item is in published status.
func (p Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// UnmarshalJSON decodes a stored content item, back-filling the Type field
// for items written before posts and pages were distinguished.
func (p *Post) UnmarshalJSON(data []byte) error {
	type alias Post
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Type == "" {
		a.Type = ContentTypePost
	}
	*p = Post(a)
	return nil
}
