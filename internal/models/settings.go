// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

package models

// SiteSettings is the singleton site configuration record. It is always
// read and replaced as a whole — there are no per-field updates.
type SiteSettings struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl,omitempty"`
	FooterText  string `json:"footerText"`
	// HomepageID references the content item served at the site root.
	// Empty means "no homepage selected" and the public site falls back
	// to the blog index.
	HomepageID string `json:"homepageId,omitempty"`
}
