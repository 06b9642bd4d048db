package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for content and settings fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxBodyLen     = 100_000
	maxExcerptLen  = 1_000
	maxSiteTextLen = 1_000
	maxFontLen     = 100
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, slug, body, excerpt string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Content is too long (max 100,000 characters)."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	return ""
}

// validateSettings checks site settings form inputs.
func validateSettings(title, description, footer string) string {
	if strings.TrimSpace(title) == "" {
		return "Site title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Site title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(description) > maxSiteTextLen {
		return "Description is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(footer) > maxSiteTextLen {
		return "Footer text is too long (max 1,000 characters)."
	}
	return ""
}

// validateTheme checks theme form inputs. Colors must be hex values since
// they are emitted into the public stylesheet.
func validateTheme(colors []string, fonts []string) string {
	for _, c := range colors {
		if !isHexColor(c) {
			return "Colors must be hex values like #1a2b3c."
		}
	}
	for _, f := range fonts {
		if strings.TrimSpace(f) == "" {
			return "Font names are required."
		}
		if utf8.RuneCountInString(f) > maxFontLen {
			return "Font names are too long (max 100 characters)."
		}
	}
	return ""
}

// isHexColor reports whether s is a #rgb or #rrggbb color value.
func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
