// Copyright (c) 2026 Crab CMS Authors <hello@crabcms.dev>
// All rights reserved. See LICENSE for details.

package models

// ThemeColors is the site color palette. Each value is a CSS color string
// and is exposed to templates as a CSS custom property.
type ThemeColors struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
}

// ThemeFonts is the font pair applied to headings and body text.
type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ThemeConfig is the singleton theme record driving the public site's CSS
// variables. It has no effect on stored content.
type ThemeConfig struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Colors ThemeColors `json:"colors"`
	Fonts  ThemeFonts  `json:"fonts"`
}
