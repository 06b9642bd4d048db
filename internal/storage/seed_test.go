package storage

import (
	"testing"

	"crabcms/internal/models"
)

// TestSeedPostsWellFormed verifies the fixed seed set: unique identifiers
// and slugs, valid types and statuses, and createdAt never after updatedAt.
func TestSeedPostsWellFormed(t *testing.T) {
	posts := SeedPosts()
	if len(posts) == 0 {
		t.Fatal("seed list is empty")
	}

	ids := make(map[string]bool)
	slugs := make(map[string]bool)
	for _, p := range posts {
		if p.ID == "" {
			t.Errorf("seed item %q has no identifier", p.Title)
		}
		if ids[p.ID] {
			t.Errorf("duplicate seed identifier %q", p.ID)
		}
		ids[p.ID] = true

		if slugs[p.Slug] {
			t.Errorf("duplicate seed slug %q", p.Slug)
		}
		slugs[p.Slug] = true

		if p.Type != models.ContentTypePost && p.Type != models.ContentTypePage {
			t.Errorf("seed item %q has invalid type %q", p.ID, p.Type)
		}
		if p.Status != models.StatusDraft && p.Status != models.StatusPublished {
			t.Errorf("seed item %q has invalid status %q", p.ID, p.Status)
		}
		if p.CreatedAt.After(p.UpdatedAt) {
			t.Errorf("seed item %q created after updated", p.ID)
		}
		if p.Tags == nil {
			t.Errorf("seed item %q has nil tags", p.ID)
		}
	}
}

// TestDefaultSettingsHomepageSeeded verifies the default homepage reference
// resolves to an item in the seed list.
func TestDefaultSettingsHomepageSeeded(t *testing.T) {
	settings := DefaultSettings()
	if settings.Title == "" {
		t.Error("default settings have no title")
	}
	if settings.HomepageID == "" {
		t.Fatal("default settings have no homepage")
	}

	home := FindPost(SeedPosts(), settings.HomepageID)
	if home == nil {
		t.Fatalf("homepage id %q not in seed list", settings.HomepageID)
	}
	if home.Type != models.ContentTypePage {
		t.Errorf("seed homepage type = %q, want page", home.Type)
	}
	if !home.IsPublished() {
		t.Error("seed homepage is not published")
	}
}

// TestDefaultThemeComplete verifies the default theme carries a full
// palette and font pair — templates rely on every variable being set.
func TestDefaultThemeComplete(t *testing.T) {
	theme := DefaultTheme()

	if theme.ID == "" || theme.Name == "" {
		t.Error("default theme missing identity")
	}
	colors := []struct{ name, value string }{
		{"background", theme.Colors.Background},
		{"text", theme.Colors.Text},
		{"primary", theme.Colors.Primary},
		{"secondary", theme.Colors.Secondary},
	}
	for _, c := range colors {
		if c.value == "" {
			t.Errorf("default theme color %s is empty", c.name)
		}
	}
	if theme.Fonts.Heading == "" || theme.Fonts.Body == "" {
		t.Error("default theme font pair incomplete")
	}
}
