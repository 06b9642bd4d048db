package storage

import (
	"time"

	"crabcms/internal/models"
)

// SeedVersion is the current seed-data version marker. When a backend
// finds a different marker (or none) it performs a full reset: existing
// blobs are discarded and the fixed seed set below is written. Bump this
// string to force a reseed on the next start; there is no merge with
// existing data.
const SeedVersion = "crab-seed-v2"

// DefaultSettings returns the initial site settings. The homepage points
// at the seeded "home" page.
func DefaultSettings() models.SiteSettings {
	return models.SiteSettings{
		Title:       "Crab CMS",
		Description: "A robust, frontend-first content management system.",
		FooterText:  "© 2026 Crab CMS. All rights reserved.",
		HomepageID:  "home-page",
	}
}

// DefaultTheme returns the initial dark theme.
func DefaultTheme() models.ThemeConfig {
	return models.ThemeConfig{
		ID:   "default-dark",
		Name: "Crab Dark",
		Colors: models.ThemeColors{
			Background: "#020617",
			Text:       "#f1f5f9",
			Primary:    "#f43f5e",
			Secondary:  "#64748b",
		},
		Fonts: models.ThemeFonts{
			Heading: "Inter",
			Body:    "Inter",
		},
	}
}

// SeedPosts returns the fixed seed content list: a home page, three
// introductory posts, and a contact page. Timestamps are relative to now
// so the blog index looks freshly written.
func SeedPosts() []models.Post {
	now := time.Now()
	cover := func(url string) *string { return &url }

	return []models.Post{
		{
			ID:      "home-page",
			Title:   "Home",
			Slug:    "home",
			Excerpt: "Welcome to our site.",
			Body: `# The Future is Frontend.

> "Speed isn't just a feature. It's the foundation."

Crab CMS reimagines what a Content Management System can be. By moving the
entire logic layer into a single binary with pluggable storage, we eliminate
the complexities of heavyweight stacks while delivering **instant**
interactions.

### Why Developers Choose Crab

- **Zero ceremony**: one process, one key-value namespace.
- **Universal adapters**: swap Valkey, static JSON, or an in-memory store.
- **Theme engine**: live customization with CSS variables.

*Scroll down to explore our engineering philosophy and design stories.*`,
			Status:    models.StatusPublished,
			Type:      models.ContentTypePage,
			AuthorID:  "admin",
			CreatedAt: now,
			UpdatedAt: now,
			Tags:      []string{},
		},
		{
			ID:      "post-inception",
			Title:   "Inception: Why We Built Crab CMS",
			Slug:    "why-we-built-crab-cms",
			Excerpt: "The story behind the fastest frontend-first CMS. We wanted to escape the bloat of traditional monoliths.",
			Body: `# The Fatigue of Complexity

You want to launch a simple blog, a documentation site, or a portfolio. You
start with good intentions — and end with a database cluster, a cache tier,
security plugins, and a CI/CD pipeline complex enough to launch a satellite.

### Enter Crab CMS

We asked a simple question: **what if the content store were just a JSON
document?**

Crab CMS was born from this frustration. We wanted a system that:

1. **Runs instantly**: no cold starts, no migrations.
2. **Is portable**: the entire site state fits in one exportable document.
3. **Is extensible**: if you *do* need a different backend, it's just an
   adapter away.

### The Adapter Philosophy

By default Crab runs in local mode, persisting everything to a handful of
key-value entries. When you're ready to publish statically, you swap the
local adapter for the remote one. The UI doesn't know the difference. The
editing experience remains identical.`,
			Status:     models.StatusPublished,
			Type:       models.ContentTypePost,
			AuthorID:   "admin",
			CreatedAt:  now.Add(-48 * time.Hour),
			UpdatedAt:  now.Add(-48 * time.Hour),
			Tags:       []string{"Philosophy", "Engineering", "Story"},
			CoverImage: cover("https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=format&fit=crop&w=2100&q=80"),
		},
		{
			ID:      "post-architecture",
			Title:   "Under the Hood: The Architecture of Crab",
			Slug:    "architecture-of-crab",
			Excerpt: "A technical deep dive into how Crab CMS manages state, storage, and the Adapter Pattern.",
			Body: `# Architecture Deep Dive

The core of Crab is the storage adapter interface — the contract that
decouples the presentation layer from the data layer.

## Why is this powerful?

Imagine you are building a site for a client who isn't sure where they want
to host their content yet.

1. **Day 1**: you develop against the local adapter. Content lives in a
   key-value store on your machine.
2. **Day 7**: the client chooses static hosting. You flip one environment
   variable to the remote adapter.
3. **Day 8**: every save now exports a single JSON document ready to
   commit. **Done.**

The entire admin dashboard, the editor, the blog views — untouched.

## State Without the Bloat

Every mutation round-trips through the adapter: the smallest unit of
persistence is the whole content list. No partial updates means no partial
failures, and last-write-wins ordering falls out for free in a
single-writer design.`,
			Status:     models.StatusPublished,
			Type:       models.ContentTypePost,
			AuthorID:   "admin",
			CreatedAt:  now.Add(-24 * time.Hour),
			UpdatedAt:  now.Add(-24 * time.Hour),
			Tags:       []string{"Deep Dive", "Architecture"},
			CoverImage: cover("https://images.unsplash.com/photo-1550751827-4bd374c3f58b?auto=format&fit=crop&w=2100&q=80"),
		},
		{
			ID:      "post-theming",
			Title:   "Designing the Theme Engine",
			Slug:    "designing-theme-engine",
			Excerpt: "How we built a real-time theme editor using CSS variables.",
			Body: `# The Power of CSS Variables

One of the nicest features of Crab CMS is changing your site's look without
touching a stylesheet. This isn't just a dark-mode toggle; it is a small
design-system engine.

## The Native Solution

The theme record maps directly to CSS custom properties:

` + "```css" + `
:root {
  --cms-primary: #f43f5e;
  --cms-bg: #020617;
  --cms-font-heading: 'Inter', sans-serif;
}
` + "```" + `

Change a color in the admin theme editor, save, and every public page picks
it up on the next render. Typography works the same way: swap the heading
font from 'Inter' to 'Merriweather' and the whole site shifts from tech
blog to literary journal.

Design is not just about how it looks, but how it works.`,
			Status:     models.StatusPublished,
			Type:       models.ContentTypePost,
			AuthorID:   "admin",
			CreatedAt:  now,
			UpdatedAt:  now,
			Tags:       []string{"Design", "CSS", "UI/UX"},
			CoverImage: cover("https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?auto=format&fit=crop&w=2100&q=80"),
		},
		{
			ID:      "contact-page",
			Title:   "Contact Us",
			Slug:    "contact",
			Excerpt: "",
			Body: `# Contact Us

We'd love to hear from you.

Email: hello@crabcms.dev`,
			Status:    models.StatusPublished,
			Type:      models.ContentTypePage,
			AuthorID:  "admin",
			CreatedAt: now,
			UpdatedAt: now,
			Tags:      []string{},
		},
	}
}
