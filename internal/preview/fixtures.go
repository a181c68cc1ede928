package preview

import (
	"encoding/json"
	"os"
	"time"

	"github.com/colloquy-dev/colloquy/internal/errors"
	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/identity"
)

// LoadPages reads a pages fixture file. The file holds a JSON array of
// pages; each page's comments are a flat list threaded here by parent id.
func LoadPages(path string) ([]*content.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Newf(errors.CategoryContent, "read pages file %s: %v", path, err)
	}

	var pages []*content.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, errors.Newf(errors.CategoryContent, "parse pages file %s: %v", path, err)
	}

	for _, p := range pages {
		p.Comments = content.Thread(p.Comments)
	}
	return pages, nil
}

// LoadUsers reads a users fixture file: a JSON array of user profiles,
// keyed by ID for session resolution.
func LoadUsers(path string) (identity.StaticUsers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Newf(errors.CategoryContent, "read users file %s: %v", path, err)
	}

	var list []*identity.User
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Newf(errors.CategoryContent, "parse users file %s: %v", path, err)
	}

	users := make(identity.StaticUsers, len(list))
	for _, u := range list {
		users[u.ID] = u
	}
	return users, nil
}

// SamplePages returns the built-in demo pages used when no pages fixture
// exists yet.
func SamplePages() []*content.Page {
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []*content.Page{
		{
			ID:        1,
			Slug:      "hello-world",
			Title:     "Hello World",
			Permalink: "/pages/hello-world",
			Body:      "The first post on this demo site.",
			Comments: content.Thread([]*content.Comment{
				{
					ID:        1,
					Author:    content.Author{Name: "Ana", Email: "ana@example.com"},
					Content:   "<p>First!</p>",
					CreatedAt: base,
				},
				{
					ID:        2,
					ParentID:  1,
					Author:    content.Author{Name: "Bo", Email: "bo@example.com", URL: "https://bo.example.com"},
					Content:   "<p>Welcome aboard.</p>",
					CreatedAt: base.Add(10 * time.Minute),
				},
				{
					ID:        3,
					Type:      content.TypePingback,
					Author:    content.Author{Name: "Another Blog", URL: "https://other.example.com/reply"},
					Content:   "<p>[...] as mentioned in Hello World [...]</p>",
					CreatedAt: base.Add(2 * time.Hour),
				},
			}),
		},
		{
			ID:        2,
			Slug:      "quiet-page",
			Title:     "A Quiet Page",
			Permalink: "/pages/quiet-page",
			Body:      "Nobody has commented here yet.",
		},
	}
}

// SampleUsers returns the built-in demo accounts.
func SampleUsers() identity.StaticUsers {
	return identity.StaticUsers{
		"u1": &identity.User{ID: "u1", DisplayName: "Ana Admin", Email: "ana@example.com"},
		"u2": &identity.User{ID: "u2", DisplayName: "Bo Reader", Email: "bo@example.com"},
	}
}
