package rest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjaus/rest"
)

// note is the entity used throughout the tests: a blog-style post with an
// is_active flag that collection filters key off.
type note struct {
	ID       string
	Title    string
	Slug     string
	Content  string
	IsActive bool
}

func newNote() rest.Representation { return &note{} }

func (n *note) ToDict() rest.Dict {
	return rest.Dict{
		"id":        n.ID,
		"title":     n.Title,
		"slug":      n.Slug,
		"content":   n.Content,
		"is_active": n.IsActive,
	}
}

func (n *note) ResourceURI() string {
	return "/notes/" + n.ID + "/"
}

func (n *note) PopulateFromDict(d rest.Dict) error {
	title, _ := d["title"].(string)
	if title == "" {
		return fmt.Errorf("title is required")
	}

	n.ID, _ = d["id"].(string)
	n.Title = title
	n.Slug, _ = d["slug"].(string)
	n.Content, _ = d["content"].(string)
	n.IsActive, _ = d["is_active"].(bool)
	return nil
}

// activeOnly is the governing filter used by most tests: retired notes stay
// stored but invisible.
func activeOnly(d rest.Dict) bool {
	active, _ := d["is_active"].(bool)
	return active
}

// noteFixtures is six notes, two of them inactive.
func noteFixtures() []rest.Dict {
	return []rest.Dict{
		{"id": "1", "title": "First Post!", "slug": "first-post", "content": "This is my very first post.", "is_active": true},
		{"id": "2", "title": "Another Post", "slug": "another-post", "content": "The dog ate my cat today.", "is_active": true},
		{"id": "3", "title": "Recent Volcanic Activity.", "slug": "recent-volcanic-activity", "content": "My neighborhood's been kinda weird lately.", "is_active": true},
		{"id": "4", "title": "Granny's Gone", "slug": "grannys-gone", "content": "The second eruption came on fast.", "is_active": true},
		{"id": "5", "title": "Draft", "slug": "draft", "content": "Unpublished.", "is_active": false},
		{"id": "6", "title": "Old Draft", "slug": "old-draft", "content": "Also unpublished.", "is_active": false},
	}
}

// newNoteCollection seeds a filtered in-memory collection: four visible
// notes, two hidden.
func newNoteCollection(t testing.TB) *rest.MemoryCollection {
	t.Helper()

	mc := rest.NewMemoryCollection(newNote, rest.WithFilter(activeOnly))
	mc.Load(noteFixtures()...)
	return mc
}

// newNoteResource builds the stock resource most tests dispatch against.
func newNoteResource(t testing.TB, opts ...rest.ResourceOption) *rest.Resource {
	t.Helper()

	base := []rest.ResourceOption{
		rest.WithName("notes"),
		rest.WithRepresentation(newNote),
		rest.WithCollection(newNoteCollection(t)),
	}
	rs, err := rest.NewResource(append(base, opts...)...)
	require.NoError(t, err)
	return rs
}
