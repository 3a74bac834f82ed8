package main

import (
	"fmt"

	"github.com/bjaus/rest"
)

// note is the sample entity: a blog-style post with an active flag that
// the collection filter keys off.
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
	return "/v1/notes/" + n.ID + "/"
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
