package models

import (
	"errors"
	"fmt"
)

// ErrDuplicateIdentity is returned when two songs resolve to the same id.
var ErrDuplicateIdentity = errors.New("duplicate song id")

// Song is a processed song document, ready to be placed in a page.
type Song struct {
	ID     string // Slug derived from the source filename, used as DOM anchor
	Title  string // Plain text of the first heading
	Body   string // Serialized HTML fragment
	Source string // Path the song was read from
}

// Group describes where a set of songs lands in the host template.
type Group struct {
	Name    string // Group name, e.g. "колядки"
	Title   string // Display title for the section
	Section string // DOM id of the section container
	Nav     string // DOM id of the element holding the table of contents list
}

// Collection is an ordered set of songs belonging to one group.
type Collection struct {
	Group Group
	Songs []*Song
}

// NewCollection creates a collection, rejecting duplicate ids.
func NewCollection(group Group, songs []*Song) (*Collection, error) {
	if err := CheckUnique(&Collection{Group: group, Songs: songs}); err != nil {
		return nil, err
	}
	return &Collection{Group: group, Songs: songs}, nil
}

// Titles returns song titles in collection order.
func (c *Collection) Titles() []string {
	titles := make([]string, len(c.Songs))
	for i, s := range c.Songs {
		titles[i] = s.Title
	}
	return titles
}

// CheckUnique verifies song ids are unique across all the given collections.
// They end up in one document, so an id shared between groups collides too.
func CheckUnique(collections ...*Collection) error {
	seen := make(map[string]*Song)
	for _, c := range collections {
		for _, s := range c.Songs {
			if prev, ok := seen[s.ID]; ok {
				return fmt.Errorf("%w: %q from '%s' and '%s'", ErrDuplicateIdentity, s.ID, prev.Source, s.Source)
			}
			seen[s.ID] = s
		}
	}
	return nil
}
