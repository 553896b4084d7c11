package song

import (
	"slices"
	"strings"
	"unicode"

	"github.com/geocine/koliadnyk/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByTitle orders songs by title in Ukrainian collation order, ignoring
// punctuation. Songs with equal keys keep their relative order.
func SortByTitle(songs []*models.Song) {
	c := newCollator()
	keys := make(map[*models.Song]string, len(songs))
	for _, s := range songs {
		keys[s] = sortKey(s.Title)
	}
	slices.SortStableFunc(songs, func(a, b *models.Song) int {
		return c.CompareString(keys[a], keys[b])
	})
}

// CompareTitles compares two titles the way SortByTitle does.
func CompareTitles(a, b string) int {
	return newCollator().CompareString(sortKey(a), sortKey(b))
}

// A Collator keeps scratch buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Ukrainian)
}

func sortKey(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, title)
}
