package song

import (
	"testing"

	"github.com/geocine/koliadnyk/internal/models"
	"github.com/stretchr/testify/assert"
)

func ids(songs []*models.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.ID
	}
	return out
}

func TestSortByTitle(t *testing.T) {
	songs := []*models.Song{
		{ID: "nova-radist", Title: "Нова радість стала"},
		{ID: "dobryi-vechir", Title: "Добрий вечір тобі"},
	}
	SortByTitle(songs)
	assert.Equal(t, []string{"dobryi-vechir", "nova-radist"}, ids(songs))
}

func TestSortByTitleUsesUkrainianCollation(t *testing.T) {
	// Byte order would put І before А.
	songs := []*models.Song{
		{ID: "ishly", Title: "Ішли три царі"},
		{ID: "anhely", Title: "Ангели співають"},
		{ID: "yak", Title: "Як ще не було"},
	}
	SortByTitle(songs)
	assert.Equal(t, []string{"anhely", "ishly", "yak"}, ids(songs))
}

func TestSortByTitleIsStableAndIgnoresPunctuation(t *testing.T) {
	songs := []*models.Song{
		{ID: "a", Title: "Щедрик!"},
		{ID: "b", Title: "Щедрик"},
		{ID: "c", Title: "«Ангел»"},
		{ID: "d", Title: "Щедрик..."},
	}
	SortByTitle(songs)
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(songs))
}

func TestCompareTitles(t *testing.T) {
	assert.Zero(t, CompareTitles("Щедрик", "Щедрик!"))
	assert.Negative(t, CompareTitles("Добрий вечір тобі", "Нова радість стала"))
	assert.Positive(t, CompareTitles("Нова радість стала", "Добрий вечір тобі"))
}
