package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollectionRejectsDuplicateIDs(t *testing.T) {
	group := Group{Name: "колядки"}
	songs := []*Song{
		{ID: "shchedryk", Title: "Щедрик", Source: "колядки/shchedryk.md"},
		{ID: "shchedryk", Title: "Щедрик", Source: "колядки/shchedryk.markdown"},
	}

	_, err := NewCollection(group, songs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateIdentity))
	assert.Contains(t, err.Error(), "shchedryk.markdown")
}

func TestCheckUniqueAcrossGroups(t *testing.T) {
	a, err := NewCollection(Group{Name: "колядки"}, []*Song{{ID: "vechir", Title: "Добрий вечір тобі"}})
	require.NoError(t, err)
	b, err := NewCollection(Group{Name: "віншування"}, []*Song{{ID: "vechir", Title: "Добрий вечір"}})
	require.NoError(t, err)

	assert.True(t, errors.Is(CheckUnique(a, b), ErrDuplicateIdentity))
}

func TestTitles(t *testing.T) {
	c, err := NewCollection(Group{}, []*Song{{ID: "a", Title: "Добрий вечір тобі"}, {ID: "b", Title: "Нова радість стала"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Добрий вечір тобі", "Нова радість стала"}, c.Titles())
}
