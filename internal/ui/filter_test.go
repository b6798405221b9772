package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name     string
	category string
}

func category(i item) string { return i.category }

var catalog = []item{
	{"bot", "AI/Automation"},
	{"hotel", "Web Development"},
	{"tickets", "Web Development"},
	{"hrms", "Enterprise"},
	{"agents", "AI/Automation"},
	{"stocks", "Research"},
}

func TestFilter_AllReturnsEverything(t *testing.T) {
	got := Filter(catalog, All, category)
	assert.Equal(t, catalog, got)

	got[0].name = "changed"
	assert.Equal(t, "bot", catalog[0].name, "result is a copy")
}

func TestFilter_ExactCategoryMatch(t *testing.T) {
	for _, c := range Categories(catalog, category)[1:] {
		got := Filter(catalog, c, category)
		assert.LessOrEqual(t, len(got), len(catalog))
		for _, it := range got {
			assert.Equal(t, c, it.category)
		}
		want := 0
		for _, it := range catalog {
			if it.category == c {
				want++
			}
		}
		assert.Len(t, got, want, c)
	}
}

func TestFilter_UnknownOrCaseMismatchIsEmpty(t *testing.T) {
	assert.Empty(t, Filter(catalog, "Journal", category))
	assert.Empty(t, Filter(catalog, "research", category))
	assert.Empty(t, Filter(catalog, "all", category))
	assert.NotNil(t, Filter(catalog, "Journal", category))
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	assert.Equal(t,
		[]string{All, "AI/Automation", "Web Development", "Enterprise", "Research"},
		Categories(catalog, category))
}

func TestFilterList_SelectAndCycle(t *testing.T) {
	l := NewFilterList(catalog, category, All, "Journal", "Research")
	assert.Equal(t, All, l.Active())
	assert.Len(t, l.Visible(), len(catalog))

	l.Select("Research")
	require.Len(t, l.Visible(), 1)
	assert.Equal(t, "stocks", l.Visible()[0].name)

	assert.Equal(t, All, l.Cycle(1))
	assert.Equal(t, "Research", l.Cycle(-1))
	assert.Equal(t, "Journal", l.Cycle(-1))
	assert.Empty(t, l.Visible())

	l.Select("nonsense")
	assert.Equal(t, "Journal", l.Cycle(1), "an unknown filter cycles as if from All")
}
