package table

import (
	"testing"

	"github.com/hupe1980/catsim/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(cats []model.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Label
	}
	return out
}

func TestCanonicalLabel(t *testing.T) {
	assert.Equal(t, "Physics", CanonicalLabel("Category:Physics"))
	assert.Equal(t, "Physics", CanonicalLabel("  Physics "))
	assert.Equal(t, "Subcategory:X", CanonicalLabel("Subcategory:X"))
}

func TestExplodeGroup(t *testing.T) {
	rows := []ItemRow{
		{ID: "a", Categories: "['A', 'B']"},
		{ID: "b", Categories: []string{"Category:B"}},
		{ID: "c", Categories: nil},
		{ID: "d", Categories: []any{"A"}},
	}
	ms, err := Explode(rows)
	require.NoError(t, err)
	assert.Equal(t, []Membership{
		{Item: 0, Label: "A"},
		{Item: 0, Label: "B"},
		{Item: 1, Label: "B"},
		{Item: 3, Label: "A"},
	}, ms)

	cats := Group(ms)
	require.Equal(t, []string{"A", "B"}, labels(cats))
	assert.Equal(t, []model.ItemIndex{0, 3}, cats[0].Members.Slice())
	assert.Equal(t, []model.ItemIndex{0, 1}, cats[1].Members.Slice())
}

func TestExplodeMalformed(t *testing.T) {
	_, err := Explode([]ItemRow{{Categories: "['A']"}, {Categories: "['A'"}})
	var me *MalformedInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 1, me.Row)
	assert.Equal(t, "categories", me.Column)
	assert.ErrorIs(t, err, ErrLiteral)
}

func TestItemRowRaw(t *testing.T) {
	assert.Equal(t, "['Foo (disambiguation)']", ItemRow{Categories: "['Foo (disambiguation)']"}.Raw())
	assert.Contains(t, ItemRow{Categories: []string{"All disambiguation pages"}}.Raw(), "isambig")
	assert.Empty(t, ItemRow{}.Raw())
}

func TestLinksRegroup(t *testing.T) {
	rows := []CategoryRow{
		{Label: "Category:A", Members: "[0, 1]", Parents: "['P', 'Q']"},
		{Label: "B", Members: []any{float64(2)}, Parents: []string{"Category:P"}},
		{Label: "C", Members: nil, Parents: "['R']"},
		{Label: "D", Members: "[3]", Parents: nil},
	}
	links, err := Links(rows, "index")
	require.NoError(t, err)
	require.Len(t, links, 4)
	assert.Equal(t, "A", links[0].Child)
	assert.Equal(t, []string{"P", "Q"}, links[0].Parents)
	assert.Equal(t, []string{"P"}, links[1].Parents)
	assert.Nil(t, links[2].Members)

	cats := Regroup(links, "")
	require.Equal(t, []string{"P", "Q"}, labels(cats))
	assert.Equal(t, []model.ItemIndex{0, 1, 2}, cats[0].Members.Slice())
	assert.Equal(t, []model.ItemIndex{0, 1}, cats[1].Members.Slice())

	prefixed := Regroup(links, DefaultLabelPrefix)
	assert.Equal(t, []string{"Category:P", "Category:Q"}, labels(prefixed))
}

func TestLinksMalformed(t *testing.T) {
	_, err := Links([]CategoryRow{
		{Label: "A", Members: "[0]", Parents: "['P']"},
		{Label: "B", Members: "['x']", Parents: "['P']"},
	}, "index")
	var me *MalformedInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 1, me.Row)
	assert.Equal(t, "index", me.Column)
	assert.ErrorIs(t, err, model.ErrNotAnIDList)

	_, err = Links([]CategoryRow{{Label: "A", Members: "[0]", Parents: "['P'"}}, "index")
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "parents", me.Column)
}

func TestCategoryRecords(t *testing.T) {
	cats := []model.Category{{Label: "Category:P", Members: model.NewItemSet(2, 0)}}
	recs := CategoryRecords(cats, "infra1", "index")
	require.Len(t, recs, 1)
	assert.Equal(t, "Category:P", recs[0]["infra1"])
	assert.Equal(t, "[0, 2]", recs[0]["index"])
}
