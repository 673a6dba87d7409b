package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hupe1980/catsim/codec"
	"github.com/hupe1980/catsim/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const level0CSV = "\ufefftitle,index,category\n" +
	"Alpha,0,\"['A', 'B']\"\n" +
	"Beta,1,\"['B']\"\n" +
	"Gamma,2\n"

func TestFormatOf(t *testing.T) {
	for name, want := range map[string]Format{
		"a/b.csv":  FormatCSV,
		"x.JSON":   FormatJSON,
		"x.jsonl":  FormatJSONL,
		"x.ndjson": FormatJSONL,
	} {
		got, err := FormatOf(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := FormatOf("x.parquet")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeCSV(t *testing.T) {
	recs, err := DecodeCSV(strings.NewReader(level0CSV))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Alpha", recs[0]["title"])
	assert.Equal(t, "['A', 'B']", recs[0]["category"])
	_, ok := recs[2]["category"]
	assert.False(t, ok)

	recs, err = DecodeCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDecodeJSON(t *testing.T) {
	for _, name := range codec.Names {
		c, _ := codec.ByName(name)
		t.Run(name, func(t *testing.T) {
			recs, err := Decode(FormatJSON, []byte(`[{"category":"A","index":[0,1],"infra1":["P"]}]`), c)
			require.NoError(t, err)
			require.Len(t, recs, 1)

			rows, err := CategoryRows(recs, CategoryColumns{Label: "category", Members: "index", Parents: "infra1"})
			require.NoError(t, err)
			links, err := Links(rows, "index")
			require.NoError(t, err)
			assert.Equal(t, []model.ItemIndex{0, 1}, links[0].Members.Slice())
			assert.Equal(t, []string{"P"}, links[0].Parents)
		})
	}

	_, err := Decode(FormatJSON, []byte(`{`), nil)
	assert.Error(t, err)
}

func TestDecodeJSONL(t *testing.T) {
	data := []byte("{\"title\":\"A\"}\n\n{\"title\":\"B\"}\n")
	recs, err := Decode(FormatJSONL, data, nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "B", recs[1]["title"])

	_, err = Decode(FormatJSONL, []byte("{\"a\":1}\nnope\n"), nil)
	assert.ErrorContains(t, err, "line 2")
}

func TestEncodeCSV(t *testing.T) {
	cats := []model.Category{
		{Label: "Category:P", Members: model.NewItemSet(0, 1)},
		{Label: "Category:Q", Members: model.NewItemSet(1)},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, []string{"infra1", "index"}, CategoryRecords(cats, "infra1", "index")))

	recs, err := DecodeCSV(&buf)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Category:P", recs[0]["infra1"])
	set, err := ParseMembers(recs[0]["index"])
	require.NoError(t, err)
	assert.Equal(t, []model.ItemIndex{0, 1}, set.Slice())
}

func TestItemRows(t *testing.T) {
	recs, err := DecodeCSV(strings.NewReader(level0CSV))
	require.NoError(t, err)

	rows, err := ItemRows(recs, ItemColumns{ID: "index", Title: "title", Categories: "category"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "0", rows[0].ID)
	assert.Equal(t, "Alpha", rows[0].Title)
	assert.Nil(t, rows[2].Categories)

	rows, err = ItemRows(recs, ItemColumns{ID: "pageid", Title: "title", Categories: "category"})
	require.NoError(t, err)
	assert.Equal(t, "2", rows[2].ID)

	_, err = ItemRows(recs, ItemColumns{Title: "title", Categories: "cats"})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestCategoryRowsMissingColumn(t *testing.T) {
	_, err := CategoryRows([]Record{{"category": "A"}}, CategoryColumns{Label: "category", Parents: "infra1"})
	assert.ErrorIs(t, err, ErrMissingColumn)
}
