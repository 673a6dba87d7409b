package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	f := Default()
	assert.GreaterOrEqual(t, len(f.Rules()), 30)
	assert.Equal(t, 4, f.Version())

	excluded := []string{
		"Disambiguation pages",
		"Place name disambiguation pages",
		"American football biography stubs",
		"Living people",
		"1990 births",
		"1877 deaths",
		"4th-century BC deaths",
		"Year of birth missing",
		"Harvard University alumni",
		"People educated at Eton College",
		"1905 establishments in Germany",
		"Companies established in 1990",
		"20th-century American novelists",
		"1990s in music",
		"Musicians by nationality",
		"Writers by century",
		"Lists of rivers",
		"All stub articles",
		"CS1 maint: archived copy as title",
		"Use dmy dates from March 2020",
		"Commons category link is on Wikidata",
		"Articles with short description",
		"All articles needing additional references",
		"Redirects from alternative names",
		"Wikipedia maintenance",
		"Disestablishments in 1990",
	}
	for _, label := range excluded {
		t.Run(label, func(t *testing.T) {
			assert.True(t, f.Excludes(label), "expected %q to be excluded", label)
		})
	}

	kept := []string{
		"Rivers of Germany",
		"Jazz musicians",
		"Programming languages",
		"Stubbs family",
		"Living organisms",
		"Particles",
		"Subatomic particles",
		"Particle physics",
		"Pre-established harmony",
		"Wikipedians",
	}
	for _, label := range kept {
		t.Run(label, func(t *testing.T) {
			assert.True(t, f.Keep(label), "expected %q to be kept", label)
		})
	}
}

func TestCaseSensitive(t *testing.T) {
	f := Default()
	assert.True(t, f.Excludes("Living people"))
	assert.False(t, f.Excludes("living people"))
}

func TestNonStringLabels(t *testing.T) {
	f := Default()
	assert.NotPanics(t, func() {
		assert.True(t, f.Keep(nil))
		assert.True(t, f.Keep(42))
		assert.True(t, f.Keep(3.5))
		assert.True(t, f.Keep([]byte("Rivers")))
		assert.True(t, f.Excludes([]string{"1990 births"}))
	})
}

func TestMatch(t *testing.T) {
	f := Default()
	r, ok := f.Match("1990 births")
	require.True(t, ok)
	assert.Equal(t, "births", r.Name)

	_, ok = f.Match("Rivers of Germany")
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	type row struct {
		id    int
		label any
	}
	rows := []row{
		{0, "Rivers of Germany"},
		{1, "Living people"},
		{2, 1990},
		{3, "Jazz stubs"},
	}
	got := Apply(Default(), rows, func(r row) any { return r.label })
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].id)
	assert.Equal(t, 2, got[1].id)
	assert.Len(t, rows, 4)

	assert.Equal(t, []string{"Jazz"}, Default().Strings([]string{"Jazz", "Living people"}))
}

func TestLoad(t *testing.T) {
	f, err := Load([]byte("version: 7\nrules:\n  - name: foo\n    pattern: '^Foo'\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, f.Version())
	assert.True(t, f.Excludes("Foobar"))
	assert.True(t, f.Keep("Bar Foo"))

	_, err = Load([]byte("version: 1\nrules: []\n"))
	assert.ErrorIs(t, err, ErrNoRules)

	_, err = Load([]byte("version: 1\nrules:\n  - name: bad\n    pattern: '('\n"))
	assert.Error(t, err)

	_, err = Load([]byte(":::"))
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "", Label(nil))
	assert.Equal(t, "abc", Label("abc"))
	assert.Equal(t, "12", Label(12))
	assert.Equal(t, "[a b]", Label([]string{"a", "b"}))
}
