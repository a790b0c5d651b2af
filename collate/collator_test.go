package collate

import (
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uca/internal/ucatest"
	"github.com/npillmayer/uca/ucadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newCollator(t *testing.T, opts Options) *Collator {
	coll, err := New(ucadata.MustDefault(), opts)
	require.NoError(t, err)
	return coll
}

func TestCompareScenarios(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	// want: shifted, non-ignorable, blanked, shifted@primary, shifted@secondary
	cases := []struct {
		a, b string
		want [5]int
	}{
		{"a", "A", [5]int{-1, -1, -1, 0, 0}},
		{"a", "b", [5]int{-1, -1, -1, -1, -1}},
		{"ab", "a-b", [5]int{1, 1, 0, 0, 0}},
		{"ab", "a b", [5]int{1, 1, 0, 0, 0}},
		{"deluge", "del-uge", [5]int{1, 1, 0, 0, 0}},
		{"role", "rôle", [5]int{-1, -1, -1, 0, -1}},
		{"rôle", "Role", [5]int{1, 1, 1, 0, 1}},
		{"a", "à", [5]int{-1, -1, -1, 0, -1}},
		{"ll", "l·", [5]int{1, 1, 1, 1, 1}},
		{"l·", "lm", [5]int{-1, -1, -1, -1, -1}},
		{"æ", "af", [5]int{-1, -1, -1, -1, -1}},
		{"ae", "æ", [5]int{-1, -1, -1, 0, -1}},
		{"1", "a", [5]int{-1, -1, -1, -1, -1}},
		{"a1", "a2", [5]int{-1, -1, -1, -1, -1}},
		{"", "a", [5]int{-1, -1, -1, -1, -1}},
		{"a\u0000", "a", [5]int{0, 0, 0, 0, 0}},
		{"x", "一", [5]int{-1, -1, -1, -1, -1}},
		{"一", "丁", [5]int{-1, -1, -1, -1, -1}},
		{"一", "㐀", [5]int{-1, -1, -1, -1, -1}},
		{"一", "\U00020000", [5]int{-1, -1, -1, -1, -1}},
		{"㐀", "\U00050000", [5]int{-1, -1, -1, -1, -1}},
		{"\U0002A6DD", "\u0378", [5]int{-1, -1, -1, -1, -1}},
		{"Ⅳ", "a", [5]int{1, 1, 1, 1, 1}},
		{"$", "¢", [5]int{1, 1, 1, 1, 1}},
		{"~", "©", [5]int{1, 1, 0, 0, 0}},
		{"L·", "ḷ", [5]int{1, 1, 1, 0, 1}},
		{"°", "®", [5]int{-1, -1, 0, 0, 0}},
		{"⼀", "一", [5]int{1, 1, 1, 0, 0}},
		{"\uFFFD", "\U00050000", [5]int{1, 1, 1, 1, 1}},
	}
	colls := []*Collator{
		newCollator(t, Options{}),
		newCollator(t, Options{Variable: NonIgnorable}),
		newCollator(t, Options{Variable: Blanked}),
		newCollator(t, Options{Strength: Primary}),
		newCollator(t, Options{Strength: Secondary}),
	}
	for _, c := range cases {
		for i, coll := range colls {
			r, err := coll.Compare(c.a, c.b)
			require.NoError(t, err)
			assert.Equal(t, c.want[i], r, "compare(%q, %q) with %s", c.a, c.b, coll.Options())
			r, err = coll.Compare(c.b, c.a)
			require.NoError(t, err)
			assert.Equal(t, -c.want[i], r, "compare(%q, %q) with %s", c.b, c.a, coll.Options())
		}
	}
}

func TestCompareLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	coll := newCollator(t, Options{})
	cases := []struct {
		a, b  string
		r     int
		level Level
	}{
		{"a", "b", -1, Primary},
		{"role", "rôle", -1, Secondary},
		{"a", "A", -1, Tertiary},
		{"ab", "a-b", 1, Quaternary},
		{"é", "é", 0, DefaultLevel},
	}
	for _, c := range cases {
		r, lvl, err := coll.CompareLevel(c.a, c.b)
		require.NoError(t, err)
		assert.Equal(t, c.r, r, "%q vs %q", c.a, c.b)
		assert.Equal(t, c.level, lvl, "%q vs %q", c.a, c.b)
	}
}

func TestSortKeyHex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	cases := []struct {
		text string
		opts Options
		want string
	}{
		{"a", Options{}, "1FA200000020000000020000FFFF"},
		{"A", Options{}, "1FA200000020000000080000FFFF"},
		{"a b", Options{}, "1FA21FBC0000002000200000000200020000FFFF0209FFFF"},
		{"a b", Options{Variable: NonIgnorable}, "1FA202091FBC00000020002000200000000200020002"},
		{"a b", Options{Variable: Blanked}, "1FA21FBC000000200020000000020002"},
		{"-", Options{}, "000000000000020D"},
		{"", Options{}, "000000000000"},
		{"一", Options{}, "FB40CE0000000020000000020000FFFFFFFF"},
		{"\U00050000", Options{}, "FBCA800000000020000000020000FFFFFFFF"},
		{"l·", Options{}, "20D60000002001180000000200020000FFFFFFFF"},
		{"\u2F00", Options{}, "FB40CE0000000020000000040000FFFFFFFF"},
		{"\uFFFD", Options{}, "FFFD00000020000000020000FFFF"},
	}
	for _, c := range cases {
		got, err := newCollator(t, c.opts).SortKeyHex(c.text)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "key for %q with %s", c.text, c.opts)
	}
}

func TestCanonicalEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	coll := newCollator(t, Options{})
	groups := [][]string{
		{"\u00E9", "e\u0301"},
		{"\u0439", "\u0438\u0306"},
		{"\u1E69", "s\u0323\u0307", "s\u0307\u0323", "\u1E63\u0307"},
		{"\u00C5", "A\u030A", "\u212B"},
		{"\uAC00", "\u1100\u1161"},
	}
	for _, g := range groups {
		k0, err := coll.SortKey(g[0])
		require.NoError(t, err)
		for _, s := range g[1:] {
			r, err := coll.Compare(g[0], s)
			require.NoError(t, err)
			assert.Equal(t, 0, r, "%q and %q are canonically equivalent", g[0], s)
			k, err := coll.SortKey(s)
			require.NoError(t, err)
			assert.Equal(t, k0, k)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	coll := newCollator(t, Options{})
	_, err := coll.Compare("a", "b\xc3")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = coll.SortKey("\xed\xbf\xbf")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = coll.CompareRunes([]rune{'a'}, []rune{0xD800})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = coll.CompareUTF16([]uint16{0xDC01}, []uint16{'a'})
	var inerr *InputError
	require.True(t, errors.As(err, &inerr))
	assert.Equal(t, 0, inerr.Pos)
}

func TestCompareEncodings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	coll := newCollator(t, Options{})
	pairs := [][2]string{{"a", "b"}, {"\U00020000", "一"}, {"rôle", "role"}, {"l·", "l·"}}
	for _, p := range pairs {
		want, err := coll.Compare(p[0], p[1])
		require.NoError(t, err)
		r, err := coll.CompareRunes([]rune(p[0]), []rune(p[1]))
		require.NoError(t, err)
		assert.Equal(t, want, r)
		r, err = coll.CompareUTF16(utf16.Encode([]rune(p[0])), utf16.Encode([]rune(p[1])))
		require.NoError(t, err)
		assert.Equal(t, want, r)
	}
}

type countingNormalizer struct {
	calls int
}

func (n *countingNormalizer) NFD(cps []rune) []rune {
	n.calls++
	return NFD.NFD(cps)
}

func TestWithNormalizer(t *testing.T) {
	coll := newCollator(t, Options{})
	n := &countingNormalizer{}
	custom := coll.WithNormalizer(n)
	r, err := custom.Compare("é", "é")
	require.NoError(t, err)
	assert.Equal(t, 0, r)
	assert.Equal(t, 2, n.calls)
	assert.Equal(t, coll.Options(), custom.Options())
	assert.Same(t, coll.Table(), custom.Table())
}

// --- Ordering files --------------------------------------------------------

func loadOrdering(t *testing.T, name string) []ucatest.Line {
	lines, err := ucatest.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	return lines
}

func TestOrderingFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	files := []struct {
		name string
		opts Options
	}{
		{"collation_test_shifted.txt", Options{Variable: Shifted}},
		{"collation_test_shifted.txt", Options{Variable: Shifted, Discontiguous: true}},
		{"collation_test_non_ignorable.txt", Options{Variable: NonIgnorable}},
		{"collation_test_non_ignorable.txt", Options{Variable: NonIgnorable, Discontiguous: true}},
	}
	for _, f := range files {
		name, opts := f.name, f.opts
		coll := newCollator(t, opts)
		lines := loadOrdering(t, name)
		prevKey, err := coll.SortKeyRunes(lines[0].Runes)
		require.NoError(t, err)
		for i := 1; i < len(lines); i++ {
			prev, cur := lines[i-1], lines[i]
			r, err := coll.CompareRunes(prev.Runes, cur.Runes)
			require.NoError(t, err)
			if !assert.LessOrEqual(t, r, 0, "%s line %d: [%s] > [%s]", name, cur.No, prev, cur) {
				continue
			}
			key, err := coll.SortKeyRunes(cur.Runes)
			require.NoError(t, err)
			assert.LessOrEqual(t, CompareKeys(prevKey, key), 0, "%s line %d: keys out of order", name, cur.No)
			prevKey = key
		}
	}
}

// TestComparatorAgreesWithKeys checks the early-exit comparator against full
// sort keys, and the order properties of both, on a random sample.
func TestComparatorAgreesWithKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	lines := loadOrdering(t, "collation_test_shifted.txt")
	rnd := rand.New(rand.NewSource(42))
	sample := make([][]rune, 300)
	for i := range sample {
		sample[i] = lines[rnd.Intn(len(lines))].Runes
	}
	for _, opts := range []Options{{}, {Variable: NonIgnorable}, {Variable: Blanked}, {Strength: Secondary}} {
		coll := newCollator(t, opts)
		keys := make([]SortKey, len(sample))
		for i, s := range sample {
			k, err := coll.SortKeyRunes(s)
			require.NoError(t, err)
			keys[i] = k
			separators := 0
			for _, w := range k {
				if w == 0 {
					separators++
				}
			}
			require.Equal(t, int(opts.Levels())-1, separators, "weight 0 only as level separator")
		}
		for i := 0; i+2 < len(sample); i++ {
			a, b, c := sample[i], sample[i+1], sample[i+2]
			ab, _ := coll.CompareRunes(a, b)
			ba, _ := coll.CompareRunes(b, a)
			aa, _ := coll.CompareRunes(a, a)
			assert.Equal(t, CompareKeys(keys[i], keys[i+1]), ab, "%U vs %U with %s", a, b, opts)
			assert.Equal(t, -ab, ba, "antisymmetry")
			assert.Equal(t, 0, aa, "reflexivity")
			bc, _ := coll.CompareRunes(b, c)
			if ab <= 0 && bc <= 0 {
				ac, _ := coll.CompareRunes(a, c)
				assert.LessOrEqual(t, ac, 0, "transitivity %U %U %U", a, b, c)
			}
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	coll := newCollator(t, Options{})
	lines := loadOrdering(t, "collation_test_shifted.txt")
	want := make([]string, len(lines))
	for i, l := range lines {
		k, err := coll.SortKeyRunes(l.Runes)
		require.NoError(t, err)
		want[i] = k.Hex()
	}
	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i, l := range lines {
				k, err := coll.SortKeyRunes(l.Runes)
				if err != nil {
					return err
				}
				if k.Hex() != want[i] {
					return errors.New("key differs for line " + l.String())
				}
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}

func TestElementsString(t *testing.T) {
	coll := newCollator(t, Options{})
	ces, err := coll.Elements("a b")
	require.NoError(t, err)
	parts := make([]string, len(ces))
	for i, ce := range ces {
		parts[i] = ce.String()
	}
	assert.Equal(t, "[.1FA2.0020.0002][*0209.0020.0002][.1FBC.0020.0002]", strings.Join(parts, ""))
}
