package collate

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uca/colltab"
	"github.com/npillmayer/uca/ucadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func el(p, s, t uint16) colltab.Elem {
	return colltab.Elem{Primary: p, Secondary: s, Tertiary: t}
}

// syntheticTable has letters a, b, c, x, the contraction "ch", and the
// contraction "xyz" without a terminal at "xy". 'y' and 'z' have no entry
// of their own.
func syntheticTable(t *testing.T) *colltab.Table {
	b := colltab.NewBuilder()
	require.NoError(t, b.AddSingle('a', []colltab.Elem{el(0x2000, 0x20, 0x02)}))
	require.NoError(t, b.AddSingle('b', []colltab.Elem{el(0x2010, 0x20, 0x02)}))
	require.NoError(t, b.AddSingle('c', []colltab.Elem{el(0x2020, 0x20, 0x02)}))
	require.NoError(t, b.AddSingle('x', []colltab.Elem{el(0x2100, 0x20, 0x02)}))
	require.NoError(t, b.AddSingle('-', []colltab.Elem{colltab.MakeElem(0x0220, 0x20, 0x02, true)}))
	require.NoError(t, b.AddSingle(0x0301, []colltab.Elem{el(0, 0x24, 0x02)}))
	require.NoError(t, b.AddContraction([]rune("ch"), []colltab.Elem{el(0x2030, 0x20, 0x02)}))
	require.NoError(t, b.AddContraction([]rune("xyz"), []colltab.Elem{el(0x2200, 0x20, 0x02), el(0, 0x25, 0x02)}))
	table, err := b.Table()
	require.NoError(t, err)
	return table
}

func TestMatchContractionPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	table := syntheticTable(t)
	ces := MatchAll(table, []rune("xyz"), false)
	assert.Equal(t, []colltab.Elem{el(0x2200, 0x20, 0x02), el(0, 0x25, 0x02)}, ces)
	//
	// "xy" reaches a non-terminal node: x matches alone, y is implicit
	ces = MatchAll(table, []rune("xy"), false)
	require.Len(t, ces, 3)
	assert.Equal(t, el(0x2100, 0x20, 0x02), ces[0])
	y := table.LookupImplicit('y')
	assert.Equal(t, []colltab.Elem{y[0], y[1]}, ces[1:])
	//
	ces = MatchAll(table, []rune("cha"), false)
	assert.Equal(t, []colltab.Elem{el(0x2030, 0x20, 0x02), el(0x2000, 0x20, 0x02)}, ces)
	ces = MatchAll(table, []rune("cb"), false)
	assert.Equal(t, []colltab.Elem{el(0x2020, 0x20, 0x02), el(0x2010, 0x20, 0x02)}, ces)
}

func TestMatchImplicit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	table := ucadata.MustDefault()
	ces := MatchAll(table, []rune{0x4E00}, false)
	implicit := table.LookupImplicit(0x4E00)
	assert.Equal(t, []colltab.Elem{implicit[0], implicit[1]}, ces)
	assert.Equal(t, uint16(0xFB40), ces[0].Primary)
	assert.Equal(t, uint16(0xCE00), ces[1].Primary)
	assert.Empty(t, MatchAll(table, nil, false))
}

func TestMatchDiscontiguous(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	table := ucadata.MustDefault()
	short := func(cp rune) colltab.Elem {
		exp, ok := table.LookupSingle(cp).Unwrap()
		require.True(t, ok, "%U", cp)
		return table.Elems(exp)[0]
	}
	input := []rune{0x0438, 0x0323, 0x0306} // и, dot below, breve
	saved := append([]rune(nil), input...)
	//
	contiguous := MatchAll(table, input, false)
	assert.Equal(t, []colltab.Elem{short(0x0438), short(0x0323), short(0x0306)}, contiguous)
	//
	disc := MatchAll(table, input, true)
	assert.Equal(t, []colltab.Elem{short(0x0439), short(0x0323)}, disc)
	assert.Equal(t, saved, input, "input must not be modified")
	//
	// a mark of the same combining class blocks the breve
	blocked := MatchAll(table, []rune{0x0438, 0x0301, 0x0306}, true)
	assert.Equal(t, []colltab.Elem{short(0x0438), short(0x0301), short(0x0306)}, blocked)
	//
	// a starter ends the search
	stopped := MatchAll(table, []rune{0x0438, 'a', 0x0306}, true)
	assert.Len(t, stopped, 3)
	assert.Equal(t, short(0x0438), stopped[0])
}

func TestMatchDiscontiguousSkipsNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.collate")
	defer teardown()
	//
	table := ucadata.MustDefault()
	// 0FB2 0F71 is no contraction of its own; 0FB2 0F71 0F80 is
	ces := MatchAll(table, []rune{0x0FB2, 0x0F71, 0x0F80}, true)
	exp, ok := table.WalkTrie([]rune{0x0FB2, 0x0F71, 0x0F80}, 0).Unwrap()
	require.True(t, ok)
	assert.Equal(t, table.Elems(exp.Exp), ces)
}
