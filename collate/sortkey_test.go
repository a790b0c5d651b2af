package collate

import (
	"testing"

	"github.com/npillmayer/uca/colltab"
	"github.com/stretchr/testify/assert"
)

var (
	ceA      = el(0x2100, 0x20, 0x02)
	ceB      = el(0x2120, 0x20, 0x02)
	ceUpperA = el(0x2100, 0x20, 0x08)
	ceAcute  = el(0, 0x24, 0x02)
	ceSpace  = colltab.MakeElem(0x0209, 0x20, 0x02, true)
	ceNull   = el(0, 0, 0)
)

func TestBuildSortKeyLevels(t *testing.T) {
	ces := []colltab.Elem{ceUpperA, ceAcute, ceB}
	assert.Equal(t, SortKey{0x2100, 0x2120}, BuildSortKey(ces, Shifted, Primary))
	assert.Equal(t, SortKey{0x2100, 0x2120, 0, 0x20, 0x24, 0x20}, BuildSortKey(ces, Shifted, Secondary))
	assert.Equal(t,
		SortKey{0x2100, 0x2120, 0, 0x20, 0x24, 0x20, 0, 0x08, 0x02, 0x02, 0, 0xFFFF, 0xFFFF, 0xFFFF},
		BuildSortKey(ces, Shifted, DefaultLevel))
	assert.Equal(t,
		SortKey{0x2100, 0x2120, 0, 0x20, 0x24, 0x20, 0, 0x08, 0x02, 0x02},
		BuildSortKey(ces, NonIgnorable, Quaternary))
}

func TestBuildSortKeyVariable(t *testing.T) {
	// a, space, acute, b: the acute follows a variable element
	ces := []colltab.Elem{ceA, ceSpace, ceAcute, ceNull, ceB}
	assert.Equal(t,
		SortKey{0x2100, 0x2120, 0, 0x20, 0x20, 0, 0x02, 0x02, 0, 0xFFFF, 0x0209, 0xFFFF},
		BuildSortKey(ces, Shifted, Tertiary))
	assert.Equal(t,
		SortKey{0x2100, 0x2120, 0, 0x20, 0x20, 0, 0x02, 0x02},
		BuildSortKey(ces, Blanked, Tertiary))
	assert.Equal(t,
		SortKey{0x2100, 0x0209, 0x2120, 0, 0x20, 0x20, 0x24, 0x20, 0, 0x02, 0x02, 0x02, 0x02},
		BuildSortKey(ces, NonIgnorable, Tertiary))
	//
	// a mark not following a variable element keeps its weights
	ces = []colltab.Elem{ceA, ceAcute}
	assert.Equal(t,
		SortKey{0x2100, 0, 0x20, 0x24, 0, 0x02, 0x02, 0, 0xFFFF, 0xFFFF},
		BuildSortKey(ces, Shifted, Tertiary))
}

func TestBuildSortKeyIgnorables(t *testing.T) {
	assert.Equal(t, SortKey{0, 0, 0}, BuildSortKey(nil, Shifted, Tertiary))
	assert.Equal(t, SortKey{0, 0}, BuildSortKey([]colltab.Elem{ceNull}, NonIgnorable, Tertiary))
	assert.Equal(t, BuildSortKey([]colltab.Elem{ceA}, Shifted, Tertiary),
		BuildSortKey([]colltab.Elem{ceNull, ceA, ceNull}, Shifted, Tertiary))
}

func TestSortKeyRendering(t *testing.T) {
	k := SortKey{0x2100, 0, 0x20, 0, 0x02, 0, 0xFFFF}
	assert.Equal(t, "210000000020000000020000FFFF", k.Hex())
	assert.Equal(t, []byte{0x21, 0, 0, 0, 0, 0x20, 0, 0, 0, 0x02, 0, 0, 0xFF, 0xFF}, k.Bytes())
	assert.Equal(t, "2100 | 0020 | 0002 | FFFF", k.String())
	assert.Equal(t, "", SortKey{}.Hex())
}

func TestCompareKeys(t *testing.T) {
	assert.Equal(t, 0, CompareKeys(SortKey{1, 0, 2}, SortKey{1, 0, 2}))
	assert.Equal(t, -1, CompareKeys(SortKey{1, 0, 2}, SortKey{1, 0, 3}))
	assert.Equal(t, 1, CompareKeys(SortKey{2}, SortKey{1, 0, 3}))
	assert.Equal(t, -1, CompareKeys(SortKey{1}, SortKey{1, 0}), "proper prefix is less")
	assert.Equal(t, -1, CompareKeys(nil, SortKey{0}))
	assert.Equal(t, 1, SortKey{0x2120}.Compare(SortKey{0x2100, 0x2120}))
}
