package collate

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/uca/colltab"
)

// SortKey is a flat sequence of 16-bit weights: the weights of level 1, then
// a 0 separator, the weights of level 2, and so on. Weights inside a level
// are never 0, so comparing two keys lexicographically is equivalent to
// comparing the underlying strings.
type SortKey []uint16

// BuildSortKey builds the sort key for a sequence of collation elements.
// strength is clamped the same way Options.Levels does.
func BuildSortKey(ces []colltab.Elem, variable VariableWeighting, strength Level) SortKey {
	levels := Options{Variable: variable, Strength: strength}.Levels()
	key := make(SortKey, 0, int(levels)*(len(ces)+1))
	for lvl := Primary; lvl <= levels; lvl++ {
		if lvl > Primary {
			key = append(key, 0)
		}
		key = appendLevel(key, ces, lvl, variable)
	}
	return key
}

// appendLevel appends the non-zero weights of ces for a single level.
//
// Under Shifted and Blanked, a variable element contributes only to the
// quaternary level, and a primary-ignorable element following a variable
// element contributes nothing. Completely ignorable elements never
// contribute. Every other element carries FFFF on the quaternary level.
func appendLevel(dst []uint16, ces []colltab.Elem, level Level, variable VariableWeighting) []uint16 {
	afterVariable := false
	for _, ce := range ces {
		if variable != NonIgnorable {
			switch {
			case ce.IsIgnorable():
				continue
			case ce.IsVariable():
				afterVariable = true
				if level == Quaternary {
					dst = append(dst, ce.Primary)
				}
				continue
			case ce.Primary == 0 && afterVariable:
				continue
			}
			if ce.Primary != 0 {
				afterVariable = false
			}
			if level == Quaternary {
				dst = append(dst, 0xFFFF)
				continue
			}
		}
		var w uint16
		switch level {
		case Primary:
			w = ce.Primary
		case Secondary:
			w = ce.Secondary
		case Tertiary:
			w = ce.TertiaryWeight()
		}
		if w != 0 {
			dst = append(dst, w)
		}
	}
	return dst
}

// CompareKeys compares two sort keys lexicographically, returning -1, 0 or 1.
// A proper prefix is less than the longer key.
func CompareKeys(a, b SortKey) int {
	return slices.Compare(a, b)
}

// Compare is short for CompareKeys(k, other).
func (k SortKey) Compare(other SortKey) int {
	return CompareKeys(k, other)
}

// Bytes serializes k big-endian, two bytes per weight. Byte-wise comparison
// of serialized keys agrees with CompareKeys.
func (k SortKey) Bytes() []byte {
	b := make([]byte, 0, 2*len(k))
	for _, w := range k {
		b = binary.BigEndian.AppendUint16(b, w)
	}
	return b
}

// Hex renders k as upper-case hex, four digits per weight, without
// separators.
func (k SortKey) Hex() string {
	var sb strings.Builder
	sb.Grow(4 * len(k))
	for _, w := range k {
		fmt.Fprintf(&sb, "%04X", w)
	}
	return sb.String()
}

// String renders k with levels separated by '|', e.g. "1FA2 1FBC | 0020 0020 | 0002 0002".
func (k SortKey) String() string {
	var sb strings.Builder
	for i, w := range k {
		switch {
		case w == 0:
			sb.WriteString(" |")
		case i > 0:
			sb.WriteByte(' ')
		}
		if w != 0 {
			fmt.Fprintf(&sb, "%04X", w)
		}
	}
	return strings.TrimSpace(sb.String())
}
