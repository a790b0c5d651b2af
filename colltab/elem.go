package colltab

import "fmt"

// Default weights for the lower levels of collation elements.
const (
	DefaultSecondary uint16 = 0x0020
	DefaultTertiary  uint16 = 0x0002
)

// VariableBit flags a collation element as variable (punctuation, symbols,
// whitespace). It is carried in the tertiary weight, which never uses the bit
// for real weights.
const VariableBit uint16 = 0x8000

// Elem is a collation element: a weight triple for primary, secondary and
// tertiary level. The tertiary weight carries the variable flag (see VariableBit).
type Elem struct {
	Primary   uint16
	Secondary uint16
	Tertiary  uint16
}

// MakeElem creates a collation element. If variable is set, the element is
// flagged as variable.
func MakeElem(p, s, t uint16, variable bool) Elem {
	if variable {
		t |= VariableBit
	} else {
		t &^= VariableBit
	}
	return Elem{Primary: p, Secondary: s, Tertiary: t}
}

// IsVariable reports whether ce is subject to variable weighting.
func (ce Elem) IsVariable() bool {
	return ce.Tertiary&VariableBit != 0
}

// TertiaryWeight returns the tertiary weight without the variable flag.
func (ce Elem) TertiaryWeight() uint16 {
	return ce.Tertiary &^ VariableBit
}

// IsIgnorable reports whether ce is completely ignorable, i.e. all weights are zero.
func (ce Elem) IsIgnorable() bool {
	return ce.Primary == 0 && ce.Secondary == 0 && ce.TertiaryWeight() == 0
}

// IsPrimaryIgnorable reports whether ce has a primary weight of zero.
func (ce Elem) IsPrimaryIgnorable() bool {
	return ce.Primary == 0
}

// String formats ce the way allkeys.txt does, e.g. "[.1FA2.0020.0002]" or
// "[*0209.0020.0002]" for a variable element.
func (ce Elem) String() string {
	mark := '.'
	if ce.IsVariable() {
		mark = '*'
	}
	return fmt.Sprintf("[%c%04X.%04X.%04X]", mark, ce.Primary, ce.Secondary, ce.TertiaryWeight())
}

// Expansion addresses a run of collation elements in the flat CE arrays of a
// Table. One matched unit may expand into several collation elements.
// Len == 0 denotes an empty expansion.
type Expansion struct {
	Index uint32
	Len   uint16
}

// IsEmpty reports whether exp addresses no collation elements.
func (exp Expansion) IsEmpty() bool {
	return exp.Len == 0
}

// Match is the result of a contraction lookup: the number of codepoints
// consumed, the expansion for the matched unit and the trie node the match
// ended in.
type Match struct {
	Len  int
	Exp  Expansion
	Node uint32
}
