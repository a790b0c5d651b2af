package collate

import (
	"errors"
	"slices"

	"github.com/npillmayer/uca/colltab"
)

// Collator compares strings and builds sort keys using a collation table.
// A Collator is immutable and safe for concurrent use.
type Collator struct {
	table *colltab.Table
	norm  Normalizer
	opts  Options
}

// New creates a Collator for table, configured by opts. The default
// Normalizer is NFD.
func New(table *colltab.Table, opts Options) (*Collator, error) {
	if table == nil {
		return nil, errors.New("collator needs a collation table")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Collator{table: table, norm: NFD, opts: opts}, nil
}

// WithNormalizer returns a copy of c which uses n for canonical
// decomposition.
func (c *Collator) WithNormalizer(n Normalizer) *Collator {
	cc := *c
	cc.norm = n
	return &cc
}

// Options returns the options c was created with.
func (c *Collator) Options() Options {
	return c.opts
}

// Table returns the collation table of c.
func (c *Collator) Table() *colltab.Table {
	return c.table
}

// Elements returns the collation elements for text.
func (c *Collator) Elements(text string) ([]colltab.Elem, error) {
	cps, err := DecodeString(text)
	if err != nil {
		return nil, err
	}
	return c.elements(cps), nil
}

// ElementsRunes returns the collation elements for a codepoint sequence.
func (c *Collator) ElementsRunes(cps []rune) ([]colltab.Elem, error) {
	if err := CheckRunes(cps); err != nil {
		return nil, err
	}
	return c.elements(cps), nil
}

func (c *Collator) elements(cps []rune) []colltab.Elem {
	return MatchAll(c.table, c.norm.NFD(cps), c.opts.Discontiguous)
}

// Compare compares a and b, returning -1, 0 or 1. It is an error if either
// string is not valid UTF-8.
func (c *Collator) Compare(a, b string) (int, error) {
	r, _, err := c.CompareLevel(a, b)
	return r, err
}

// CompareLevel compares a and b and additionally reports the level at which
// they first differ. For equal strings the level is DefaultLevel.
func (c *Collator) CompareLevel(a, b string) (int, Level, error) {
	ca, err := DecodeString(a)
	if err != nil {
		return 0, DefaultLevel, err
	}
	cb, err := DecodeString(b)
	if err != nil {
		return 0, DefaultLevel, err
	}
	r, lvl := c.compareElems(c.elements(ca), c.elements(cb))
	return r, lvl, nil
}

// CompareRunes compares two codepoint sequences.
func (c *Collator) CompareRunes(a, b []rune) (int, error) {
	if err := CheckRunes(a); err != nil {
		return 0, err
	}
	if err := CheckRunes(b); err != nil {
		return 0, err
	}
	r, _ := c.compareElems(c.elements(a), c.elements(b))
	return r, nil
}

// CompareUTF16 compares two UTF-16 encoded strings. Unpaired surrogates are
// an error.
func (c *Collator) CompareUTF16(a, b []uint16) (int, error) {
	ca, err := DecodeUTF16(a)
	if err != nil {
		return 0, err
	}
	cb, err := DecodeUTF16(b)
	if err != nil {
		return 0, err
	}
	r, _ := c.compareElems(c.elements(ca), c.elements(cb))
	return r, nil
}

// compareElems compares level by level and stops at the first level which
// differs. The result is the same as comparing full sort keys.
func (c *Collator) compareElems(a, b []colltab.Elem) (int, Level) {
	var wa, wb []uint16
	levels := c.opts.Levels()
	for lvl := Primary; lvl <= levels; lvl++ {
		wa = appendLevel(wa[:0], a, lvl, c.opts.Variable)
		wb = appendLevel(wb[:0], b, lvl, c.opts.Variable)
		if r := slices.Compare(wa, wb); r != 0 {
			return r, lvl
		}
	}
	return 0, DefaultLevel
}

// SortKey builds the sort key for text.
func (c *Collator) SortKey(text string) (SortKey, error) {
	ces, err := c.Elements(text)
	if err != nil {
		return nil, err
	}
	return BuildSortKey(ces, c.opts.Variable, c.opts.Strength), nil
}

// SortKeyRunes builds the sort key for a codepoint sequence.
func (c *Collator) SortKeyRunes(cps []rune) (SortKey, error) {
	ces, err := c.ElementsRunes(cps)
	if err != nil {
		return nil, err
	}
	return BuildSortKey(ces, c.opts.Variable, c.opts.Strength), nil
}

// SortKeyHex builds the sort key for text and renders it as hex.
func (c *Collator) SortKeyHex(text string) (string, error) {
	k, err := c.SortKey(text)
	if err != nil {
		return "", err
	}
	return k.Hex(), nil
}
