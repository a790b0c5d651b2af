package uca

import (
	"os"
	"slices"

	"github.com/npillmayer/uca/collate"
	"github.com/npillmayer/uca/colltab"
	"github.com/npillmayer/uca/ucadata"
)

// Options configure collation; the zero value selects the defaults.
type Options = collate.Options

// Default returns a collator for the embedded default table.
func Default(opts Options) (*collate.Collator, error) {
	table, err := ucadata.Default()
	if err != nil {
		return nil, err
	}
	return collate.New(table, opts)
}

// Compare compares UTF-8 strings a and b with the default table and returns
// -1, 0 or 1.
func Compare(a, b string, opts Options) (int, error) {
	coll, err := Default(opts)
	if err != nil {
		return 0, err
	}
	return coll.Compare(a, b)
}

// SortKeyHex returns the sort key of text as a hex string: four upper-case
// hex digits per weight, levels separated by 0000.
func SortKeyHex(text string, opts Options) (string, error) {
	coll, err := Default(opts)
	if err != nil {
		return "", err
	}
	return coll.SortKeyHex(text)
}

// Sort sorts strings in place in collation order. Sort keys are computed
// once per string; the sort is stable for strings with equal keys.
func Sort(strings []string, opts Options) error {
	coll, err := Default(opts)
	if err != nil {
		return err
	}
	return SortWith(coll, strings)
}

// SortWith sorts strings in place using coll.
func SortWith(coll *collate.Collator, strings []string) error {
	type keyed struct {
		key  collate.SortKey
		text string
	}
	items := make([]keyed, len(strings))
	for i, s := range strings {
		k, err := coll.SortKey(s)
		if err != nil {
			return err
		}
		items[i] = keyed{key: k, text: s}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return collate.CompareKeys(a.key, b.key)
	})
	for i, it := range items {
		strings[i] = it.text
	}
	return nil
}

// LoadTable loads a collation table from a binary artifact file, as written
// by "uca-tools gen".
func LoadTable(path string) (*colltab.Table, error) {
	artifact, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table, err := colltab.Load(artifact)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded collation table %s from %s", table.Version(), path)
	return table, nil
}
