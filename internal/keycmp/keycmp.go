// Package keycmp checks sort keys produced by a collator against JSON
// fixtures of expected keys.
package keycmp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/npillmayer/uca/collate"
	"github.com/npillmayer/uca/colltab"
)

// fixtureContext holds the collator options of a fixture.
type fixtureContext struct {
	Variable      string `json:"variable"`
	Strength      int    `json:"strength"`
	Discontiguous bool   `json:"discontiguous,omitempty"`
}

type fixtureCase struct {
	Input []uint32 `json:"input"` // Unicode codepoints
	Key   string   `json:"key"`   // expected sort key in hex
}

type fixture struct {
	Name    string         `json:"-"`
	Context fixtureContext `json:"context"`
	Cases   []fixtureCase  `json:"cases"`
}

func (f fixture) validate() error {
	if f.Context.Variable == "" {
		return fmt.Errorf("fixture: context.variable is required")
	}
	if len(f.Cases) == 0 {
		return fmt.Errorf("fixture: cases must not be empty")
	}
	return nil
}

func (f fixture) options() (collate.Options, error) {
	v, err := collate.ParseVariableWeighting(f.Context.Variable)
	if err != nil {
		return collate.Options{}, err
	}
	opts := collate.Options{
		Variable:      v,
		Strength:      collate.Level(f.Context.Strength),
		Discontiguous: f.Context.Discontiguous,
	}
	return opts, opts.Validate()
}

func (c fixtureCase) runes() ([]rune, error) {
	runes := make([]rune, len(c.Input))
	for i, cp := range c.Input {
		if cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
			return nil, fmt.Errorf("fixture: input[%d]=%d is not a valid Unicode scalar", i, cp)
		}
		runes[i] = rune(cp)
	}
	return runes, nil
}

// mismatch describes a case whose key differs from the expectation.
type mismatch struct {
	Index int
	Input []rune
	Got   string
	Want  string
}

func (m mismatch) String() string {
	return fmt.Sprintf("case %d %U: got %s, want %s", m.Index, m.Input, m.Got, m.Want)
}

// checkFixture computes the key of every case of f with table and returns
// the cases which do not match.
func checkFixture(table *colltab.Table, f fixture) ([]mismatch, error) {
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	coll, err := collate.New(table, opts)
	if err != nil {
		return nil, err
	}
	var out []mismatch
	for i, c := range f.Cases {
		runes, err := c.runes()
		if err != nil {
			return nil, err
		}
		key, err := coll.SortKeyRunes(runes)
		if err != nil {
			return nil, err
		}
		if got := key.Hex(); got != c.Key {
			out = append(out, mismatch{Index: i, Input: runes, Got: got, Want: c.Key})
		}
	}
	return out, nil
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, err
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return fixture{}, err
	}
	if err := f.validate(); err != nil {
		return fixture{}, err
	}
	f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return f, nil
}

func loadFixtures(dir string) ([]fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(strings.ToLower(name), ".json") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	out := make([]fixture, 0, len(paths))
	for _, p := range paths {
		f, err := loadFixture(p)
		if err != nil {
			return nil, fmt.Errorf("load fixture %s: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}
