package colltab

import (
	"fmt"
	"slices"
	"strings"
)

// Builder assembles a Table from collation entries. It is the only way to
// construct tables apart from loading an artifact. A Builder is not safe for
// concurrent use; the tables it builds are.
//
// Entries may be added in any order. Adding an entry for a codepoint (or
// codepoint sequence) a second time replaces the earlier entry.
type Builder struct {
	version      [3]uint8
	singles      map[rune][]Elem
	contractions map[string]contraction
	implicits    []ImplicitRange
	fallback     ImplicitRange
}

type contraction struct {
	cps []rune
	ces []Elem
}

// NewBuilder creates a builder for an empty table. The fallback implicit range
// is preset to FallbackRange.
func NewBuilder() *Builder {
	return &Builder{
		singles:      make(map[rune][]Elem),
		contractions: make(map[string]contraction),
		fallback:     FallbackRange,
	}
}

// SetVersion sets the Unicode version of the table.
func (b *Builder) SetVersion(major, minor, update uint8) {
	b.version = [3]uint8{major, minor, update}
}

// AddSingle registers the collation elements for a single codepoint.
func (b *Builder) AddSingle(cp rune, ces []Elem) error {
	if !validCodepoint(cp) {
		return fmt.Errorf("colltab builder: invalid codepoint %#x", cp)
	}
	if len(ces) == 0 || len(ces) > 0xFFFF {
		return fmt.Errorf("colltab builder: U+%04X needs 1…65535 collation elements, has %d", cp, len(ces))
	}
	b.singles[cp] = slices.Clone(ces)
	return nil
}

// AddContraction registers the collation elements for a sequence of
// codepoints collated as a unit. Sequences of length 1 are treated as single
// entries.
func (b *Builder) AddContraction(cps []rune, ces []Elem) error {
	if len(cps) == 0 {
		return fmt.Errorf("colltab builder: empty contraction")
	}
	if len(cps) == 1 {
		return b.AddSingle(cps[0], ces)
	}
	for _, cp := range cps {
		if !validCodepoint(cp) {
			return fmt.Errorf("colltab builder: invalid codepoint %#x in contraction", cp)
		}
	}
	if len(ces) == 0 || len(ces) > 0xFFFF {
		return fmt.Errorf("colltab builder: contraction %s needs 1…65535 collation elements, has %d", seqString(cps), len(ces))
	}
	b.contractions[string(cps)] = contraction{cps: slices.Clone(cps), ces: slices.Clone(ces)}
	return nil
}

// AddImplicitRange registers a range of codepoints with implicit weights.
// Ranges must not overlap; this is checked when the table is built.
func (b *Builder) AddImplicitRange(r ImplicitRange) error {
	if r.Start > r.End || !validCodepoint(r.Start) || r.End > MaxCodepoint {
		return fmt.Errorf("colltab builder: invalid implicit range %04X..%04X", r.Start, r.End)
	}
	b.implicits = append(b.implicits, r)
	return nil
}

// SetFallback replaces the fallback implicit range. It has to cover all
// codepoints.
func (b *Builder) SetFallback(r ImplicitRange) {
	b.fallback = r
}

// Table builds an immutable table from the entries added so far. The builder
// may be used further afterwards without affecting the returned table.
func (b *Builder) Table() (*Table, error) {
	t := &Table{
		version:  b.version,
		fallback: b.fallback,
	}
	shared := make(map[string]Expansion)
	// identical weight sequences share their slots in the CE arrays
	intern := func(ces []Elem) Expansion {
		key := fmt.Sprint(ces)
		if exp, ok := shared[key]; ok {
			return exp
		}
		exp := Expansion{Index: uint32(len(t.primary)), Len: uint16(len(ces))}
		for _, ce := range ces {
			t.primary = append(t.primary, ce.Primary)
			t.secondary = append(t.secondary, ce.Secondary)
			t.tertiary = append(t.tertiary, ce.Tertiary)
		}
		shared[key] = exp
		return exp
	}
	// single-codepoint index
	t.singleCP = make([]rune, 0, len(b.singles))
	for cp := range b.singles {
		t.singleCP = append(t.singleCP, cp)
	}
	slices.Sort(t.singleCP)
	t.singleExp = make([]Expansion, len(t.singleCP))
	for i, cp := range t.singleCP {
		t.singleExp[i] = intern(b.singles[cp])
	}
	// contraction trie
	keys := make([]string, 0, len(b.contractions))
	for k := range b.contractions {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y string) int {
		return slices.Compare(b.contractions[x].cps, b.contractions[y].cps)
	})
	tmp := []*buildNode{newBuildNode()}
	for _, k := range keys {
		c := b.contractions[k]
		n := 0
		for _, cp := range c.cps {
			child, ok := tmp[n].children[cp]
			if !ok {
				child = len(tmp)
				tmp = append(tmp, newBuildNode())
				tmp[n].children[cp] = child
			}
			n = child
		}
		tmp[n].exp = intern(c.ces)
	}
	// first codepoints of contractions match on their own as well
	for cp, child := range tmp[0].children {
		if i, found := slices.BinarySearch(t.singleCP, cp); found && tmp[child].exp.IsEmpty() {
			tmp[child].exp = t.singleExp[i]
		}
	}
	t.flattenTrie(tmp)
	// implicit ranges
	t.implicits = slices.Clone(b.implicits)
	slices.SortFunc(t.implicits, func(x, y ImplicitRange) int {
		return int(x.Start) - int(y.Start)
	})
	if err := t.validate(nil); err != nil {
		return nil, err
	}
	tracer().Debugf("built collation table: %+v", t.Stats())
	return t, nil
}

// Artifact builds a table and serializes it into its binary artifact form.
func (b *Builder) Artifact() ([]byte, error) {
	t, err := b.Table()
	if err != nil {
		return nil, err
	}
	return t.Artifact(), nil
}

// buildNode is a temporary trie node used during construction only.
type buildNode struct {
	children map[rune]int
	exp      Expansion
}

func newBuildNode() *buildNode {
	return &buildNode{children: make(map[rune]int)}
}

// flattenTrie lays out the temporary trie in breadth-first order. Every node
// gets its edges as one contiguous, sorted run, and children always receive
// higher indices than their parents.
func (t *Table) flattenTrie(tmp []*buildNode) {
	t.nodes = make([]trieNode, 0, len(tmp))
	t.nodes = append(t.nodes, trieNode{exp: tmp[0].exp})
	queue := []int{0}
	for pos := 0; pos < len(queue); pos++ {
		src := tmp[queue[pos]]
		labels := make([]rune, 0, len(src.children))
		for cp := range src.children {
			labels = append(labels, cp)
		}
		slices.Sort(labels)
		t.nodes[pos].edgeStart = uint32(len(t.edgeCP))
		t.nodes[pos].edgeCount = uint32(len(labels))
		for _, cp := range labels {
			child := src.children[cp]
			t.edgeCP = append(t.edgeCP, cp)
			t.edgeChild = append(t.edgeChild, uint32(len(t.nodes)))
			t.nodes = append(t.nodes, trieNode{exp: tmp[child].exp})
			queue = append(queue, child)
		}
	}
}

func seqString(cps []rune) string {
	var sb strings.Builder
	for i, cp := range cps {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%04X", cp)
	}
	return sb.String()
}
