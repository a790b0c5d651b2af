package colltab

import (
	"fmt"
	"slices"
)

// Table holds all collation data for the default collation ordering of one
// Unicode version. A Table is immutable once it has been loaded or built; all
// methods are safe for concurrent use.
type Table struct {
	version [3]uint8 // Unicode version major, minor, update

	// flat collation element arrays, addressed by Expansion
	primary   []uint16
	secondary []uint16
	tertiary  []uint16

	// single-codepoint index: ascending codepoints, parallel expansions
	singleCP  []rune
	singleExp []Expansion

	// contraction trie: node 0 is the root
	nodes     []trieNode
	edgeCP    []rune   // edge labels, sorted per node
	edgeChild []uint32 // parallel to edgeCP

	implicits []ImplicitRange // sorted, non-overlapping
	fallback  ImplicitRange   // covers everything else

	maxContraction int // longest path in the contraction trie
}

// trieNode is a node of the contraction trie. Its outgoing edges are
// edgeCP[edgeStart:edgeStart+edgeCount]. A node with a non-empty expansion is
// terminal.
type trieNode struct {
	edgeStart uint32
	edgeCount uint32
	exp       Expansion
}

// Version returns the Unicode version the table has been generated for.
func (t *Table) Version() string {
	return fmt.Sprintf("%d.%d.%d", t.version[0], t.version[1], t.version[2])
}

// Stats describes the size of a table.
type Stats struct {
	Elements        int // number of collation elements in the flat CE arrays
	Singles         int // number of single-codepoint entries
	TrieNodes       int // number of contraction trie nodes (including the root)
	Contractions    int // number of terminal trie nodes reachable by two or more codepoints
	ImplicitRanges  int // number of explicit implicit-weight ranges
	LongestSequence int // longest contraction in codepoints
}

// Stats returns size information about t.
func (t *Table) Stats() Stats {
	st := Stats{
		Elements:        len(t.primary),
		Singles:         len(t.singleCP),
		TrieNodes:       len(t.nodes),
		ImplicitRanges:  len(t.implicits),
		LongestSequence: t.maxContraction,
	}
	if len(t.nodes) > 0 {
		root := t.nodes[0]
		first := make(map[uint32]bool, root.edgeCount)
		for i := root.edgeStart; i < root.edgeStart+root.edgeCount; i++ {
			first[t.edgeChild[i]] = true
		}
		for i, n := range t.nodes {
			if i > 0 && !first[uint32(i)] && !n.exp.IsEmpty() {
				st.Contractions++
			}
		}
	}
	return st
}

// --- Lookups ---------------------------------------------------------------

// LookupSingle looks up the expansion for a single codepoint in the
// single-codepoint index.
func (t *Table) LookupSingle(cp rune) Option[Expansion] {
	if i, found := slices.BinarySearch(t.singleCP, cp); found {
		return Some(t.singleExp[i])
	}
	return None[Expansion]()
}

// Step follows the edge labeled cp from trie node `node`.
func (t *Table) Step(node uint32, cp rune) (uint32, bool) {
	if int(node) >= len(t.nodes) {
		return 0, false
	}
	n := t.nodes[node]
	edges := t.edgeCP[n.edgeStart : n.edgeStart+n.edgeCount]
	if i, found := slices.BinarySearch(edges, cp); found {
		return t.edgeChild[int(n.edgeStart)+i], true
	}
	return 0, false
}

// Terminal returns the expansion of trie node `node`, if the node is terminal.
func (t *Table) Terminal(node uint32) Option[Expansion] {
	if int(node) < len(t.nodes) && !t.nodes[node].exp.IsEmpty() {
		return Some(t.nodes[node].exp)
	}
	return None[Expansion]()
}

// HasEdges reports whether trie node `node` has outgoing edges, i.e. whether
// a longer contraction could continue from it.
func (t *Table) HasEdges(node uint32) bool {
	return int(node) < len(t.nodes) && t.nodes[node].edgeCount > 0
}

// WalkTrie walks the contraction trie along cps, starting at position pos.
// It returns the longest match ending in a terminal node. Nodes which are
// merely reachable do not count as a match.
func (t *Table) WalkTrie(cps []rune, pos int) Option[Match] {
	if len(t.nodes) == 0 || pos < 0 || pos >= len(cps) {
		return None[Match]()
	}
	var best Match
	node := uint32(0)
	for i := pos; i < len(cps); i++ {
		child, ok := t.Step(node, cps[i])
		if !ok {
			break
		}
		node = child
		if exp := t.nodes[node].exp; !exp.IsEmpty() {
			best = Match{Len: i - pos + 1, Exp: exp, Node: node}
		}
	}
	if best.Len == 0 {
		return None[Match]()
	}
	return Some(best)
}

// AppendElems appends the collation elements addressed by exp to dst.
func (t *Table) AppendElems(dst []Elem, exp Expansion) []Elem {
	end := exp.Index + uint32(exp.Len)
	for i := exp.Index; i < end; i++ {
		dst = append(dst, Elem{
			Primary:   t.primary[i],
			Secondary: t.secondary[i],
			Tertiary:  t.tertiary[i],
		})
	}
	return dst
}

// Elems returns the collation elements addressed by exp.
func (t *Table) Elems(exp Expansion) []Elem {
	return t.AppendElems(make([]Elem, 0, exp.Len), exp)
}

// LookupImplicit derives the implicit collation elements for cp. It always
// succeeds: codepoints outside every explicit implicit range use the fallback
// range.
func (t *Table) LookupImplicit(cp rune) [2]Elem {
	return t.implicitRange(cp).Elems(cp)
}

// ImplicitPrimary returns the combined 32-bit implicit primary weight for cp
// (first primary in the high half, second in the low half).
func (t *Table) ImplicitPrimary(cp rune) uint32 {
	return t.implicitRange(cp).Primary(cp)
}

// ImplicitRangeOf returns the implicit range responsible for cp.
func (t *Table) ImplicitRangeOf(cp rune) ImplicitRange {
	return t.implicitRange(cp)
}

func (t *Table) implicitRange(cp rune) ImplicitRange {
	i, _ := slices.BinarySearchFunc(t.implicits, cp, func(r ImplicitRange, cp rune) int {
		switch {
		case r.End < cp:
			return -1
		case r.Start > cp:
			return 1
		}
		return 0
	})
	if i < len(t.implicits) && t.implicits[i].Contains(cp) {
		return t.implicits[i]
	}
	return t.fallback
}
