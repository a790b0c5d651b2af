package collate

import (
	"slices"

	"github.com/npillmayer/uca/colltab"
)

// MatchAll converts a codepoint sequence in NFD into its collation elements.
//
// At every position the longest contraction ending in a terminal trie node
// wins. Failing that, the single-codepoint entry is used, and failing that,
// the implicit weights derived from the codepoint. With discontiguous set,
// a matched contraction may be extended by non-starters which are not
// blocked by an intervening mark of equal or higher combining class.
//
// MatchAll never modifies nfd.
func MatchAll(t *colltab.Table, nfd []rune, discontiguous bool) []colltab.Elem {
	m := matcher{table: t, discontiguous: discontiguous}
	return m.appendAll(make([]colltab.Elem, 0, len(nfd)+len(nfd)/2), nfd)
}

type matcher struct {
	table         *colltab.Table
	discontiguous bool
}

func (m matcher) appendAll(ces []colltab.Elem, cps []rune) []colltab.Elem {
	cloned := false
	for i := 0; i < len(cps); {
		if match, ok := m.table.WalkTrie(cps, i).Unwrap(); ok {
			end := i + match.Len
			exp := match.Exp
			if m.discontiguous && m.table.HasEdges(match.Node) && end < len(cps) {
				if !cloned {
					cps, cloned = slices.Clone(cps), true
				}
				exp, cps = m.extend(cps, end, match.Node, exp)
			}
			ces = m.table.AppendElems(ces, exp)
			i = end
			continue
		}
		if exp, ok := m.table.LookupSingle(cps[i]).Unwrap(); ok {
			ces = m.table.AppendElems(ces, exp)
			i++
			continue
		}
		implicit := m.table.LookupImplicit(cps[i])
		ces = append(ces, implicit[0], implicit[1])
		i++
	}
	return ces
}

// extend tries to lengthen the contraction ending at trie node `node` by
// unblocked non-starters following position end. Every codepoint consumed
// this way is removed from cps.
func (m matcher) extend(cps []rune, end int, node uint32, exp colltab.Expansion) (colltab.Expansion, []rune) {
	var skipped uint8 // combining class of the last skipped mark, 0 if none
	for j := end; j < len(cps) && m.table.HasEdges(node); {
		ccc := combiningClass(cps[j])
		if ccc == 0 {
			break
		}
		if skipped != 0 && skipped >= ccc {
			j++ // blocked
			continue
		}
		if child, ok := m.table.Step(node, cps[j]); ok {
			if e, ok := m.table.Terminal(child).Unwrap(); ok {
				tracer().Debugf("discontiguous match %U at %d", cps[j], j)
				node, exp = child, e
				cps = slices.Delete(cps, j, j+1)
				continue
			}
		}
		skipped = ccc
		j++
	}
	return exp, cps
}
