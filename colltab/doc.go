/*
Package colltab holds the immutable lookup structures of the Unicode Collation
Algorithm: a sorted single-codepoint index, a contraction trie, flat collation
element arrays and the implicit-weight ranges.

A Table is never built by hand. Clients either load a binary artifact produced
at build time (see Load), or assemble one with a Builder (package ucadata does
this for the DUCET data files). All structures are parallel arrays addressed by
integer indices; there are no pointers between table entries, which keeps
lookups cache-friendly and makes a Table trivially safe for concurrent use.

Resolution of a codepoint is total: every scalar value resolves either through
the contraction trie, the single-codepoint index, or one of the implicit ranges
(with a fallback range covering whatever is left).

# Links

Unicode Technical Standard #10, Unicode Collation Algorithm:
https://www.unicode.org/reports/tr10/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package colltab

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'uca.colltab'
func tracer() tracing.Trace {
	return tracing.Select("uca.colltab")
}
