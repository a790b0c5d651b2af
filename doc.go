/*
Package uca compares and sorts Unicode text by the Unicode Collation
Algorithm (UTS #10) with the default ordering of the DUCET.

We stick to the following nomenclature:

▪︎ A "collation element" (CE) is a triple of weights (primary, secondary,
tertiary) assigned to a character or a sequence of characters. Primary
weights distinguish base letters, secondary weights accents, tertiary
weights case and variants.

▪︎ A "contraction" is a sequence of codepoints which collates as a unit,
e.g. Catalan "l·l" or Cyrillic "и" + breve.

▪︎ A "sort key" is the flattened sequence of weights for a string, level by
level. Comparing sort keys is the same as comparing strings.

▪︎ A "collation table" holds the CEs of the DUCET in a compact, read-only
layout. It is built once from allkeys.txt (package ucadata) and then
serialized to a binary artifact, from which it is loaded (package colltab).

Package uca offers convenience functions for the common case: comparing
strings or computing sort keys with the embedded default table. Clients who
compare many strings should create a collate.Collator once and re-use it.

# Status

The embedded table is the DUCET of UCA 13.0.0. Tables for other Unicode
versions may be generated from their allkeys.txt with uca-tools.
Tailorings (CLDR) are not supported.

# Links

Unicode Technical Standard #10:
https://www.unicode.org/reports/tr10/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package uca

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'uca'
func tracer() tracing.Trace {
	return tracing.Select("uca")
}
