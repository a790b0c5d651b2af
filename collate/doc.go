/*
Package collate compares and sorts Unicode text by the Unicode Collation
Algorithm, using the default ordering of a collation table (package colltab).

The pipeline for an input string is

	decode → NFD → match collation elements → per-level weights → sort key

A Collator bundles a table, a Normalizer and Options. It holds no mutable
state, so a single Collator may be used from many goroutines at once. Every
call works on buffers of its own.

Variable weighting (the treatment of whitespace, punctuation and symbols) is
an explicit option: Shifted (the default), NonIgnorable or Blanked. Under
Shifted, variable characters are ignored on the first three levels and decide
only on a fourth, quaternary level.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package collate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'uca.collate'
func tracer() tracing.Trace {
	return tracing.Select("uca.collate")
}
