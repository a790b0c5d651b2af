/*
Package ucadata generates collation tables from the Unicode data files.

Input is the UCA file allkeys.txt (the DUCET), including its @version and
@implicitweights directives, and the property list PropList.txt, from which the
Unified_Ideograph ranges are taken. Output is a colltab.Builder, a table, or a
binary table artifact, which may be stored and loaded later with colltab.Load.
Regenerating the artifact is the way to move to a newer Unicode version.

The package embeds allkeys.txt of UCA 13.0.0 unchanged, together with the
Unified_Ideograph ranges of PropList.txt for the same version. Default returns
the table generated from these files.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ucadata

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'uca.data'
func tracer() tracing.Trace {
	return tracing.Select("uca.data")
}
