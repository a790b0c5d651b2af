package collate

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalizer produces the canonical decomposition (NFD) of a codepoint
// sequence. The collation matcher requires its input in NFD; two inputs with
// identical NFD compare equal.
//
// Implementations must not modify their argument.
type Normalizer interface {
	NFD(cps []rune) []rune
}

// NFD is the default Normalizer, backed by golang.org/x/text/unicode/norm.
var NFD Normalizer = xtextNFD{}

type xtextNFD struct{}

func (xtextNFD) NFD(cps []rune) []rune {
	s := string(cps)
	if norm.NFD.IsNormalString(s) {
		return cps
	}
	return []rune(norm.NFD.String(s))
}

// combiningClass returns the canonical combining class of r.
func combiningClass(r rune) uint8 {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return norm.NFD.Properties(buf[:n]).CCC()
}
