package colltab

// Bases for implicit weights as defined by UTS #10, section 10.1.
const (
	BaseTangut     uint16 = 0xFB00 // lowest base reserved for implicit weights
	BaseCoreHan    uint16 = 0xFB40 // Unified_Ideograph in the CJK Unified/Compatibility Ideographs blocks
	BaseOtherHan   uint16 = 0xFB80 // any other Unified_Ideograph
	BaseUnassigned uint16 = 0xFBC0 // everything without an explicit weight
)

// MaxCodepoint is the largest Unicode scalar value.
const MaxCodepoint rune = 0x10FFFF

// ImplicitRange covers codepoints without an explicit table entry. Primary
// weights are derived from the offset of a codepoint to BaseRangeStart, so
// relative codepoint order is kept within a range.
type ImplicitRange struct {
	Start          rune
	End            rune // inclusive
	Base           uint16
	BaseRangeStart rune
}

// FallbackRange is the generic implicit range for all codepoints without any
// other weight, including unassigned ones.
var FallbackRange = ImplicitRange{Start: 0, End: MaxCodepoint, Base: BaseUnassigned, BaseRangeStart: 0}

// Contains reports whether cp lies within r.
func (r ImplicitRange) Contains(cp rune) bool {
	return cp >= r.Start && cp <= r.End
}

// Primary returns the implicit primary of cp as a 32-bit value: the high half
// is the first primary weight (AAAA), the low half the second one (BBBB).
func (r ImplicitRange) Primary(cp rune) uint32 {
	aaaa, bbbb := r.weights(cp)
	return uint32(aaaa)<<16 | uint32(bbbb)
}

// Elems returns the pair of implicit collation elements for cp:
//
//	[.AAAA.0020.0002][.BBBB.0000.0000]
func (r ImplicitRange) Elems(cp rune) [2]Elem {
	aaaa, bbbb := r.weights(cp)
	return [2]Elem{
		{Primary: aaaa, Secondary: DefaultSecondary, Tertiary: DefaultTertiary},
		{Primary: bbbb},
	}
}

func (r ImplicitRange) weights(cp rune) (uint16, uint16) {
	offset := uint32(cp - r.BaseRangeStart)
	aaaa := uint16(uint32(r.Base) + offset>>15)
	bbbb := uint16(offset&0x7FFF | 0x8000)
	return aaaa, bbbb
}
