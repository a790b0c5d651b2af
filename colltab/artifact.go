package colltab

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// A table artifact is a big-endian binary blob:
//
//	header     magic 'UCAT' u32 | format u16 | unicode version 3×u8 | reserved u8 | section count u16
//	directory  section count × (tag u32 | offset u32 | length u32), sorted by tag
//	sections   'cewt' collation element weights
//	           'edge' trie edges
//	           'impl' implicit ranges (fallback first)
//	           'sngl' single-codepoint index
//	           'trie' trie nodes
//
// Every section starts with a u32 record count.

const (
	artifactMagic  uint32 = 0x55434154 // UCAT
	artifactFormat uint16 = 1
	headerSize            = 12
	dirEntrySize          = 12
)

// Section tags and record sizes.
const (
	tagCEWeights = "cewt"
	tagEdges     = "edge"
	tagImplicit  = "impl"
	tagSingles   = "sngl"
	tagTrie      = "trie"

	ceRecordSize     = 6
	edgeRecordSize   = 8
	implRecordSize   = 14
	singleRecordSize = 10
	nodeRecordSize   = 14
)

// sectionTags in directory order.
var sectionTags = []string{tagCEWeights, tagEdges, tagImplicit, tagSingles, tagTrie}

func makeTag(s string) uint32 {
	return binary.BigEndian.Uint32([]byte(s))
}

func tagString(t uint32) string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of artifact data.
type binarySegm []byte

// view returns n bytes at the given offset.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset > len(b) || n > len(b)-offset {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// --- Encoding --------------------------------------------------------------

// Artifact serializes t into its binary artifact form. Load(t.Artifact())
// yields a table equal to t.
func (t *Table) Artifact() []byte {
	sections := map[string][]byte{
		tagCEWeights: t.encodeWeights(),
		tagEdges:     t.encodeEdges(),
		tagImplicit:  t.encodeImplicits(),
		tagSingles:   t.encodeSingles(),
		tagTrie:      t.encodeNodes(),
	}
	size := headerSize + len(sectionTags)*dirEntrySize
	for _, s := range sections {
		size += len(s)
	}
	out := make([]byte, 0, size)
	out = binary.BigEndian.AppendUint32(out, artifactMagic)
	out = binary.BigEndian.AppendUint16(out, artifactFormat)
	out = append(out, t.version[0], t.version[1], t.version[2], 0)
	out = binary.BigEndian.AppendUint16(out, uint16(len(sectionTags)))
	offset := uint32(headerSize + len(sectionTags)*dirEntrySize)
	for _, tag := range sectionTags {
		out = binary.BigEndian.AppendUint32(out, makeTag(tag))
		out = binary.BigEndian.AppendUint32(out, offset)
		out = binary.BigEndian.AppendUint32(out, uint32(len(sections[tag])))
		offset += uint32(len(sections[tag]))
	}
	for _, tag := range sectionTags {
		out = append(out, sections[tag]...)
	}
	return out
}

func (t *Table) encodeWeights() []byte {
	b := make([]byte, 0, 4+ceRecordSize*len(t.primary))
	b = binary.BigEndian.AppendUint32(b, uint32(len(t.primary)))
	for i := range t.primary {
		b = binary.BigEndian.AppendUint16(b, t.primary[i])
		b = binary.BigEndian.AppendUint16(b, t.secondary[i])
		b = binary.BigEndian.AppendUint16(b, t.tertiary[i])
	}
	return b
}

func (t *Table) encodeEdges() []byte {
	b := make([]byte, 0, 4+edgeRecordSize*len(t.edgeCP))
	b = binary.BigEndian.AppendUint32(b, uint32(len(t.edgeCP)))
	for i := range t.edgeCP {
		b = binary.BigEndian.AppendUint32(b, uint32(t.edgeCP[i]))
		b = binary.BigEndian.AppendUint32(b, t.edgeChild[i])
	}
	return b
}

func appendRange(b []byte, r ImplicitRange) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(r.Start))
	b = binary.BigEndian.AppendUint32(b, uint32(r.End))
	b = binary.BigEndian.AppendUint16(b, r.Base)
	return binary.BigEndian.AppendUint32(b, uint32(r.BaseRangeStart))
}

func (t *Table) encodeImplicits() []byte {
	b := make([]byte, 0, 4+implRecordSize*(len(t.implicits)+1))
	b = binary.BigEndian.AppendUint32(b, uint32(len(t.implicits)))
	b = appendRange(b, t.fallback)
	for _, r := range t.implicits {
		b = appendRange(b, r)
	}
	return b
}

func (t *Table) encodeSingles() []byte {
	b := make([]byte, 0, 4+singleRecordSize*len(t.singleCP))
	b = binary.BigEndian.AppendUint32(b, uint32(len(t.singleCP)))
	for i := range t.singleCP {
		b = binary.BigEndian.AppendUint32(b, uint32(t.singleCP[i]))
		b = binary.BigEndian.AppendUint32(b, t.singleExp[i].Index)
		b = binary.BigEndian.AppendUint16(b, t.singleExp[i].Len)
	}
	return b
}

func (t *Table) encodeNodes() []byte {
	b := make([]byte, 0, 4+nodeRecordSize*len(t.nodes))
	b = binary.BigEndian.AppendUint32(b, uint32(len(t.nodes)))
	for _, n := range t.nodes {
		b = binary.BigEndian.AppendUint32(b, n.edgeStart)
		b = binary.BigEndian.AppendUint32(b, n.edgeCount)
		b = binary.BigEndian.AppendUint32(b, n.exp.Index)
		b = binary.BigEndian.AppendUint16(b, n.exp.Len)
	}
	return b
}

// --- Decoding --------------------------------------------------------------

// sectionOffsets records where each section starts, for error reporting.
type sectionOffsets map[string]uint32

// Load decodes a binary table artifact and checks it for internal consistency.
// It fails with an error matching ErrTableCorruption if trie edges are not
// sorted per node, implicit ranges overlap, or any expansion addresses the
// collation element arrays out of bounds (amongst other checks).
//
// The returned table does not reference artifact; callers may reuse the buffer.
func Load(artifact []byte) (*Table, error) {
	src := binarySegm(artifact)
	if len(src) < headerSize {
		return nil, corrupt("header", 0, "artifact too short: %d bytes", len(src))
	}
	if magic := u32(src); magic != artifactMagic {
		return nil, corrupt("header", 0, "bad magic number %08x", magic)
	}
	if f := u16(src[4:]); f != artifactFormat {
		return nil, corrupt("header", 4, "unsupported artifact format %d", f)
	}
	t := &Table{version: [3]uint8{src[6], src[7], src[8]}}
	count := int(u16(src[10:]))
	dir, err := src.view(headerSize, count*dirEntrySize)
	if err != nil {
		return nil, corrupt("header", headerSize, "section directory truncated")
	}
	sections := make(map[string]binarySegm, count)
	offsets := make(sectionOffsets, count)
	var prevTag uint32
	for i := 0; i < count; i++ {
		rec := dir[i*dirEntrySize:]
		tag, off, length := u32(rec), u32(rec[4:]), u32(rec[8:])
		if i > 0 && tag <= prevTag {
			return nil, corrupt("header", uint32(headerSize+i*dirEntrySize), "section directory not sorted at %q", tagString(tag))
		}
		prevTag = tag
		seg, err := src.view(int(off), int(length))
		if err != nil {
			return nil, corrupt(tagString(tag), off, "section exceeds artifact (length %d)", length)
		}
		sections[tagString(tag)] = seg
		offsets[tagString(tag)] = off
	}
	tracer().Debugf("artifact: Unicode %s, %d sections", t.Version(), count)
	for _, tag := range sectionTags {
		if _, ok := sections[tag]; !ok {
			return nil, corrupt(tag, 0, "missing section")
		}
	}
	if err := t.decodeWeights(sections[tagCEWeights], offsets[tagCEWeights]); err != nil {
		return nil, err
	}
	if err := t.decodeEdges(sections[tagEdges], offsets[tagEdges]); err != nil {
		return nil, err
	}
	if err := t.decodeImplicits(sections[tagImplicit], offsets[tagImplicit]); err != nil {
		return nil, err
	}
	if err := t.decodeSingles(sections[tagSingles], offsets[tagSingles]); err != nil {
		return nil, err
	}
	if err := t.decodeNodes(sections[tagTrie], offsets[tagTrie]); err != nil {
		return nil, err
	}
	if err := t.validate(offsets); err != nil {
		return nil, err
	}
	tracer().Infof("loaded collation table for Unicode %s: %+v", t.Version(), t.Stats())
	return t, nil
}

// records checks the record count of a section against its length and
// returns the record bytes.
func records(seg binarySegm, tag string, off uint32, recSize int) (int, binarySegm, error) {
	if len(seg) < 4 {
		return 0, nil, corrupt(tag, off, "section too short")
	}
	n := int(u32(seg))
	if n > (len(seg)-4)/recSize {
		return 0, nil, corrupt(tag, off, "section truncated: %d records of %d bytes announced", n, recSize)
	}
	body, err := seg.view(4, n*recSize)
	if err != nil {
		return 0, nil, corrupt(tag, off, "section truncated: %v", err)
	}
	return n, body, nil
}

func (t *Table) decodeWeights(seg binarySegm, off uint32) error {
	n, body, err := records(seg, tagCEWeights, off, ceRecordSize)
	if err != nil {
		return err
	}
	t.primary = make([]uint16, n)
	t.secondary = make([]uint16, n)
	t.tertiary = make([]uint16, n)
	for i := 0; i < n; i++ {
		rec := body[i*ceRecordSize:]
		t.primary[i], t.secondary[i], t.tertiary[i] = u16(rec), u16(rec[2:]), u16(rec[4:])
	}
	return nil
}

func (t *Table) decodeEdges(seg binarySegm, off uint32) error {
	n, body, err := records(seg, tagEdges, off, edgeRecordSize)
	if err != nil {
		return err
	}
	t.edgeCP = make([]rune, n)
	t.edgeChild = make([]uint32, n)
	for i := 0; i < n; i++ {
		rec := body[i*edgeRecordSize:]
		t.edgeCP[i], t.edgeChild[i] = rune(u32(rec)), u32(rec[4:])
	}
	return nil
}

func readRange(rec []byte) ImplicitRange {
	return ImplicitRange{
		Start:          rune(u32(rec)),
		End:            rune(u32(rec[4:])),
		Base:           u16(rec[8:]),
		BaseRangeStart: rune(u32(rec[10:])),
	}
}

func (t *Table) decodeImplicits(seg binarySegm, off uint32) error {
	if len(seg) < 4+implRecordSize {
		return corrupt(tagImplicit, off, "fallback range missing")
	}
	// the record count does not include the fallback record in front
	n := int(u32(seg))
	if n > (len(seg)-4-implRecordSize)/implRecordSize {
		return corrupt(tagImplicit, off, "section truncated: %d ranges announced", n)
	}
	t.fallback = readRange(seg[4:])
	body := seg[4+implRecordSize:]
	t.implicits = make([]ImplicitRange, n)
	for i := 0; i < n; i++ {
		t.implicits[i] = readRange(body[i*implRecordSize:])
	}
	return nil
}

func (t *Table) decodeSingles(seg binarySegm, off uint32) error {
	n, body, err := records(seg, tagSingles, off, singleRecordSize)
	if err != nil {
		return err
	}
	t.singleCP = make([]rune, n)
	t.singleExp = make([]Expansion, n)
	for i := 0; i < n; i++ {
		rec := body[i*singleRecordSize:]
		t.singleCP[i] = rune(u32(rec))
		t.singleExp[i] = Expansion{Index: u32(rec[4:]), Len: u16(rec[8:])}
	}
	return nil
}

func (t *Table) decodeNodes(seg binarySegm, off uint32) error {
	n, body, err := records(seg, tagTrie, off, nodeRecordSize)
	if err != nil {
		return err
	}
	t.nodes = make([]trieNode, n)
	for i := 0; i < n; i++ {
		rec := body[i*nodeRecordSize:]
		t.nodes[i] = trieNode{
			edgeStart: u32(rec),
			edgeCount: u32(rec[4:]),
			exp:       Expansion{Index: u32(rec[8:]), Len: u16(rec[12:])},
		}
	}
	return nil
}

// --- Validation ------------------------------------------------------------

func recordOffset(offsets sectionOffsets, tag string, i int, recSize int) uint32 {
	base, ok := offsets[tag]
	if !ok {
		return 0
	}
	return base + 4 + uint32(i*recSize)
}

func validCodepoint(cp rune) bool {
	return cp >= 0 && cp <= MaxCodepoint && (cp < 0xD800 || cp > 0xDFFF)
}

// validate checks the internal consistency of t. offsets may be nil for
// tables which have not been decoded from an artifact.
func (t *Table) validate(offsets sectionOffsets) error {
	nce := uint64(len(t.primary))
	if len(t.secondary) != len(t.primary) || len(t.tertiary) != len(t.primary) {
		return corrupt(tagCEWeights, 0, "weight arrays differ in length")
	}
	inBounds := func(exp Expansion) bool {
		return uint64(exp.Index)+uint64(exp.Len) <= nce
	}
	// single-codepoint index
	if len(t.singleExp) != len(t.singleCP) {
		return corrupt(tagSingles, 0, "index arrays differ in length")
	}
	for i, cp := range t.singleCP {
		if !validCodepoint(cp) {
			return corrupt(tagSingles, recordOffset(offsets, tagSingles, i, singleRecordSize), "invalid codepoint %#x", cp)
		}
		if i > 0 && cp <= t.singleCP[i-1] {
			return corrupt(tagSingles, recordOffset(offsets, tagSingles, i, singleRecordSize), "codepoints not ascending at U+%04X", cp)
		}
		if !inBounds(t.singleExp[i]) {
			return corrupt(tagSingles, recordOffset(offsets, tagSingles, i, singleRecordSize),
				"expansion %+v for U+%04X exceeds %d collation elements", t.singleExp[i], cp, nce)
		}
	}
	// contraction trie
	if len(t.edgeChild) != len(t.edgeCP) {
		return corrupt(tagEdges, 0, "edge arrays differ in length")
	}
	nedges := uint64(len(t.edgeCP))
	depth := make([]int, len(t.nodes))
	t.maxContraction = 0
	for i, n := range t.nodes {
		at := recordOffset(offsets, tagTrie, i, nodeRecordSize)
		if uint64(n.edgeStart)+uint64(n.edgeCount) > nedges {
			return corrupt(tagTrie, at, "node %d: edges [%d+%d] exceed %d edges", i, n.edgeStart, n.edgeCount, nedges)
		}
		if !inBounds(n.exp) {
			return corrupt(tagTrie, at, "node %d: expansion %+v exceeds %d collation elements", i, n.exp, nce)
		}
		for e := n.edgeStart; e < n.edgeStart+n.edgeCount; e++ {
			eat := recordOffset(offsets, tagEdges, int(e), edgeRecordSize)
			if !validCodepoint(t.edgeCP[e]) {
				return corrupt(tagEdges, eat, "node %d: invalid edge codepoint %#x", i, t.edgeCP[e])
			}
			if e > n.edgeStart && t.edgeCP[e] <= t.edgeCP[e-1] {
				return corrupt(tagEdges, eat, "node %d: edges not sorted at U+%04X", i, t.edgeCP[e])
			}
			// children are stored after their parents, which rules out cycles
			child := t.edgeChild[e]
			if int(child) >= len(t.nodes) || child <= uint32(i) {
				return corrupt(tagEdges, eat, "node %d: invalid child index %d", i, child)
			}
			depth[child] = depth[i] + 1
			if depth[child] > t.maxContraction {
				t.maxContraction = depth[child]
			}
		}
	}
	// implicit ranges
	if err := checkRange(t.fallback, -1, offsets); err != nil {
		return err
	}
	if t.fallback.Start != 0 || t.fallback.End != MaxCodepoint {
		return corrupt(tagImplicit, recordOffset(offsets, tagImplicit, 0, implRecordSize),
			"fallback range %04X..%04X does not cover all codepoints", t.fallback.Start, t.fallback.End)
	}
	for i, r := range t.implicits {
		if err := checkRange(r, i, offsets); err != nil {
			return err
		}
		if i > 0 && r.Start <= t.implicits[i-1].End {
			return corrupt(tagImplicit, recordOffset(offsets, tagImplicit, i+1, implRecordSize),
				"range %04X..%04X overlaps or precedes %04X..%04X", r.Start, r.End, t.implicits[i-1].Start, t.implicits[i-1].End)
		}
	}
	return nil
}

func checkRange(r ImplicitRange, i int, offsets sectionOffsets) error {
	at := recordOffset(offsets, tagImplicit, i+1, implRecordSize)
	if r.Start < 0 || r.End > MaxCodepoint || r.Start > r.End {
		return corrupt(tagImplicit, at, "invalid range %04X..%04X", r.Start, r.End)
	}
	if r.BaseRangeStart < 0 || r.BaseRangeStart > r.Start {
		return corrupt(tagImplicit, at, "range %04X..%04X: base range start %04X behind range start", r.Start, r.End, r.BaseRangeStart)
	}
	if uint32(r.Base)+uint32(r.End-r.BaseRangeStart)>>15 > 0xFFFF {
		return corrupt(tagImplicit, at, "range %04X..%04X: implicit weights overflow base %04X", r.Start, r.End, r.Base)
	}
	return nil
}

// String returns a short description of t.
func (t *Table) String() string {
	st := t.Stats()
	return fmt.Sprintf("colltab.Table{Unicode %s, %d elements, %d singles, %d trie nodes}",
		t.Version(), st.Elements, st.Singles, st.TrieNodes)
}
