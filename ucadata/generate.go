package ucadata

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/uca/colltab"
)

// allkeysData is allkeys.txt of UCA 13.0.0.
//
//go:embed data/allkeys.txt
var allkeysData []byte

// proplistData holds the Unified_Ideograph lines of PropList.txt 13.0.0.
//
//go:embed data/proplist.txt
var proplistData []byte

// coreHanBlocks are the blocks CJK Unified Ideographs and CJK Compatibility
// Ideographs. Unified ideographs within them receive implicit weights with base
// FB40, all other unified ideographs use base FB80.
var coreHanBlocks = [][2]rune{
	{0x4E00, 0x9FFF},
	{0xF900, 0xFAFF},
}

// Sources bundles the input files for table generation.
type Sources struct {
	Allkeys  io.Reader // allkeys.txt
	PropList io.Reader // PropList.txt (or any file listing Unified_Ideograph ranges)
}

// DefaultSources returns readers for the embedded data files.
func DefaultSources() Sources {
	return Sources{
		Allkeys:  bytes.NewReader(allkeysData),
		PropList: bytes.NewReader(proplistData),
	}
}

// NewBuilder parses the source files and returns a builder holding all
// entries, ready to produce a table or an artifact.
func NewBuilder(src Sources) (*colltab.Builder, Version, error) {
	if src.Allkeys == nil || src.PropList == nil {
		return nil, Version{}, fmt.Errorf("ucadata: both allkeys and proplist sources are required")
	}
	b := colltab.NewBuilder()
	version, err := ParseAllkeys(src.Allkeys, b)
	if err != nil {
		return nil, version, err
	}
	ideographs, err := ParseUnifiedIdeographs(src.PropList)
	if err != nil {
		return nil, version, err
	}
	if err := AddUnifiedIdeographs(b, ideographs); err != nil {
		return nil, version, err
	}
	return b, version, nil
}

// Generate builds a collation table from the source files.
func Generate(src Sources) (*colltab.Table, error) {
	b, _, err := NewBuilder(src)
	if err != nil {
		return nil, err
	}
	return b.Table()
}

// GenerateArtifact builds the binary table artifact from the source files.
func GenerateArtifact(src Sources) ([]byte, error) {
	b, version, err := NewBuilder(src)
	if err != nil {
		return nil, err
	}
	artifact, err := b.Artifact()
	if err != nil {
		return nil, err
	}
	tracer().Infof("generated table artifact for Unicode %s, %d bytes", version, len(artifact))
	return artifact, nil
}

// AddUnifiedIdeographs registers implicit ranges for Unified_Ideograph
// codepoints. Ranges are split at the borders of the core Han blocks, as
// those receive a lower base than other ideographs.
func AddUnifiedIdeographs(b *colltab.Builder, ranges [][2]rune) error {
	for _, rng := range ranges {
		for _, piece := range splitAtCoreHan(rng) {
			if err := b.AddImplicitRange(piece); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitAtCoreHan(rng [2]rune) []colltab.ImplicitRange {
	var pieces []colltab.ImplicitRange
	for cp := rng[0]; cp <= rng[1]; {
		end, base := rng[1], colltab.BaseOtherHan
		for _, block := range coreHanBlocks {
			if cp >= block[0] && cp <= block[1] {
				end, base = min(rng[1], block[1]), colltab.BaseCoreHan
				break
			}
			if cp < block[0] && block[0] <= end {
				end = block[0] - 1
			}
		}
		pieces = append(pieces, colltab.ImplicitRange{Start: cp, End: end, Base: base})
		cp = end + 1
	}
	return pieces
}

var defaultTable struct {
	once  sync.Once
	table *colltab.Table
	err   error
}

// Default returns the table for the embedded DUCET. The table is
// generated into an artifact and loaded from it once per process; subsequent
// calls return the same immutable table.
func Default() (*colltab.Table, error) {
	defaultTable.once.Do(func() {
		artifact, err := GenerateArtifact(DefaultSources())
		if err != nil {
			defaultTable.err = fmt.Errorf("ucadata: generating default table: %w", err)
			return
		}
		defaultTable.table, defaultTable.err = colltab.Load(artifact)
	})
	return defaultTable.table, defaultTable.err
}

// MustDefault is like Default, but panics if the embedded data cannot be
// turned into a table.
func MustDefault() *colltab.Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}
