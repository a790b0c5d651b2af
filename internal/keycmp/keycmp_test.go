package keycmp

import (
	"testing"

	"github.com/npillmayer/uca/ucadata"
)

func TestSortKeyFixtures(t *testing.T) {
	fixtures, err := loadFixtures("testdata")
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Fatalf("no keycmp fixtures found in testdata")
	}
	table := ucadata.MustDefault()
	for _, fx := range fixtures {
		t.Run(fx.Name, func(t *testing.T) {
			mismatches, err := checkFixture(table, fx)
			if err != nil {
				t.Fatalf("check fixture: %v", err)
			}
			for _, m := range mismatches {
				t.Error(m)
			}
		})
	}
}
