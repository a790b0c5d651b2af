package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/uca"
	"github.com/npillmayer/uca/collate"
	"github.com/npillmayer/uca/colltab"
	"github.com/npillmayer/uca/internal/ucatest"
	"github.com/npillmayer/uca/ucadata"
	"github.com/thatisuday/commando"
)

func runGenCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing("Info")
	src, closeAll, err := openSources(args["allkeys"].Value, args["proplist"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeAll()
	artifact, err := ucadata.GenerateArtifact(src)
	if err != nil {
		fatalf("generate: %v", err)
	}
	out := optString(flags["output"], "output")
	if err := os.WriteFile(out, artifact, 0o644); err != nil {
		fatalf("write artifact: %v", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", out, len(artifact))
}

func runCheckCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing("Error")
	table, err := checkTable(args["artifact"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(formatStats(table))
	if path := optString(flags["ordering"], "ordering"); path != "" {
		variable, err := collate.ParseVariableWeighting(optString(flags["variable"], "variable"))
		if err != nil {
			fatalf("%v", err)
		}
		coll, err := collate.New(table, collate.Options{Variable: variable})
		if err != nil {
			fatalf("%v", err)
		}
		n, err := checkOrdering(coll, path)
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("ordering file %s: %d lines in order\n", path, n)
	}
}

// checkTable loads an artifact file, or the embedded table for "-".
func checkTable(path string) (*colltab.Table, error) {
	if path == "" || path == "-" {
		return ucadata.Default()
	}
	return uca.LoadTable(path)
}

// checkOrdering verifies that consecutive lines of an ordering file are in
// non-decreasing collation order. It returns the number of lines checked.
func checkOrdering(coll *collate.Collator, path string) (int, error) {
	lines, err := ucatest.ParseFile(path)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(lines); i++ {
		r, err := coll.CompareRunes(lines[i-1].Runes, lines[i].Runes)
		if err != nil {
			return i, fmt.Errorf("line %d: %w", lines[i].No, err)
		}
		if r > 0 {
			return i, fmt.Errorf("line %d: [%s] sorts after [%s]", lines[i].No, lines[i-1], lines[i])
		}
	}
	return len(lines), nil
}

func formatStats(table *colltab.Table) string {
	s := table.Stats()
	return fmt.Sprintf("Unicode %s: %d elements, %d singles, %d trie nodes, %d contractions (longest %d), %d implicit ranges",
		table.Version(), s.Elements, s.Singles, s.TrieNodes, s.Contractions, s.LongestSequence, s.ImplicitRanges)
}
