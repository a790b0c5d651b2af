package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/npillmayer/uca/collate"
	"github.com/thatisuday/commando"
	"golang.org/x/sync/errgroup"
)

func runSortCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	coll, _ := collatorFromFlags(flags)
	var in io.Reader = os.Stdin
	if path := args["file"].Value; path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fatalf("%v", err)
		}
		defer f.Close()
		in = f
	}
	lines, err := readLines(in)
	if err != nil {
		fatalf("read input: %v", err)
	}
	sorted, keys, err := sortLines(coll, lines, mustFlagInt(flags["workers"], "workers"))
	if err != nil {
		fatalf("sort failed: %v", err)
	}
	withKeys := mustFlagBool(flags["keys"], "keys")
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for i, line := range sorted {
		if withKeys {
			fmt.Fprintf(out, "%s\t%s\n", keys[i].Hex(), line)
		} else {
			fmt.Fprintln(out, line)
		}
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// sortLines builds sort keys with up to `workers` goroutines sharing coll,
// then sorts stably by key. It returns the sorted lines with their keys.
func sortLines(coll *collate.Collator, lines []string, workers int) ([]string, []collate.SortKey, error) {
	if workers < 1 {
		workers = 1
	}
	keys := make([]collate.SortKey, len(lines))
	chunk := max(1, (len(lines)+workers-1)/workers)
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(lines); start += chunk {
		start := start
		end := min(start+chunk, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				k, err := coll.SortKey(lines[i])
				if err != nil {
					return fmt.Errorf("line %d: %w", i+1, err)
				}
				keys[i] = k
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	tracer().Debugf("built %d sort keys with %d workers", len(keys), workers)
	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return collate.CompareKeys(keys[a], keys[b])
	})
	sortedLines := make([]string, len(lines))
	sortedKeys := make([]collate.SortKey, len(lines))
	for i, j := range order {
		sortedLines[i], sortedKeys[i] = lines[j], keys[j]
	}
	return sortedLines, sortedKeys, nil
}
