package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/uca/collate"
	"github.com/npillmayer/uca/colltab"
	"github.com/thatisuday/commando"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

func runKeyCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	coll, _ := collatorFromFlags(flags)
	text := args["text"].Value
	if cp := optString(flags["codepoints"], "codepoints"); cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			fatalf("%v", err)
		}
		text = string(runes)
	}
	key, err := coll.SortKey(text)
	if err != nil {
		fatalf("sort key failed: %v", err)
	}
	fmt.Println(key.Hex())
	if mustFlagBool(flags["elements"], "elements") {
		ces, err := coll.Elements(text)
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Print(formatCodepoints(text))
		fmt.Println(formatElements(ces))
		for i, level := range keyLevels(key) {
			fmt.Printf("L%d: %s\n", i+1, collate.SortKey(level).Hex())
		}
	}
}

// formatCodepoints lists the NFD codepoints of text with their names.
func formatCodepoints(text string) string {
	var sb strings.Builder
	for _, r := range norm.NFD.String(text) {
		fmt.Fprintf(&sb, "%U  %s\n", r, runeName(r))
	}
	return sb.String()
}

func formatElements(ces []colltab.Elem) string {
	var sb strings.Builder
	for _, ce := range ces {
		sb.WriteString(ce.String())
	}
	return sb.String()
}

func runeName(r rune) string {
	if name := runenames.Name(r); name != "" {
		return name
	}
	return "<unnamed>"
}

// keyLevels splits a sort key into its levels, for display.
func keyLevels(key collate.SortKey) [][]uint16 {
	levels := [][]uint16{{}}
	for _, w := range key {
		if w == 0 {
			levels = append(levels, []uint16{})
			continue
		}
		levels[len(levels)-1] = append(levels[len(levels)-1], w)
	}
	return levels
}
