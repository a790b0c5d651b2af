package main

import (
	"fmt"

	"github.com/thatisuday/commando"
)

func runCompareCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	coll, _ := collatorFromFlags(flags)
	a, b := args["a"].Value, args["b"].Value
	if mustFlagBool(flags["codepoints"], "codepoints") {
		ra, err := parseCodepoints(a)
		if err != nil {
			fatalf("%v", err)
		}
		rb, err := parseCodepoints(b)
		if err != nil {
			fatalf("%v", err)
		}
		a, b = string(ra), string(rb)
	}
	r, level, err := coll.CompareLevel(a, b)
	if err != nil {
		fatalf("compare failed: %v", err)
	}
	fmt.Println(formatComparison(a, b, r, level.String()))
}

func formatComparison(a, b string, r int, level string) string {
	rel := "="
	switch {
	case r < 0:
		rel = "<"
	case r > 0:
		rel = ">"
	}
	if r == 0 {
		return fmt.Sprintf("%q %s %q", a, rel, b)
	}
	return fmt.Sprintf("%q %s %q (%s)", a, rel, b, level)
}
