package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/uca"
	"github.com/npillmayer/uca/collate"
	"github.com/npillmayer/uca/ucadata"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'uca.tools'
func tracer() tracing.Trace {
	return tracing.Select("uca.tools")
}

func main() {
	commando.
		SetExecutableName("uca-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for Unicode collation: comparing, sort keys, sorting and table artifacts.")

	commando.
		Register("compare").
		SetDescription("Compare two strings and print the result and the level at which they differ.").
		SetShortDescription("compare two strings").
		AddArgument("a", "first string", "").
		AddArgument("b", "second string", "").
		AddFlag("codepoints,c", "arguments are codepoints (comma/space separated, e.g. U+0061,U+0301)", commando.Bool, nil).
		AddFlag("config,C", "TOML config file", commando.String, "-").
		AddFlag("variable,w", "variable weighting: shifted|non-ignorable|blanked", commando.String, "-").
		AddFlag("strength,s", "comparison strength 1–4", commando.String, "-").
		AddFlag("discontiguous,d", "match discontiguous contractions", commando.Bool, nil).
		AddFlag("data,D", "collation table artifact instead of the embedded table", commando.String, "-").
		SetAction(runCompareCommand)

	commando.
		Register("key").
		SetDescription("Print the sort key of a string, optionally with its collation elements.").
		SetShortDescription("print sort key").
		AddArgument("text...", "text (variadic argument parts joined by comma by commando)", "").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0627,U+0644)", commando.String, "-").
		AddFlag("elements,e", "print collation elements with character names", commando.Bool, nil).
		AddFlag("config,C", "TOML config file", commando.String, "-").
		AddFlag("variable,w", "variable weighting: shifted|non-ignorable|blanked", commando.String, "-").
		AddFlag("strength,s", "comparison strength 1–4", commando.String, "-").
		AddFlag("discontiguous,d", "match discontiguous contractions", commando.Bool, nil).
		AddFlag("data,D", "collation table artifact instead of the embedded table", commando.String, "-").
		SetAction(runKeyCommand)

	commando.
		Register("sort").
		SetDescription("Sort the lines of a text file (or stdin) in collation order.").
		SetShortDescription("sort lines").
		AddArgument("file", "input file, '-' for stdin", "-").
		AddFlag("keys,k", "print the sort key before each line", commando.Bool, nil).
		AddFlag("workers,j", "number of concurrent key builders", commando.Int, 4).
		AddFlag("config,C", "TOML config file", commando.String, "-").
		AddFlag("variable,w", "variable weighting: shifted|non-ignorable|blanked", commando.String, "-").
		AddFlag("strength,s", "comparison strength 1–4", commando.String, "-").
		AddFlag("discontiguous,d", "match discontiguous contractions", commando.Bool, nil).
		AddFlag("data,D", "collation table artifact instead of the embedded table", commando.String, "-").
		SetAction(runSortCommand)

	commando.
		Register("gen").
		SetDescription("Generate a binary collation table artifact from allkeys.txt and PropList.txt.").
		SetShortDescription("generate table artifact").
		AddArgument("allkeys", "path of allkeys.txt ('-' for the embedded DUCET)", "-").
		AddArgument("proplist", "path of PropList.txt ('-' for the embedded ranges)", "-").
		AddFlag("output,o", "output artifact file", commando.String, "ducet.ucat").
		SetAction(runGenCommand)

	commando.
		Register("check").
		SetDescription("Load and validate a collation table artifact; optionally verify an ordering file.").
		SetShortDescription("validate table artifact").
		AddArgument("artifact", "artifact file ('-' for the embedded table)", "-").
		AddFlag("ordering,O", "ordering file in CollationTest format", commando.String, "-").
		AddFlag("variable,w", "variable weighting for the ordering file", commando.String, "shifted").
		SetAction(runCheckCommand)

	commando.Parse(nil)
}

// --- Common helpers --------------------------------------------------------

// collatorFromFlags reads the optional config file and lets flags override
// its values.
func collatorFromFlags(flags map[string]commando.FlagValue) (*collate.Collator, toolConfig) {
	cfg := defaultToolConfig()
	if path := optString(flags["config"], "config"); path != "" {
		var err error
		if cfg, err = loadToolConfig(path); err != nil {
			fatalf("%v", err)
		}
	}
	if err := cfg.overlayFlags(
		optString(flags["variable"], "variable"),
		optString(flags["strength"], "strength"),
		mustFlagBool(flags["discontiguous"], "discontiguous"),
		optString(flags["data"], "data"),
	); err != nil {
		fatalf("%v", err)
	}
	setupTracing(cfg.Trace)
	coll, err := newCollator(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	return coll, cfg
}

func newCollator(cfg toolConfig) (*collate.Collator, error) {
	if cfg.Data == "" {
		return uca.Default(cfg.Options)
	}
	table, err := uca.LoadTable(cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("load table %s: %w", cfg.Data, err)
	}
	return collate.New(table, cfg.Options)
}

// setupTracing configures the schuko tracers for all uca packages.
func setupTracing(level string) {
	if level == "" {
		level = "Error"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.uca":         level,
		"trace.uca.colltab": level,
		"trace.uca.data":    level,
		"trace.uca.collate": level,
		"trace.uca.tools":   level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// optString returns a string flag, with the placeholder "-" meaning unset.
func optString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "-" {
		return ""
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "uca-tools: "+format+"\n", args...)
	os.Exit(1)
}

// openSources returns the default table sources, replacing each one for
// which a path other than "-" is given.
func openSources(allkeys, proplist string) (ucadata.Sources, func(), error) {
	src := ucadata.DefaultSources()
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	open := func(path string, dst *io.Reader) error {
		if path == "" || path == "-" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		files = append(files, f)
		*dst = f
		return nil
	}
	if err := open(allkeys, &src.Allkeys); err != nil {
		closeAll()
		return src, nil, err
	}
	if err := open(proplist, &src.PropList); err != nil {
		closeAll()
		return src, nil, err
	}
	return src, closeAll, nil
}
