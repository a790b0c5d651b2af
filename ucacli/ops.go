package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/uca/collate"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

var errArgCount = errors.New("wrong number of arguments")

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func keyOp(intp *Intp, op *Op) (error, bool) {
	if len(op.args) == 0 {
		return errArgCount, false
	}
	text := strings.Join(op.args, " ")
	key, err := intp.coll.SortKey(text)
	if err != nil {
		return err, false
	}
	pterm.Printf("%s\n", key.Hex())
	pterm.Printf("%s\n", key.String())
	return nil, false
}

func compareOp(intp *Intp, op *Op) (error, bool) {
	if len(op.args) != 2 {
		return errArgCount, false
	}
	r, level, err := intp.coll.CompareLevel(op.args[0], op.args[1])
	if err != nil {
		return err, false
	}
	switch {
	case r < 0:
		pterm.Printf("%q < %q at %s level\n", op.args[0], op.args[1], level)
	case r > 0:
		pterm.Printf("%q > %q at %s level\n", op.args[0], op.args[1], level)
	default:
		pterm.Printf("%q = %q\n", op.args[0], op.args[1])
	}
	return nil, false
}

func elementsOp(intp *Intp, op *Op) (error, bool) {
	if len(op.args) == 0 {
		return errArgCount, false
	}
	text := strings.Join(op.args, " ")
	ces, err := intp.coll.Elements(text)
	if err != nil {
		return err, false
	}
	data := [][]string{
		{"Codepoint", "Name"},
	}
	for _, r := range norm.NFD.String(text) {
		name := runenames.Name(r)
		if name == "" {
			name = "<unnamed>"
		}
		data = append(data, []string{fmt.Sprintf("%U", r), name})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	data = [][]string{
		{"#", "Element", "Variable"},
	}
	for i, ce := range ces {
		data = append(data, []string{fmt.Sprintf("%d", i), ce.String(), fmt.Sprintf("%v", ce.IsVariable())})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// optionsOp changes collator options, e.g. "opt variable=blanked strength=2".
// Without arguments it prints the current options.
func optionsOp(intp *Intp, op *Op) (error, bool) {
	if len(op.args) == 0 {
		pterm.Printf("%s\n", intp.opts)
		return nil, false
	}
	opts, err := parseOptions(intp.opts, op.args)
	if err != nil {
		return err, false
	}
	if err := intp.setOptions(opts); err != nil {
		return err, false
	}
	tracer().Infof("options set to %s", opts)
	return nil, false
}

func parseOptions(opts collate.Options, args []string) (collate.Options, error) {
	var err error
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return opts, fmt.Errorf("%w: option %q: expected name=value", collate.ErrInvalidOption, arg)
		}
		switch strings.ToLower(name) {
		case "variable", "var":
			opts.Variable, err = collate.ParseVariableWeighting(value)
		case "strength", "level":
			opts.Strength, err = collate.ParseLevel(value)
		case "discontiguous", "disc":
			switch strings.ToLower(value) {
			case "on", "true", "1":
				opts.Discontiguous = true
			case "off", "false", "0":
				opts.Discontiguous = false
			default:
				err = fmt.Errorf("%w: discontiguous %q", collate.ErrInvalidOption, value)
			}
		default:
			err = fmt.Errorf("%w: unknown option %q", collate.ErrInvalidOption, name)
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func statsOp(intp *Intp, op *Op) (error, bool) {
	s := intp.table.Stats()
	data := [][]string{
		{"Property", "Value"},
		{"Unicode version", intp.table.Version()},
		{"Collation elements", fmt.Sprintf("%d", s.Elements)},
		{"Single codepoints", fmt.Sprintf("%d", s.Singles)},
		{"Trie nodes", fmt.Sprintf("%d", s.TrieNodes)},
		{"Contractions", fmt.Sprintf("%d", s.Contractions)},
		{"Longest sequence", fmt.Sprintf("%d", s.LongestSequence)},
		{"Implicit ranges", fmt.Sprintf("%d", s.ImplicitRanges)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}
