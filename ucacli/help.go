package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	topic := ""
	if len(op.args) > 0 {
		topic = op.args[0]
	}
	help(topic)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "variable", "var", "opt":
		pterm.Info.Println("Variable weighting")
		pterm.Println(`
	Whitespace, punctuation and most symbols are "variable" collation elements.
	opt variable=shifted        ignore them on levels 1-3, decide on level 4 (default)
	opt variable=non-ignorable  treat them like letters
	opt variable=blanked        ignore them completely
	opt strength=1..4           compare only up to this level
	opt discontiguous=on|off    match contractions across unblocked marks
	`)
	case "key", "keys":
		pterm.Info.Println("Sort keys")
		pterm.Println(`
	A sort key lists the non-zero weights of each level, levels separated by 0000:
	+------------------+------+------------------+------+------------------+
	| primary weights  | 0000 | secondary weights| 0000 | tertiary weights |
	+------------------+------+------------------+------+------------------+
	Under shifted variable weighting, a fourth level follows.
	Comparing sort keys is the same as comparing the strings.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	key <text>          print the sort key of text
	cmp <a> <b>         compare two strings (use "..." for text with spaces)
	ce <text>           print codepoints and collation elements
	opt [name=value]    show or change options (help opt)
	stats               print table statistics
	quit                leave
	`)
	}
}
