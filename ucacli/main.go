package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/uca"
	"github.com/npillmayer/uca/collate"
	"github.com/npillmayer/uca/colltab"
	"github.com/npillmayer/uca/ucadata"
	"github.com/pterm/pterm"
)

// tracer traces with key 'uca.tools'
func tracer() tracing.Trace {
	return tracing.Select("uca.tools")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.uca.tools":   "Info",
		"trace.uca.colltab": "Error",
		"trace.uca.collate": "Error",
		"trace.uca.data":    "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	artifact := flag.String("data", "", "Collation table artifact to load (default: embedded table)")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)        // will set the correct level later
	pterm.Info.Println("Welcome to the Collation CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("uca > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load table to use
	if err := intp.loadTable(*artifact); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl  *readline.Instance
	table *colltab.Table
	opts  collate.Options
	coll  *collate.Collator
}

func (intp *Intp) String() string {
	if intp == nil || intp.table == nil {
		return "()"
	}
	return fmt.Sprintf("( Unicode %s, %s )", intp.table.Version(), intp.opts)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a single parsed REPL command.
type Op struct {
	code int
	args []string
}

const (
	QUIT int = iota
	HELP
	KEY
	COMPARE
	ELEMENTS
	OPTIONS
	STATS
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"key":     KEY,
	"cmp":     COMPARE,
	"compare": COMPARE,
	"ce":      ELEMENTS,
	"opt":     OPTIONS,
	"stats":   STATS,
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	KEY:      keyOp,
	COMPARE:  compareOp,
	ELEMENTS: elementsOp,
	OPTIONS:  optionsOp,
	STATS:    statsOp,
}

var errUnknownCommand = errors.New("unknown command, try 'help'")

// parseCommand splits line into an op-code and its arguments. Arguments are
// separated by white space; double-quoted arguments may contain spaces and
// Go escape sequences.
func parseCommand(line string) (*Op, error) {
	words, err := splitArgs(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errUnknownCommand
	}
	code, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownCommand, words[0])
	}
	tracer().Debugf("parsed command: %v", words)
	return &Op{code: code, args: words[1:]}, nil
}

func splitArgs(line string) ([]string, error) {
	var words []string
	for line = strings.TrimSpace(line); line != ""; line = strings.TrimSpace(line) {
		if line[0] != '"' {
			end := strings.IndexAny(line, " \t")
			if end < 0 {
				end = len(line)
			}
			words = append(words, line[:end])
			line = line[end:]
			continue
		}
		quoted, err := strconv.QuotedPrefix(line)
		if err != nil {
			return nil, fmt.Errorf("unterminated quoted argument: %s", line)
		}
		word, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
		line = line[len(quoted):]
	}
	return words, nil
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		return fmt.Errorf("unknown command code: %d", op.code), false
	}
	return f(intp, op)
}

// --- Table Loading ---------------------------------------------------------

func (intp *Intp) loadTable(artifact string) (err error) {
	if artifact == "" {
		intp.table, err = ucadata.Default()
	} else {
		intp.table, err = uca.LoadTable(artifact)
	}
	if err != nil {
		return err
	}
	pterm.Printf("collation table: %s\n", intp.table)
	return intp.setOptions(collate.Options{})
}

func (intp *Intp) setOptions(opts collate.Options) (err error) {
	coll, err := collate.New(intp.table, opts)
	if err != nil {
		return err
	}
	intp.opts, intp.coll = opts, coll
	return nil
}
