package ucadata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/uca/colltab"
)

// ParseError reports a malformed line in one of the Unicode data files.
type ParseError struct {
	Source string // "allkeys" or "proplist"
	Line   int
	Issue  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Issue)
}

// Version is a Unicode version as stated by @version in allkeys.txt.
type Version struct {
	Major, Minor, Update uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Update)
}

// ParseAllkeys reads DUCET entries in allkeys.txt format and adds them to b.
//
//	@version 13.0.0
//	@implicitweights 17000..18AFF; FB00 # Tangut and Tangut Components
//	0061  ; [.1FA2.0020.0002] # LATIN SMALL LETTER A
//	006C 00B7 ; [.20D6.0020.0002][.0000.0118.0002] # ...
//
// Implicit-weight ranges sharing a base are offset from the start of the first
// range with that base. Explicit entries may carry primaries from the implicit
// weight space, as DUCET does for Kangxi radicals and compatibility ideographs.
func ParseAllkeys(r io.Reader, b *colltab.Builder) (Version, error) {
	var version Version
	baseStart := make(map[uint16]rune)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	lineno := 0
	entries := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		perr := func(format string, args ...any) error {
			return &ParseError{Source: "allkeys", Line: lineno, Issue: fmt.Sprintf(format, args...)}
		}
		switch {
		case strings.HasPrefix(line, "@version"):
			v, err := parseVersion(strings.TrimSpace(strings.TrimPrefix(line, "@version")))
			if err != nil {
				return version, perr("%v", err)
			}
			version = v
			b.SetVersion(v.Major, v.Minor, v.Update)
		case strings.HasPrefix(line, "@implicitweights"):
			rng, base, err := parseImplicitWeights(strings.TrimPrefix(line, "@implicitweights"))
			if err != nil {
				return version, perr("%v", err)
			}
			if _, ok := baseStart[base]; !ok {
				baseStart[base] = rng[0]
			}
			err = b.AddImplicitRange(colltab.ImplicitRange{
				Start:          rng[0],
				End:            rng[1],
				Base:           base,
				BaseRangeStart: baseStart[base],
			})
			if err != nil {
				return version, perr("%v", err)
			}
		case strings.HasPrefix(line, "@"):
			tracer().Debugf("allkeys:%d: ignoring directive %q", lineno, line)
		default:
			cps, ces, err := parseEntry(line)
			if err != nil {
				return version, perr("%v", err)
			}
			if err := b.AddContraction(cps, ces); err != nil {
				return version, perr("%v", err)
			}
			entries++
		}
	}
	if err := scanner.Err(); err != nil {
		return version, fmt.Errorf("reading allkeys: %w", err)
	}
	tracer().Debugf("allkeys: %d entries for Unicode %s", entries, version)
	return version, nil
}

func parseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("malformed version %q", s)
	}
	var nums [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return Version{}, fmt.Errorf("malformed version %q", s)
		}
		nums[i] = uint8(n)
	}
	return Version{Major: nums[0], Minor: nums[1], Update: nums[2]}, nil
}

// parseImplicitWeights parses " 17000..18AFF; FB00".
func parseImplicitWeights(s string) ([2]rune, uint16, error) {
	fields := strings.Split(s, ";")
	if len(fields) != 2 {
		return [2]rune{}, 0, fmt.Errorf("malformed @implicitweights %q", s)
	}
	rng, err := parseRange(fields[0])
	if err != nil {
		return rng, 0, err
	}
	base, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 16, 16)
	if err != nil {
		return rng, 0, fmt.Errorf("malformed implicit base %q", fields[1])
	}
	return rng, uint16(base), nil
}

// parseRange parses "4E00..9FFF" or a single codepoint "FA11".
func parseRange(s string) ([2]rune, error) {
	s = strings.TrimSpace(s)
	from, to, isRange := strings.Cut(s, "..")
	start, err := parseCodepoint(from)
	if err != nil {
		return [2]rune{}, err
	}
	end := start
	if isRange {
		if end, err = parseCodepoint(to); err != nil {
			return [2]rune{}, err
		}
	}
	if end < start {
		return [2]rune{}, fmt.Errorf("inverted range %q", s)
	}
	return [2]rune{start, end}, nil
}

func parseCodepoint(s string) (rune, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil || n > uint64(colltab.MaxCodepoint) {
		return 0, fmt.Errorf("malformed codepoint %q", s)
	}
	return rune(n), nil
}

// parseEntry parses "006C 00B7 ; [.20D6.0020.0002][.0000.0118.0002]".
func parseEntry(line string) ([]rune, []colltab.Elem, error) {
	left, right, ok := strings.Cut(line, ";")
	if !ok {
		return nil, nil, fmt.Errorf("missing ';' in entry")
	}
	var cps []rune
	for _, f := range strings.Fields(left) {
		cp, err := parseCodepoint(f)
		if err != nil {
			return nil, nil, err
		}
		cps = append(cps, cp)
	}
	if len(cps) == 0 {
		return nil, nil, fmt.Errorf("entry without codepoints")
	}
	ces, err := parseElems(strings.TrimSpace(right))
	if err != nil {
		return nil, nil, err
	}
	return cps, ces, nil
}

// parseElems parses a sequence of collation elements in allkeys notation,
// "[.p.s.t]" or "[*p.s.t]". Older files carry a fourth weight, which is ignored.
func parseElems(s string) ([]colltab.Elem, error) {
	var ces []colltab.Elem
	for len(s) > 0 {
		if s[0] != '[' {
			return nil, fmt.Errorf("expected '[' at %q", s)
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated collation element %q", s)
		}
		body := s[1:end]
		s = strings.TrimSpace(s[end+1:])
		if len(body) < 1 || (body[0] != '.' && body[0] != '*') {
			return nil, fmt.Errorf("collation element %q lacks '.' or '*' marker", body)
		}
		variable := body[0] == '*'
		weights := strings.Split(body[1:], ".")
		if len(weights) < 3 || len(weights) > 4 {
			return nil, fmt.Errorf("collation element %q needs 3 weights", body)
		}
		var w [3]uint16
		for i := 0; i < 3; i++ {
			n, err := strconv.ParseUint(weights[i], 16, 16)
			if err != nil {
				return nil, fmt.Errorf("malformed weight %q", weights[i])
			}
			w[i] = uint16(n)
		}
		if w[2]&colltab.VariableBit != 0 {
			return nil, fmt.Errorf("tertiary weight %04X out of range", w[2])
		}
		ces = append(ces, colltab.MakeElem(w[0], w[1], w[2], variable))
	}
	if len(ces) == 0 {
		return nil, fmt.Errorf("entry without collation elements")
	}
	return ces, nil
}

// ParseUnifiedIdeographs extracts the ranges with property Unified_Ideograph
// from a file in PropList.txt format. Other properties are skipped.
func ParseUnifiedIdeographs(r io.Reader) ([][2]rune, error) {
	var ranges [][2]rune
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cps, prop, ok := strings.Cut(line, ";")
		if !ok {
			return nil, &ParseError{Source: "proplist", Line: lineno, Issue: "missing ';'"}
		}
		if strings.TrimSpace(prop) != "Unified_Ideograph" {
			continue
		}
		rng, err := parseRange(cps)
		if err != nil {
			return nil, &ParseError{Source: "proplist", Line: lineno, Issue: err.Error()}
		}
		ranges = append(ranges, rng)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading proplist: %w", err)
	}
	return ranges, nil
}
