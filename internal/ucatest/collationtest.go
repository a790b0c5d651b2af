// Package ucatest reads ordering files in the format of the Unicode
// CollationTest data: one string per line, written as hex codepoints and
// terminated by ';'. Consecutive lines are in non-decreasing collation order.
package ucatest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Line is one string of an ordering file.
type Line struct {
	No    int    // 1-based line number in the source
	Runes []rune // the codepoints of the line
}

func (l Line) String() string {
	parts := make([]string, len(l.Runes))
	for i, r := range l.Runes {
		parts[i] = fmt.Sprintf("%04X", r)
	}
	return strings.Join(parts, " ")
}

// ParseFile reads an ordering file from path.
func ParseFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an ordering file. Comment lines start with '#'; text after
// the ';' of a data line is ignored. Lines containing surrogate codepoints
// are skipped, as they cannot be represented as Go strings.
func Parse(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	no := 0
	for scanner.Scan() {
		no++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		data, _, found := strings.Cut(text, ";")
		if !found {
			return nil, fmt.Errorf("ordering file line %d: missing ';'", no)
		}
		fields := strings.Fields(data)
		if len(fields) == 0 {
			return nil, fmt.Errorf("ordering file line %d: no codepoints", no)
		}
		line := Line{No: no, Runes: make([]rune, 0, len(fields))}
		skip := false
		for _, f := range fields {
			n, err := strconv.ParseUint(f, 16, 32)
			if err != nil || n > 0x10FFFF {
				return nil, fmt.Errorf("ordering file line %d: invalid codepoint %q", no, f)
			}
			if utf16.IsSurrogate(rune(n)) {
				skip = true
				break
			}
			line.Runes = append(line.Runes, rune(n))
		}
		if !skip {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
