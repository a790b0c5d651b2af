package collate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOption is returned for option values outside their enumeration.
var ErrInvalidOption = errors.New("invalid collation option")

// VariableWeighting governs how variable collation elements (whitespace,
// punctuation, symbols) take part in comparison.
type VariableWeighting uint8

const (
	// Shifted ignores variable elements on levels 1–3 and moves their primary
	// weight to the quaternary level. This is the default.
	Shifted VariableWeighting = iota
	// NonIgnorable treats variable elements like any other element.
	NonIgnorable
	// Blanked ignores variable elements completely.
	Blanked
)

func (v VariableWeighting) String() string {
	switch v {
	case Shifted:
		return "shifted"
	case NonIgnorable:
		return "non-ignorable"
	case Blanked:
		return "blanked"
	}
	return fmt.Sprintf("VariableWeighting(%d)", uint8(v))
}

// ParseVariableWeighting parses "shifted", "non-ignorable" or "blanked"
// (case-insensitive; "nonignorable" is accepted as well).
func ParseVariableWeighting(s string) (VariableWeighting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shifted", "":
		return Shifted, nil
	case "non-ignorable", "nonignorable":
		return NonIgnorable, nil
	case "blanked":
		return Blanked, nil
	}
	return Shifted, fmt.Errorf("%w: variable weighting %q", ErrInvalidOption, s)
}

// Level is a collation level, or a comparison strength.
type Level uint8

const (
	DefaultLevel Level = iota // use the default strength (Tertiary)
	Primary                   // base letters
	Secondary                 // accents
	Tertiary                  // case and variants
	Quaternary                // variable elements under Shifted
)

func (l Level) String() string {
	switch l {
	case DefaultLevel:
		return "default"
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	case Quaternary:
		return "quaternary"
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// ParseLevel parses a level either by number (1–4) or by name.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= int(Quaternary) {
		return Level(n), nil
	}
	for l := DefaultLevel; l <= Quaternary; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	return DefaultLevel, fmt.Errorf("%w: level %q", ErrInvalidOption, s)
}

// Options configure a Collator. The zero value is the default configuration:
// Shifted variable weighting, tertiary strength (plus the quaternary level
// Shifted needs), contiguous contraction matching.
type Options struct {
	Variable VariableWeighting
	Strength Level
	// Discontiguous enables matching of contractions across unblocked
	// non-starters (UTS #10, S2.1.1–S2.1.3).
	Discontiguous bool
}

// Validate checks that all option values are known.
func (o Options) Validate() error {
	if o.Variable > Blanked {
		return fmt.Errorf("%w: variable weighting %d", ErrInvalidOption, o.Variable)
	}
	if o.Strength > Quaternary {
		return fmt.Errorf("%w: strength %d", ErrInvalidOption, o.Strength)
	}
	return nil
}

// Levels returns the number of levels a sort key carries for o. Three levels
// is the default; the quaternary level is added only under Shifted, where it
// disambiguates variable elements.
func (o Options) Levels() Level {
	s := o.Strength
	if s == DefaultLevel {
		s = Tertiary
	}
	if s < Tertiary {
		return s
	}
	if o.Variable == Shifted {
		return Quaternary
	}
	return Tertiary
}

func (o Options) String() string {
	return fmt.Sprintf("{variable=%s levels=%d discontiguous=%v}", o.Variable, o.Levels(), o.Discontiguous)
}
