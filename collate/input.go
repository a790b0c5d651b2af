package collate

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrInvalidInput is matched (with errors.Is) by every error reporting
// malformed input text.
var ErrInvalidInput = errors.New("invalid input text")

// InputError describes a malformed unit in input text. Collation never
// substitutes or skips invalid units.
type InputError struct {
	Pos   int    // index of the offending unit (byte, UTF-16 unit or rune)
	Unit  uint32 // the offending unit
	Issue string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input text at position %d (%#x): %s", e.Pos, e.Unit, e.Issue)
}

// Is makes every InputError match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// DecodeString decodes UTF-8 text into codepoints. Invalid UTF-8, including
// encoded surrogates, is an error.
func DecodeString(s string) ([]rune, error) {
	cps := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			issue := "invalid UTF-8"
			if s[i] == 0xED && i+1 < len(s) && s[i+1] >= 0xA0 && s[i+1] <= 0xBF {
				issue = "UTF-8 encoded surrogate"
			}
			return nil, &InputError{Pos: i, Unit: uint32(s[i]), Issue: issue}
		}
		cps = append(cps, r)
		i += size
	}
	return cps, nil
}

// DecodeUTF16 decodes UTF-16 code units into codepoints. Unpaired surrogates
// are an error.
func DecodeUTF16(units []uint16) ([]rune, error) {
	cps := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		switch {
		case !utf16.IsSurrogate(u):
			cps = append(cps, u)
		case u >= 0xDC00:
			return nil, &InputError{Pos: i, Unit: uint32(u), Issue: "lone low surrogate"}
		case i+1 >= len(units):
			return nil, &InputError{Pos: i, Unit: uint32(u), Issue: "high surrogate at end of input"}
		default:
			r := utf16.DecodeRune(u, rune(units[i+1]))
			if r == utf8.RuneError {
				return nil, &InputError{Pos: i, Unit: uint32(u), Issue: "high surrogate without low surrogate"}
			}
			cps = append(cps, r)
			i++
		}
	}
	return cps, nil
}

// CheckRunes verifies that every rune is a Unicode scalar value.
func CheckRunes(cps []rune) error {
	for i, r := range cps {
		if r < 0 || r > utf8.MaxRune {
			return &InputError{Pos: i, Unit: uint32(r), Issue: "not a Unicode codepoint"}
		}
		if utf16.IsSurrogate(r) {
			return &InputError{Pos: i, Unit: uint32(r), Issue: "surrogate codepoint"}
		}
	}
	return nil
}
