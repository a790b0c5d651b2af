package colltab

import (
	"errors"
	"fmt"
)

// ErrTableCorruption is matched (with errors.Is) by every error reporting an
// internally inconsistent table artifact.
var ErrTableCorruption = errors.New("collation table corrupt")

// CorruptionError describes an inconsistency found while loading or building
// a table. Corruption is fatal for the artifact in question.
type CorruptionError struct {
	Section string // artifact section, e.g. "trie" or "impl"
	Issue   string // human-readable description
	Offset  uint32 // byte offset within the artifact (0 if unknown or not applicable)
}

// Error implements the error interface.
func (e *CorruptionError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("collation table corrupt [%s] at offset %d: %s", e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("collation table corrupt [%s]: %s", e.Section, e.Issue)
}

// Is makes every CorruptionError match ErrTableCorruption.
func (e *CorruptionError) Is(target error) bool {
	return target == ErrTableCorruption
}

func corrupt(section string, offset uint32, format string, args ...any) error {
	err := &CorruptionError{
		Section: section,
		Issue:   fmt.Sprintf(format, args...),
		Offset:  offset,
	}
	tracer().Errorf(err.Error())
	return err
}
