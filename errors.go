package scriptexec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidStackOperation indicates a stack access needed more entries
	// than the stack holds.
	ErrInvalidStackOperation = errors.New("scriptexec: invalid stack operation")

	// ErrNumericOverflow indicates a value read as a number exceeds the
	// allowed numeric domain (more than 4 bytes on the stack, or a native
	// entry above the 32-bit signed maximum).
	ErrNumericOverflow = errors.New("scriptexec: numeric overflow (number on stack larger than 4 bytes)")

	// ErrNonMinimalPush indicates a byte entry is not the shortest possible
	// scriptint encoding for its value. See BIP-62 push operator rules.
	ErrNonMinimalPush = errors.New("scriptexec: non-minimal datapush")

	// ErrExpectedLabel indicates a region marker opcode was not followed by
	// the label push.
	ErrExpectedLabel = errors.New("scriptexec: expected label push after region marker")

	// ErrExpectedDrop indicates a region label push was not followed by the
	// drop opcode.
	ErrExpectedDrop = errors.New("scriptexec: expected drop opcode after region label")

	// ErrUnfinishedMarker indicates the instruction stream ended in the
	// middle of a marker triple.
	ErrUnfinishedMarker = errors.New("scriptexec: unfinished region marker sequence")
)

// UnstartedRegionError indicates a region end marker for which no region is
// currently open.
type UnstartedRegionError struct {
	Label string
}

func (e *UnstartedRegionError) Error() string {
	return fmt.Sprintf("scriptexec: ending region %q that was not started", e.Label)
}

// RegionMismatchError indicates a region end marker whose label does not
// match the innermost open region.
type RegionMismatchError struct {
	Open  string // label of the innermost open region
	Label string // label carried by the end marker
}

func (e *RegionMismatchError) Error() string {
	return fmt.Sprintf("scriptexec: ending region %q while region %q is open", e.Label, e.Open)
}

// UnclosedRegionError indicates one or more regions were still open when the
// profiling pass completed. Labels are ordered outermost first.
type UnclosedRegionError struct {
	Labels []string
}

func (e *UnclosedRegionError) Error() string {
	quoted := make([]string, len(e.Labels))
	for i, label := range e.Labels {
		quoted[i] = fmt.Sprintf("%q", label)
	}
	return fmt.Sprintf("scriptexec: unclosed region(s): %s", strings.Join(quoted, ", "))
}
