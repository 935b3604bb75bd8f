package scriptexec

import "math"

// defaultStackCapacity pre-sizes the stack for typical script depth.
const defaultStackCapacity = 1000

// Buffer is a shared mutable byte buffer backing one or more stack entries.
//
// Duplication opcodes share the buffer rather than copying it, so an
// in-place mutation through one entry is visible through every entry that
// aliases the same buffer.
type Buffer struct {
	data []byte
}

// NewBuffer creates a buffer holding a copy of data.
func NewBuffer(data []byte) *Buffer {
	b := &Buffer{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Bytes returns a copy of the buffer contents.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// SetBytes replaces the buffer contents in place. The change is visible
// through every stack entry sharing this buffer.
func (b *Buffer) SetBytes(data []byte) {
	b.data = make([]byte, len(data))
	copy(b.data, data)
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Entry represents a single slot on the value stack: either a native
// integer or a reference to a shared byte buffer.
// This is a sealed interface - only types within this package implement it.
type Entry interface {
	// isEntry is unexported to seal the interface.
	isEntry()

	// Bytes returns the canonical byte rendering of the entry. Numeric
	// entries render via the minimal scriptint encoding; byte entries
	// return a copy of the buffer contents.
	Bytes() []byte
}

// NumEntry is a native integer entry. Arithmetic opcodes push these for
// results already known to fit a machine integer, deferring the scriptint
// encoding until a byte view is actually requested.
type NumEntry struct {
	n int64
}

func (e NumEntry) isEntry() {}

// Bytes returns the minimal scriptint encoding of the value.
func (e NumEntry) Bytes() []byte {
	return ScriptIntBytes(e.n)
}

// Value returns the native integer.
func (e NumEntry) Value() int64 {
	return e.n
}

// BytesEntry references a shared byte buffer. Copying the entry value
// aliases the buffer; it never deep-copies the bytes.
type BytesEntry struct {
	buf *Buffer
}

func (e BytesEntry) isEntry() {}

// Bytes returns a copy of the referenced buffer contents.
func (e BytesEntry) Bytes() []byte {
	return e.buf.Bytes()
}

// Buffer returns the shared underlying buffer.
func (e BytesEntry) Buffer() *Buffer {
	return e.buf
}

// NewNum creates a native integer entry.
func NewNum(n int64) NumEntry {
	return NumEntry{n: n}
}

// NewBytes creates a byte entry backed by a fresh buffer holding a copy of
// data. The entry never aliases the caller's slice.
func NewBytes(data []byte) BytesEntry {
	return BytesEntry{buf: NewBuffer(data)}
}

// NewSharedBytes creates a byte entry aliasing an existing buffer.
func NewSharedBytes(buf *Buffer) BytesEntry {
	return BytesEntry{buf: buf}
}

// Stack is the value stack for script execution. The bottom entry is at
// index 0 and the top at the end; offset-based accessors address entries
// with strictly negative offsets from the top (-1 is the top entry).
//
// The stack enforces no depth limit; that is evaluation policy and belongs
// to the interpreter.
type Stack struct {
	entries []Entry
}

// NewStack creates an empty stack pre-sized for typical script depth.
func NewStack() *Stack {
	return &Stack{entries: make([]Entry, 0, defaultStackCapacity)}
}

// NewStackFromBytes creates a stack from raw entries, bottom first. Each
// entry gets an independent fresh buffer; no sharing with the caller or
// between entries.
func NewStackFromBytes(items [][]byte) *Stack {
	s := NewStack()
	for _, item := range items {
		s.PushBytes(item)
	}
	return s
}

// Len returns the current stack depth.
func (s *Stack) Len() int {
	return len(s.entries)
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Push appends an entry. Pushing an existing BytesEntry shares its buffer,
// which is how duplication opcodes keep aliasing semantics.
func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries, e)
}

// PushNum appends a native integer entry.
func (s *Stack) PushNum(n int64) {
	s.entries = append(s.entries, NewNum(n))
}

// PushBytes appends a byte entry backed by a fresh buffer holding a copy of
// data.
func (s *Stack) PushBytes(data []byte) {
	s.entries = append(s.entries, NewBytes(data))
}

// Top returns the entry at the given negative offset from the top without
// removing it (-1 is the top entry). Fails with ErrInvalidStackOperation if
// the offset reaches below the bottom.
//
// Panics on a non-negative offset; that is a contract violation by the
// caller, not a runtime condition.
func (s *Stack) Top(offset int) (Entry, error) {
	if offset >= 0 {
		panic("scriptexec: stack offsets must be negative")
	}
	idx := len(s.entries) + offset
	if idx < 0 {
		return nil, ErrInvalidStackOperation
	}
	return s.entries[idx], nil
}

// TopBytes returns the canonical byte rendering of the entry at the given
// negative offset without removing it.
func (s *Stack) TopBytes(offset int) ([]byte, error) {
	entry, err := s.Top(offset)
	if err != nil {
		return nil, err
	}
	return entry.Bytes(), nil
}

// TopNum returns the numeric view of the entry at the given negative offset
// without removing it. Native entries above the 32-bit signed maximum fail
// with ErrNumericOverflow; byte entries decode under the standard 4-byte
// ceiling with the given minimality requirement.
func (s *Stack) TopNum(offset int, requireMinimal bool) (int64, error) {
	entry, err := s.Top(offset)
	if err != nil {
		return 0, err
	}
	return entryNum(entry, requireMinimal)
}

// Last returns the byte rendering of the top entry.
func (s *Stack) Last() ([]byte, error) {
	return s.TopBytes(-1)
}

// Pop removes and returns the top entry. Returns false if the stack is
// empty; whether that matters is the caller's decision.
func (s *Stack) Pop() (Entry, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	entry := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return entry, true
}

// PopN removes exactly n entries. Fails with ErrInvalidStackOperation if
// fewer exist, leaving the stack partially popped; there is no rollback.
func (s *Stack) PopN(n int) error {
	for i := 0; i < n; i++ {
		if _, ok := s.Pop(); !ok {
			return ErrInvalidStackOperation
		}
	}
	return nil
}

// PopBytes removes the top entry and returns its canonical byte rendering.
// Fails with ErrInvalidStackOperation on an empty stack.
func (s *Stack) PopBytes() ([]byte, error) {
	entry, ok := s.Pop()
	if !ok {
		return nil, ErrInvalidStackOperation
	}
	return entry.Bytes(), nil
}

// PopNum removes the top entry and returns its numeric view, under the same
// rules as TopNum.
func (s *Stack) PopNum(requireMinimal bool) (int64, error) {
	entry, ok := s.Pop()
	if !ok {
		return 0, ErrInvalidStackOperation
	}
	return entryNum(entry, requireMinimal)
}

// NeedN fails with ErrInvalidStackOperation if the stack holds fewer than
// min entries. It never mutates the stack.
func (s *Stack) NeedN(min int) error {
	if len(s.entries) < min {
		return ErrInvalidStackOperation
	}
	return nil
}

// Get returns the byte rendering of the entry at an absolute index (0 is
// the bottom). The caller guarantees the index is in range; no bounds check
// is performed.
func (s *Stack) Get(index int) []byte {
	return s.entries[index].Bytes()
}

// Remove deletes the entry at an absolute index, shifting entries above it
// down. The caller guarantees the index is in range.
func (s *Stack) Remove(index int) {
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
}

// ByteSlices returns the byte rendering of every entry, bottom first.
func (s *Stack) ByteSlices() [][]byte {
	out := make([][]byte, len(s.entries))
	for i, entry := range s.entries {
		out[i] = entry.Bytes()
	}
	return out
}

// entryNum resolves an entry's numeric view. Native entries are bounded by
// the 32-bit signed maximum; byte entries decode through the codec.
func entryNum(entry Entry, requireMinimal bool) (int64, error) {
	switch e := entry.(type) {
	case NumEntry:
		if e.n > math.MaxInt32 {
			return 0, ErrNumericOverflow
		}
		return e.n, nil
	case BytesEntry:
		return ReadScriptInt(e.buf.data, DefaultScriptIntSize, requireMinimal)
	default:
		panic("scriptexec: unknown stack entry type")
	}
}
