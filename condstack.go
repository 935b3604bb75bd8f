package scriptexec

// noFalse is the firstFalsePos sentinel meaning every implied entry is true.
const noFalse = -1

// ConditionStack tracks the branch-taken state of nested IF/ELSE/ENDIF
// scopes during script execution.
//
// Conceptually it is a stack of booleans, one per nesting level, indicating
// whether execution is in the active or inactive arm of each conditional.
// The individual booleans can never be observed; the interpreter only asks
// whether any false is present. That reduces the whole structure to two
// integers - the implied stack size and the position of the lowest false -
// and makes every operation O(1) regardless of nesting depth.
type ConditionStack struct {
	// size is the depth of the implied boolean stack.
	size int
	// firstFalsePos is the 0-based position of the lowest false entry, or
	// noFalse when all entries are true.
	firstFalsePos int
}

// NewConditionStack creates an empty condition stack.
func NewConditionStack() *ConditionStack {
	return &ConditionStack{size: 0, firstFalsePos: noFalse}
}

// Len returns the implied stack depth (the current conditional nesting
// level).
func (c *ConditionStack) Len() int {
	return c.size
}

// AllTrue returns true if no false entries exist, i.e. execution is in the
// active arm of every enclosing conditional.
func (c *ConditionStack) AllTrue() bool {
	return c.firstFalsePos == noFalse
}

// Push records entering a conditional arm, v being whether the arm is
// taken.
func (c *ConditionStack) Push(v bool) {
	if c.firstFalsePos == noFalse && !v {
		// The stack consists of all true values and a false is added; the
		// new entry is the first false.
		c.firstFalsePos = c.size
	}
	c.size++
}

// Pop records leaving the innermost conditional. Returns false if the stack
// was empty (nothing to pop), true otherwise. The popped value itself is
// never returned.
func (c *ConditionStack) Pop() bool {
	if c.size == 0 {
		return false
	}
	c.size--
	if c.firstFalsePos == c.size {
		// Popping the only false entry restores all-true.
		c.firstFalsePos = noFalse
	}
	return true
}

// ToggleTop flips the top entry, implementing OP_ELSE. Returns false if the
// stack was empty, true otherwise.
func (c *ConditionStack) ToggleTop() bool {
	if c.size == 0 {
		return false
	}
	switch {
	case c.firstFalsePos == noFalse:
		// All entries are true; the toggled top becomes the first false.
		c.firstFalsePos = c.size - 1
	case c.firstFalsePos == c.size-1:
		// The top is the first false; toggling it restores all-true.
		c.firstFalsePos = noFalse
	default:
		// A false exists below the top. Toggling anything above the first
		// false is unobservable, so no state changes.
	}
	return true
}
