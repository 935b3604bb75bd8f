// Package scriptexec provides the execution substrate for Bitcoin Script
// evaluation: the dual-typed value stack, the condition stack backing
// IF/ELSE/ENDIF control flow, and the canonical scriptint integer codec.
// A script weight profiler is included for measuring the serialized cost of
// marked script regions.
//
// The package does not implement the opcode dispatch loop itself. An
// interpreter built on top of it drives the stacks one instruction at a
// time, using txscript's tokenizer (or any equivalent decoder) as the
// instruction source.
//
// # Value Stack
//
// The stack holds entries that are either native integers or shared byte
// buffers. Conversions between the two views are deferred until a value is
// actually read as the other type, and always go through the canonical
// minimal scriptint encoding:
//
//	stack := scriptexec.NewStack()
//	stack.PushNum(520)
//
//	b, err := stack.TopBytes(-1) // []byte{0x08, 0x02}
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	n, err := stack.PopNum(true) // 520
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Offsets are always negative and measured from the top: -1 is the top
// entry, -2 the one below it. Passing a non-negative offset is a programming
// error and panics.
//
// Byte entries reference shared mutable buffers. Re-pushing an entry shares
// the buffer rather than copying it, so duplication opcodes stay cheap and
// in-place mutation through one alias is visible through all of them.
//
// # Condition Stack
//
// ConditionStack tracks nested branch-taken flags without materializing the
// boolean vector. Only "is everything true?" and "where is the first false?"
// are ever queried, so the whole structure is two integers and every
// operation is O(1).
//
// # Scriptint Codec
//
// ScriptIntBytes and ReadScriptInt implement the consensus integer
// encoding: little-endian sign-magnitude with the sign carried in the high
// bit of the last byte, minimal length, and a configurable size ceiling on
// decode. Non-minimal encodings are rejected when minimality is required.
//
// # Profiler
//
// The profiler consumes the same instruction stream as the interpreter and
// accumulates per-region weight histograms. Regions are delimited by marker
// triples that are inert to script semantics (a NOP, a label push, and an
// OP_DROP):
//
//	start, _ := scriptexec.RegionStart("transfer")
//	end, _ := scriptexec.RegionEnd("transfer")
//	script := append(append(start, body...), end...)
//
//	p := scriptexec.NewProfiler()
//	if err := p.ProfileScript(script); err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Complete(); err != nil {
//	    log.Fatal(err)
//	}
//	p.WriteStats(os.Stdout)
//
// Profiling is a side channel: profiler errors abort only the profiling
// pass, never script execution.
package scriptexec
