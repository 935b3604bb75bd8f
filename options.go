package scriptexec

import "github.com/btcsuite/btcd/txscript"

// Default marker opcodes. OP_NOP9 and OP_NOP10 are unused by normal script
// logic, so an interpreter unaware of profiling executes a marker triple as
// a harmless push-then-discard.
const (
	DefaultStartOpcode = txscript.OP_NOP9
	DefaultEndOpcode   = txscript.OP_NOP10
	DefaultDropOpcode  = txscript.OP_DROP
)

// ProfilerOption configures a Profiler.
type ProfilerOption func(*profilerConfig)

// profilerConfig holds the opcodes the profiler recognizes as region
// delimiters.
type profilerConfig struct {
	startOpcode byte
	endOpcode   byte
	dropOpcode  byte
}

// defaultProfilerConfig returns the default profiler configuration.
func defaultProfilerConfig() *profilerConfig {
	return &profilerConfig{
		startOpcode: DefaultStartOpcode,
		endOpcode:   DefaultEndOpcode,
		dropOpcode:  DefaultDropOpcode,
	}
}

// WithMarkerOpcodes overrides the opcodes recognized as region start and
// end markers. Both must be opcodes the profiled scripts never use for
// ordinary logic.
func WithMarkerOpcodes(start, end byte) ProfilerOption {
	return func(c *profilerConfig) {
		c.startOpcode = start
		c.endOpcode = end
	}
}

// WithDropOpcode overrides the opcode expected to discard a marker label.
// Default is OP_DROP.
func WithDropOpcode(drop byte) ProfilerOption {
	return func(c *profilerConfig) {
		c.dropOpcode = drop
	}
}
