package scriptexec

import (
	"github.com/btcsuite/btcd/txscript"
)

// Instruction is a single decoded script element: either a byte push or a
// plain opcode. The interpreter and the profiler both consume streams of
// these, independently.
type Instruction struct {
	data   []byte
	opcode byte
	isPush bool
}

// PushInstruction creates a byte-push instruction. The data slice is
// referenced, not copied.
func PushInstruction(data []byte) Instruction {
	return Instruction{data: data, isPush: true}
}

// OpInstruction creates a plain opcode instruction.
func OpInstruction(opcode byte) Instruction {
	return Instruction{opcode: opcode}
}

// IsPush returns true for byte-push instructions.
func (i Instruction) IsPush() bool {
	return i.isPush
}

// Data returns the pushed bytes. It is nil for opcode instructions and may
// be empty for an OP_0 push.
func (i Instruction) Data() []byte {
	return i.data
}

// Opcode returns the opcode of a non-push instruction.
func (i Instruction) Opcode() byte {
	return i.opcode
}

// ParseScript decodes a raw script into instructions using txscript's
// tokenizer. OP_0 is normalized to an empty byte push, matching its runtime
// effect; OP_1 through OP_16 and OP_1NEGATE remain plain opcodes.
//
// This is a thin adapter over the external decoder; the package performs no
// script parsing of its own.
func ParseScript(script []byte) ([]Instruction, error) {
	instructions := make([]Instruction, 0, len(script))
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		instructions = append(instructions, tokenizedInstruction(&tokenizer))
	}
	if err := tokenizer.Err(); err != nil {
		return nil, err
	}
	return instructions, nil
}

// tokenizedInstruction converts the tokenizer's current token.
func tokenizedInstruction(tokenizer *txscript.ScriptTokenizer) Instruction {
	if data := tokenizer.Data(); data != nil {
		return PushInstruction(data)
	}
	if tokenizer.Opcode() == txscript.OP_0 {
		return PushInstruction([]byte{})
	}
	return OpInstruction(tokenizer.Opcode())
}
