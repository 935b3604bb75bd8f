package scriptexec

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/txscript"
)

func TestInstructionConstructors(t *testing.T) {
	t.Run("push instruction", func(t *testing.T) {
		inst := PushInstruction([]byte{0x01, 0x02})
		if !inst.IsPush() {
			t.Error("Expected IsPush to be true")
		}
		if !bytes.Equal(inst.Data(), []byte{0x01, 0x02}) {
			t.Errorf("Data = %x", inst.Data())
		}
	})

	t.Run("opcode instruction", func(t *testing.T) {
		inst := OpInstruction(txscript.OP_DUP)
		if inst.IsPush() {
			t.Error("Expected IsPush to be false")
		}
		if inst.Opcode() != txscript.OP_DUP {
			t.Errorf("Opcode = %#x, want OP_DUP", inst.Opcode())
		}
		if inst.Data() != nil {
			t.Error("Opcode instruction should carry no data")
		}
	})
}

func TestParseScript(t *testing.T) {
	t.Run("mixed pushes and opcodes", func(t *testing.T) {
		script, err := txscript.NewScriptBuilder().
			AddData([]byte{0xaa, 0xbb, 0xcc}).
			AddOp(txscript.OP_DUP).
			AddOp(txscript.OP_HASH160).
			Script()
		if err != nil {
			t.Fatalf("building script failed: %v", err)
		}

		instructions, err := ParseScript(script)
		if err != nil {
			t.Fatalf("ParseScript failed: %v", err)
		}

		if len(instructions) != 3 {
			t.Fatalf("Expected 3 instructions, got %d", len(instructions))
		}
		if !instructions[0].IsPush() || !bytes.Equal(instructions[0].Data(), []byte{0xaa, 0xbb, 0xcc}) {
			t.Errorf("Instruction 0 = %+v, want 3-byte push", instructions[0])
		}
		if instructions[1].IsPush() || instructions[1].Opcode() != txscript.OP_DUP {
			t.Errorf("Instruction 1 = %+v, want OP_DUP", instructions[1])
		}
		if instructions[2].IsPush() || instructions[2].Opcode() != txscript.OP_HASH160 {
			t.Errorf("Instruction 2 = %+v, want OP_HASH160", instructions[2])
		}
	})

	t.Run("OP_0 normalizes to empty push", func(t *testing.T) {
		instructions, err := ParseScript([]byte{txscript.OP_0})
		if err != nil {
			t.Fatalf("ParseScript failed: %v", err)
		}
		if len(instructions) != 1 {
			t.Fatalf("Expected 1 instruction, got %d", len(instructions))
		}
		if !instructions[0].IsPush() || len(instructions[0].Data()) != 0 {
			t.Errorf("Instruction = %+v, want empty push", instructions[0])
		}
	})

	t.Run("small int opcodes stay opcodes", func(t *testing.T) {
		instructions, err := ParseScript([]byte{txscript.OP_1, txscript.OP_16, txscript.OP_1NEGATE})
		if err != nil {
			t.Fatalf("ParseScript failed: %v", err)
		}
		for i, inst := range instructions {
			if inst.IsPush() {
				t.Errorf("Instruction %d should be a plain opcode", i)
			}
		}
	})

	t.Run("empty script", func(t *testing.T) {
		instructions, err := ParseScript(nil)
		if err != nil {
			t.Fatalf("ParseScript failed: %v", err)
		}
		if len(instructions) != 0 {
			t.Errorf("Expected no instructions, got %d", len(instructions))
		}
	})

	t.Run("truncated push fails", func(t *testing.T) {
		if _, err := ParseScript([]byte{0x05, 0x01}); err == nil {
			t.Error("Expected error for truncated push")
		}
	})
}
