package cpu

import (
	"testing"

	"github.com/hexaflex/c8vm/arch"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word   uint16
		opcode int
		text   string
	}{
		{0x00E0, arch.CLS, "CLS"},
		{0x00EE, arch.RET, "RET"},
		{0x0123, arch.Unknown, "DW 0x0123"},
		{0x1ABC, arch.JP, "JP 0xabc"},
		{0x2ABC, arch.CALL, "CALL 0xabc"},
		{0x3A2B, arch.SEByte, "SE VA, 0x2b"},
		{0x4A2B, arch.SNEByte, "SNE VA, 0x2b"},
		{0x5AB0, arch.SEReg, "SE VA, VB"},
		{0x5AB1, arch.Unknown, "DW 0x5ab1"},
		{0x6F01, arch.LDByte, "LD VF, 0x01"},
		{0x7F01, arch.ADDByte, "ADD VF, 0x01"},
		{0x8120, arch.LDReg, "LD V1, V2"},
		{0x8121, arch.OR, "OR V1, V2"},
		{0x8122, arch.AND, "AND V1, V2"},
		{0x8123, arch.XOR, "XOR V1, V2"},
		{0x8124, arch.ADDReg, "ADD V1, V2"},
		{0x8125, arch.SUB, "SUB V1, V2"},
		{0x8126, arch.SHR, "SHR V1, V2"},
		{0x8127, arch.SUBN, "SUBN V1, V2"},
		{0x8128, arch.Unknown, "DW 0x8128"},
		{0x812E, arch.SHL, "SHL V1, V2"},
		{0x9120, arch.SNEReg, "SNE V1, V2"},
		{0x912F, arch.Unknown, "DW 0x912f"},
		{0xA123, arch.LDI, "LD I, 0x123"},
		{0xB123, arch.JPV0, "JP V0, 0x123"},
		{0xC3FF, arch.RND, "RND V3, 0xff"},
		{0xD12F, arch.DRW, "DRW V1, V2, 15"},
		{0xE59E, arch.SKP, "SKP V5"},
		{0xE5A1, arch.SKNP, "SKNP V5"},
		{0xE500, arch.Unknown, "DW 0xe500"},
		{0xF507, arch.LDVxDT, "LD V5, DT"},
		{0xF50A, arch.LDKey, "LD V5, K"},
		{0xF515, arch.LDDTVx, "LD DT, V5"},
		{0xF518, arch.LDSTVx, "LD ST, V5"},
		{0xF51E, arch.ADDI, "ADD I, V5"},
		{0xF529, arch.LDF, "LD F, V5"},
		{0xF533, arch.LDB, "LD B, V5"},
		{0xF555, arch.LDMem, "LD [I], V5"},
		{0xF565, arch.LDRegs, "LD V5, [I]"},
		{0xF5FF, arch.Unknown, "DW 0xf5ff"},
	}

	for _, tt := range tests {
		instr := Decode(ProgramStart, tt.word)

		if instr.Opcode != tt.opcode {
			t.Errorf("%04x: want opcode %d; have %d", tt.word, tt.opcode, instr.Opcode)
		}

		if have := instr.String(); have != tt.text {
			t.Errorf("%04x: want %q; have %q", tt.word, tt.text, have)
		}
	}
}

func TestDecodeFields(t *testing.T) {
	instr := Decode(0x234, 0xD9A7)

	if instr.IP != 0x234 || instr.Word != 0xD9A7 {
		t.Fatalf("unexpected location: %+v", instr)
	}

	if instr.X != 0x9 || instr.Y != 0xA || instr.N != 0x7 || instr.KK != 0xA7 || instr.NNN != 0x9A7 {
		t.Fatalf("unexpected operands: %+v", instr)
	}
}

func TestFetch(t *testing.T) {
	m := make(Memory, MemoryCapacity)
	m[0x300] = 0xA1
	m[0x301] = 0x23

	var instr Instruction
	if err := instr.Fetch(m, 0x300); err != nil {
		t.Fatal(err)
	}

	if instr.Opcode != arch.LDI || instr.NNN != 0x123 {
		t.Fatalf("unexpected instruction: %+v", instr)
	}

	if err := instr.Fetch(m, MemoryCapacity-1); err == nil {
		t.Fatalf("expected fetch across the end of memory to fail")
	}

	if instr.IP != MemoryCapacity-1 {
		t.Fatalf("failed fetch must retain the address; have %04x", instr.IP)
	}
}
