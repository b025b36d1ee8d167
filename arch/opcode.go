// Package arch defines the CHIP-8 instruction set along with
// some related helper functions.
package arch

// Known opcodes. Each constant identifies one instruction form.
const (
	Unknown = iota // Unrecognized instruction word.

	CLS  // 00E0
	RET  // 00EE
	JP   // 1nnn
	CALL // 2nnn

	SEByte  // 3xkk
	SNEByte // 4xkk
	SEReg   // 5xy0
	SNEReg  // 9xy0
	SKP     // Ex9E
	SKNP    // ExA1

	LDByte  // 6xkk
	ADDByte // 7xkk
	LDReg   // 8xy0
	OR      // 8xy1
	AND     // 8xy2
	XOR     // 8xy3
	ADDReg  // 8xy4
	SUB     // 8xy5
	SHR     // 8xy6
	SUBN    // 8xy7
	SHL     // 8xyE

	LDI  // Annn
	JPV0 // Bnnn
	RND  // Cxkk
	DRW  // Dxyn

	LDVxDT // Fx07
	LDKey  // Fx0A
	LDDTVx // Fx15
	LDSTVx // Fx18
	ADDI   // Fx1E
	LDF    // Fx29
	LDB    // Fx33
	LDMem  // Fx55
	LDRegs // Fx65
)

// Name returns the mnemonic for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case CLS:
		return "CLS", true
	case RET:
		return "RET", true
	case JP, JPV0:
		return "JP", true
	case CALL:
		return "CALL", true

	case SEByte, SEReg:
		return "SE", true
	case SNEByte, SNEReg:
		return "SNE", true
	case SKP:
		return "SKP", true
	case SKNP:
		return "SKNP", true

	case ADDByte, ADDReg, ADDI:
		return "ADD", true
	case OR:
		return "OR", true
	case AND:
		return "AND", true
	case XOR:
		return "XOR", true
	case SUB:
		return "SUB", true
	case SHR:
		return "SHR", true
	case SUBN:
		return "SUBN", true
	case SHL:
		return "SHL", true

	case RND:
		return "RND", true
	case DRW:
		return "DRW", true

	case LDByte, LDReg, LDI, LDVxDT, LDKey, LDDTVx, LDSTVx, LDF, LDB, LDMem, LDRegs:
		return "LD", true
	}

	return "", false
}
