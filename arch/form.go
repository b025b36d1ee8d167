package arch

import "fmt"

// Form defines the operand layout of an instruction.
type Form byte

// Known operand forms.
const (
	NoOperands Form = iota // CLS
	Addr                   // JP 0x123
	RegByte                // SE V1, 0x2a
	RegReg                 // SE V1, V2
	Reg                    // SKP V1
	RegRegNibble           // DRW V1, V2, 5
	V0Addr                 // JP V0, 0x123
	IndexAddr              // LD I, 0x123
	RegDelay               // LD V1, DT
	RegKey                 // LD V1, K
	DelayReg               // LD DT, V1
	SoundReg               // LD ST, V1
	IndexReg               // ADD I, V1
	FontReg                // LD F, V1
	BCDReg                 // LD B, V1
	MemReg                 // LD [I], V1
	RegMem                 // LD V1, [I]
)

// FormOf returns the operand form of the given opcode.
func FormOf(opcode int) Form {
	switch opcode {
	case JP, CALL:
		return Addr
	case SEByte, SNEByte, LDByte, ADDByte, RND:
		return RegByte
	case SEReg, SNEReg, LDReg, OR, AND, XOR, ADDReg, SUB, SHR, SUBN, SHL:
		return RegReg
	case SKP, SKNP:
		return Reg
	case DRW:
		return RegRegNibble
	case JPV0:
		return V0Addr
	case LDI:
		return IndexAddr
	case LDVxDT:
		return RegDelay
	case LDKey:
		return RegKey
	case LDDTVx:
		return DelayReg
	case LDSTVx:
		return SoundReg
	case ADDI:
		return IndexReg
	case LDF:
		return FontReg
	case LDB:
		return BCDReg
	case LDMem:
		return MemReg
	case LDRegs:
		return RegMem
	}
	return NoOperands
}

// Operands formats the operands of an instruction with the given opcode.
// x and y are register indices, n the low nibble, kk the low byte and nnn
// the low 12 bits of the instruction word.
func Operands(opcode, x, y, n, kk, nnn int) string {
	vx, vy := RegisterName(x), RegisterName(y)

	switch FormOf(opcode) {
	case Addr:
		return fmt.Sprintf("0x%03x", nnn)
	case RegByte:
		return fmt.Sprintf("%s, 0x%02x", vx, kk)
	case RegReg:
		return fmt.Sprintf("%s, %s", vx, vy)
	case Reg:
		return vx
	case RegRegNibble:
		return fmt.Sprintf("%s, %s, %d", vx, vy, n)
	case V0Addr:
		return fmt.Sprintf("V0, 0x%03x", nnn)
	case IndexAddr:
		return fmt.Sprintf("I, 0x%03x", nnn)
	case RegDelay:
		return vx + ", DT"
	case RegKey:
		return vx + ", K"
	case DelayReg:
		return "DT, " + vx
	case SoundReg:
		return "ST, " + vx
	case IndexReg:
		return "I, " + vx
	case FontReg:
		return "F, " + vx
	case BCDReg:
		return "B, " + vx
	case MemReg:
		return "[I], " + vx
	case RegMem:
		return vx + ", [I]"
	}
	return ""
}
