package cpu

import (
	"fmt"

	"github.com/hexaflex/c8vm/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int    // Instruction address.
	Word   uint16 // Raw big-endian instruction word.
	Opcode int    // Instruction form; one of the arch opcode constants.
	X, Y   uint8  // Register indices from the second and third nibble.
	N      uint8  // Lowest nibble.
	KK     uint8  // Lowest byte.
	NNN    uint16 // Lowest 12 bits.
}

// Fetch reads the instruction word at ip and decodes it.
func (i *Instruction) Fetch(m Memory, ip int) error {
	word, err := m.U16(ip)
	if err != nil {
		*i = Instruction{IP: ip}
		return err
	}

	*i = Decode(ip, word)
	return nil
}

// String returns the instruction in assembly notation.
func (i *Instruction) String() string {
	name, ok := arch.Name(i.Opcode)
	if !ok {
		return fmt.Sprintf("DW 0x%04x", i.Word)
	}

	ops := arch.Operands(i.Opcode, int(i.X), int(i.Y), int(i.N), int(i.KK), int(i.NNN))
	if len(ops) == 0 {
		return name
	}
	return name + " " + ops
}

// Decode splits the given instruction word into its operands and determines
// its form. Unrecognized words yield arch.Unknown.
func Decode(ip int, word uint16) Instruction {
	i := Instruction{
		IP:   ip,
		Word: word,
		X:    uint8(word>>8) & 0xf,
		Y:    uint8(word>>4) & 0xf,
		N:    uint8(word) & 0xf,
		KK:   uint8(word),
		NNN:  word & 0xfff,
	}

	i.Opcode = opcodeOf(word, i.N, i.KK)
	return i
}

// opcodeOf matches the nibble pattern of the given word.
func opcodeOf(word uint16, n, kk uint8) int {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return arch.CLS
		case 0x00EE:
			return arch.RET
		}
	case 0x1:
		return arch.JP
	case 0x2:
		return arch.CALL
	case 0x3:
		return arch.SEByte
	case 0x4:
		return arch.SNEByte
	case 0x5:
		if n == 0 {
			return arch.SEReg
		}
	case 0x6:
		return arch.LDByte
	case 0x7:
		return arch.ADDByte
	case 0x8:
		switch n {
		case 0x0:
			return arch.LDReg
		case 0x1:
			return arch.OR
		case 0x2:
			return arch.AND
		case 0x3:
			return arch.XOR
		case 0x4:
			return arch.ADDReg
		case 0x5:
			return arch.SUB
		case 0x6:
			return arch.SHR
		case 0x7:
			return arch.SUBN
		case 0xE:
			return arch.SHL
		}
	case 0x9:
		if n == 0 {
			return arch.SNEReg
		}
	case 0xA:
		return arch.LDI
	case 0xB:
		return arch.JPV0
	case 0xC:
		return arch.RND
	case 0xD:
		return arch.DRW
	case 0xE:
		switch kk {
		case 0x9E:
			return arch.SKP
		case 0xA1:
			return arch.SKNP
		}
	case 0xF:
		switch kk {
		case 0x07:
			return arch.LDVxDT
		case 0x0A:
			return arch.LDKey
		case 0x15:
			return arch.LDDTVx
		case 0x18:
			return arch.LDSTVx
		case 0x1E:
			return arch.ADDI
		case 0x29:
			return arch.LDF
		case 0x33:
			return arch.LDB
		case 0x55:
			return arch.LDMem
		case 0x65:
			return arch.LDRegs
		}
	}

	return arch.Unknown
}
