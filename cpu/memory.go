package cpu

import "github.com/pkg/errors"

const (
	MemoryCapacity = 0x1000 // Total addressable memory.
	ProgramStart   = 0x200  // Address at which programs are loaded.
	ProgramSize    = MemoryCapacity - ProgramStart
	FontAddress    = 0x000 // Address of the built-in hexadecimal glyphs.
	GlyphSize      = 5     // Size of a single glyph in bytes.
	StackCapacity  = 16    // Maximum number of nested subroutine calls.
)

// font holds the glyphs for the hexadecimal digits 0-F.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory defines the system's memory bank.
// Every accessor fails with ErrOutOfBounds instead of touching memory
// outside of the bank.
type Memory []byte

// U8 returns the byte at the given address.
func (m Memory) U8(addr int) (byte, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m[addr], nil
}

// SetU8 sets the byte at the given address.
func (m Memory) SetU8(addr int, value byte) error {
	if err := m.check(addr, 1); err != nil {
		return err
	}
	m[addr] = value
	return nil
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr int) (uint16, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

// Slice returns n bytes starting at the given address. The returned slice
// aliases memory.
func (m Memory) Slice(addr, n int) ([]byte, error) {
	if err := m.check(addr, n); err != nil || n == 0 {
		return nil, err
	}
	return m[addr : addr+n], nil
}

// Write writes len(p) bytes from p into memory, starting at the given address.
// Nothing is written if any part of the range is out of bounds.
func (m Memory) Write(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil || len(p) == 0 {
		return err
	}
	copy(m[addr:], p)
	return nil
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m Memory) Read(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil || len(p) == 0 {
		return err
	}
	copy(p, m[addr:])
	return nil
}

// check ensures the n byte range starting at addr lies within the bank.
// An empty range touches no memory and always passes.
func (m Memory) check(addr, n int) error {
	if n == 0 {
		return nil
	}
	if addr < 0 || n < 0 || addr+n > len(m) {
		return errors.Wrapf(ErrOutOfBounds, "access of %d byte(s) at 0x%04x", n, addr)
	}
	return nil
}
