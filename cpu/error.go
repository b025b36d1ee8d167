package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known error conditions. Use errors.Is to test for them.
var (
	ErrOutOfBounds    = errors.New("memory access out of bounds")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrROMTruncated   = errors.New("program exceeds memory capacity")
)

// Error defines a runtime error along with the instruction that caused it.
type Error struct {
	IP   int    // Address of the offending instruction.
	Word uint16 // Raw instruction word; zero if it could not be fetched.
	Err  error  // Underlying condition.
}

// NewError creates a new error for the given instruction.
func NewError(instr *Instruction, err error) *Error {
	return &Error{
		IP:   instr.IP,
		Word: instr.Word,
		Err:  err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x [%04x]: %v", e.IP, e.Word, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fatal returns true if err halts the CPU.
func Fatal(err error) bool {
	return errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrStackOverflow) ||
		errors.Is(err, ErrStackUnderflow)
}
