// Package cpu implements the CHIP-8 interpreter.
package cpu

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/arch"
	"github.com/hexaflex/c8vm/devices"
	"github.com/hexaflex/c8vm/framebuffer"
	"github.com/hexaflex/c8vm/keypad"
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// DiagFunc receives non-fatal conditions: unknown opcodes and truncated programs.
type DiagFunc func(error)

// State defines the execution state of the CPU.
type State int

// Known execution states.
const (
	Running     State = iota // Executing instructions.
	AwaitingKey              // Suspended in LD Vx, K until a key is pressed.
	Halted                   // Stopped by a fatal error.
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// CPU implements the runtime. It owns all machine state, including the
// framebuffer and keypad.
type CPU struct {
	trace   TraceFunc                // Handler for debug trace output.
	diag    DiagFunc                 // Handler for non-fatal diagnostics.
	memory  Memory                   // System memory.
	instr   Instruction              // Decoded instruction data.
	v       [arch.RegisterCount]byte // General purpose registers V0-VF.
	i       uint16                   // Index register.
	pc      uint16                   // Program counter.
	stack   [StackCapacity]uint16    // Return addresses.
	sp      int                      // Number of entries on the stack.
	dt      byte                     // Delay timer.
	st      byte                     // Sound timer.
	fb      *framebuffer.Framebuffer // Display buffer.
	keys    keypad.State             // Keypad state.
	rng     *rand.Rand               // Random number generator.
	state   State                    // Execution state.
	waitReg uint8                    // Target register while in AwaitingKey.
	halt    error                    // Error which halted the CPU.
}

// New creates a new CPU, optionally with the given trace and diagnostics handlers.
func New(trace TraceFunc, diag DiagFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	if diag == nil {
		diag = func(error) { /* nop */ }
	}

	c := &CPU{
		trace:  trace,
		diag:   diag,
		memory: make(Memory, MemoryCapacity),
		fb:     framebuffer.New(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	c.Reset()
	return c
}

// ID returns the cpu's identifier.
func (c *CPU) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0001)
}

// Reset returns the machine to its power-on state: memory holds only the
// font, all registers, timers, stack, display and keypad are cleared.
func (c *CPU) Reset() {
	for i := range c.memory {
		c.memory[i] = 0
	}
	copy(c.memory[FontAddress:], font[:])

	c.instr = Instruction{}
	c.v = [arch.RegisterCount]byte{}
	c.i = 0
	c.pc = ProgramStart
	c.stack = [StackCapacity]uint16{}
	c.sp = 0
	c.dt = 0
	c.st = 0
	c.fb.Clear()
	c.keys.Reset()
	c.state = Running
	c.waitReg = 0
	c.halt = nil
}

// Load resets the machine, copies the given program into memory at
// ProgramStart and points the program counter at it. Returns the number of
// bytes loaded. A halted CPU runs again after a fresh load.
//
// Bytes which do not fit are dropped; this is reported through the
// diagnostics handler and is not an error.
func (c *CPU) Load(program []byte) int {
	c.Reset()
	n := copy(c.memory[ProgramStart:], program)

	if n < len(program) {
		c.diag(errors.Wrapf(ErrROMTruncated, "loaded %d of %d bytes", n, len(program)))
	}

	log.Println(c.ID(), "loaded", n, "bytes")
	return n
}

// Step performs a single execution step.
//
// While the CPU is waiting for a key, a step only checks the keypad.
// Fatal errors halt the CPU; every following step returns the same error
// until Reset is called.
func (c *CPU) Step() error {
	switch c.state {
	case Halted:
		return c.halt
	case AwaitingKey:
		if k, ok := c.keys.AnyPressed(); ok {
			c.v[c.waitReg] = byte(k)
			c.pc += 2
			c.state = Running
		}
		return nil
	}

	if err := c.step(); err != nil {
		c.state = Halted
		c.halt = err
		return err
	}

	return nil
}

// step fetches, decodes and executes one instruction.
func (c *CPU) step() error {
	mem := c.memory
	instr := &c.instr

	if err := instr.Fetch(mem, int(c.pc)); err != nil {
		return NewError(instr, err)
	}

	c.trace(instr)

	x, y := instr.X, instr.Y
	v := &c.v
	next := c.pc + 2

	switch instr.Opcode {
	case arch.CLS:
		c.fb.Clear()
	case arch.RET:
		if c.sp == 0 {
			return NewError(instr, ErrStackUnderflow)
		}
		c.sp--
		next = c.stack[c.sp]
	case arch.JP:
		next = instr.NNN
	case arch.CALL:
		if c.sp >= StackCapacity {
			return NewError(instr, ErrStackOverflow)
		}
		c.stack[c.sp] = next
		c.sp++
		next = instr.NNN

	case arch.SEByte:
		if v[x] == instr.KK {
			next += 2
		}
	case arch.SNEByte:
		if v[x] != instr.KK {
			next += 2
		}
	case arch.SEReg:
		if v[x] == v[y] {
			next += 2
		}
	case arch.SNEReg:
		if v[x] != v[y] {
			next += 2
		}
	case arch.SKP:
		if c.keys.IsPressed(keypad.Key(v[x])) {
			next += 2
		}
	case arch.SKNP:
		if !c.keys.IsPressed(keypad.Key(v[x])) {
			next += 2
		}

	case arch.LDByte:
		v[x] = instr.KK
	case arch.ADDByte:
		v[x] += instr.KK
	case arch.LDReg:
		v[x] = v[y]
	case arch.OR:
		v[x] |= v[y]
	case arch.AND:
		v[x] &= v[y]
	case arch.XOR:
		v[x] ^= v[y]
	case arch.ADDReg:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = byte(sum)
		v[arch.Flag] = _bool(sum > 0xff)
	case arch.SUB:
		flag := _bool(v[x] >= v[y])
		v[x] -= v[y]
		v[arch.Flag] = flag
	case arch.SHR:
		flag := v[x] & 1
		v[x] >>= 1
		v[arch.Flag] = flag
	case arch.SUBN:
		flag := _bool(v[y] >= v[x])
		v[x] = v[y] - v[x]
		v[arch.Flag] = flag
	case arch.SHL:
		flag := (v[x] >> 7) & 1
		v[x] <<= 1
		v[arch.Flag] = flag

	case arch.LDI:
		c.i = instr.NNN
	case arch.JPV0:
		next = instr.NNN + uint16(v[0])
	case arch.RND:
		v[x] = byte(c.rng.Intn(256)) & instr.KK
	case arch.DRW:
		sprite, err := mem.Slice(int(c.i), int(instr.N))
		if err != nil {
			return NewError(instr, err)
		}
		v[arch.Flag] = _bool(c.fb.Draw(int(v[x]), int(v[y]), sprite))

	case arch.LDVxDT:
		v[x] = c.dt
	case arch.LDKey:
		k, ok := c.keys.AnyPressed()
		if !ok {
			c.state = AwaitingKey
			c.waitReg = x
			return nil
		}
		v[x] = byte(k)
	case arch.LDDTVx:
		c.dt = v[x]
	case arch.LDSTVx:
		c.st = v[x]
	case arch.ADDI:
		c.i += uint16(v[x])
	case arch.LDF:
		c.i = FontAddress + uint16(v[x])*GlyphSize
	case arch.LDB:
		bcd := [3]byte{v[x] / 100, (v[x] / 10) % 10, v[x] % 10}
		if err := mem.Write(int(c.i), bcd[:]); err != nil {
			return NewError(instr, err)
		}
	case arch.LDMem:
		if err := mem.Write(int(c.i), v[:x+1]); err != nil {
			return NewError(instr, err)
		}
	case arch.LDRegs:
		if err := mem.Read(int(c.i), v[:x+1]); err != nil {
			return NewError(instr, err)
		}

	default:
		c.diag(NewError(instr, ErrUnknownOpcode))
	}

	c.pc = next
	return nil
}

// TickTimers decrements the delay and sound timers by one, unless they are zero.
func (c *CPU) TickTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

// SetKey marks the given keypad key as pressed or released.
func (c *CPU) SetKey(k keypad.Key, pressed bool) {
	c.keys.Set(k, pressed)
}

// Seed reseeds the random number generator used by RND.
func (c *CPU) Seed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

// Framebuffer returns the display buffer. Hosts must treat it as read-only.
func (c *CPU) Framebuffer() *framebuffer.Framebuffer {
	return c.fb
}

// Memory returns a copy of the cpu's memory bank.
func (c *CPU) Memory() Memory {
	return append(Memory(nil), c.memory...)
}

func (c *CPU) PC() uint16                  { return c.pc }
func (c *CPU) I() uint16                   { return c.i }
func (c *CPU) V() [arch.RegisterCount]byte { return c.v }
func (c *CPU) DT() byte                    { return c.dt }
func (c *CPU) ST() byte                    { return c.st }
func (c *CPU) SP() int                     { return c.sp }
func (c *CPU) State() State                { return c.state }
func (c *CPU) Stack() []uint16             { return append([]uint16(nil), c.stack[:c.sp]...) }
func (c *CPU) Err() error                  { return c.halt }

// SoundActive returns true while the sound timer is running.
func (c *CPU) SoundActive() bool {
	return c.st > 0
}

// String returns formatted information about the machine state.
func (c *CPU) String() string {
	return fmt.Sprintf("CPU{PC: %04X, I: %04X, V: [% 02X], Stack: %04X, "+
		"DT: %02X, ST: %02X, State: %v}",
		c.pc, c.i, c.v, c.stack[:c.sp], c.dt, c.st, c.state)
}

func _bool(v bool) byte {
	if v {
		return 1
	}
	return 0
}
