// Package controller drives a CPU from the host's main loop.
package controller

import (
	"time"

	"github.com/hexaflex/c8vm/clock"
	"github.com/hexaflex/c8vm/cpu"
)

// Controller controls the execution of a CPU.
type Controller struct {
	cpu        *cpu.CPU
	clock      *clock.Clock
	start      time.Time
	cycleCount uint64
	running    bool
}

// New creates a new controller for the given cpu, paced by clk.
func New(c *cpu.CPU, clk *clock.Clock) *Controller {
	return &Controller{
		cpu:   c,
		clock: clk,
	}
}

// CPU returns the controlled cpu.
func (c *Controller) CPU() *cpu.CPU {
	return c.cpu
}

// Running returns true if the CPU is currently running.
func (c *Controller) Running() bool {
	return c.running
}

// Frequency returns the measured instruction rate in herz since execution
// was last started or stopped.
func (c *Controller) Frequency() float64 {
	if !c.running {
		return 0
	}

	elapsed := time.Since(c.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(c.cycleCount) / elapsed
}

// ToggleRun starts or stops program execution.
func (c *Controller) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *Controller) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *Controller) Stop() {
	c.setRunning(false)
}

// Update polls the clock and performs whatever work is due at the given time.
// It does nothing while execution is paused.
func (c *Controller) Update(now time.Time) error {
	if !c.running {
		return nil
	}

	step, tick := c.clock.Poll(now)

	if tick {
		c.cpu.TickTimers()
	}

	if step {
		return c.Step()
	}

	return nil
}

// Step performs a single execution step. A fatal cpu error stops execution.
func (c *Controller) Step() error {
	c.cycleCount++

	err := c.cpu.Step()
	if err != nil {
		c.setRunning(false)
		return err
	}

	return nil
}

// Load loads the given program into a freshly reset cpu and restarts the clocks.
// Returns the number of bytes loaded.
func (c *Controller) Load(program []byte) int {
	n := c.cpu.Load(program)
	c.setRunning(c.running)
	return n
}

// setRunning determines if the CPU is running or is paused.
func (c *Controller) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
	c.clock.Reset(c.start)
}
