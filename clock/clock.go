// Package clock implements the instruction and timer clocks which pace the CPU.
//
// The clock does not run on its own. The host polls it once per loop
// iteration with the current time and performs the work it reports.
package clock

import (
	"time"

	"github.com/hexaflex/c8vm/devices"
)

const (
	DefaultFrequency = 600 // Default instruction clock in Hz.
	TimerFrequency   = 60  // Delay and sound timer rate in Hz.
)

// Clock defines the two clocks driving the machine.
type Clock struct {
	lastStep  time.Time     // Last time the instruction clock fired.
	lastTick  time.Time     // Last time the timer clock fired.
	stepEvery time.Duration // Instruction clock interval.
	tickEvery time.Duration // Timer clock interval.
}

var _ devices.Device = &Clock{}

// New creates a clock with an instruction rate of hz. Values < 1 select
// DefaultFrequency.
func New(hz int) *Clock {
	if hz < 1 {
		hz = DefaultFrequency
	}

	return &Clock{
		stepEvery: time.Second / time.Duration(hz),
		tickEvery: time.Second / TimerFrequency,
	}
}

func (c *Clock) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0005)
}

// Startup restarts both clocks at the current time.
func (c *Clock) Startup() error {
	c.Reset(time.Now())
	return nil
}

func (c *Clock) Shutdown() error {
	return nil
}

// Reset restarts both clocks at the given time.
func (c *Clock) Reset(now time.Time) {
	c.lastStep = now
	c.lastTick = now
}

// Poll reports which clocks have fired since the previous poll.
//
// Each clock fires at most once per call, when at least one interval has
// elapsed since it last fired. Missed intervals are not made up.
func (c *Clock) Poll(now time.Time) (step, tick bool) {
	if now.Sub(c.lastStep) >= c.stepEvery {
		c.lastStep = now
		step = true
	}

	if now.Sub(c.lastTick) >= c.tickEvery {
		c.lastTick = now
		tick = true
	}

	return
}

// StepInterval returns the instruction clock interval.
func (c *Clock) StepInterval() time.Duration {
	return c.stepEvery
}
