package controller

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/clock"
	"github.com/hexaflex/c8vm/cpu"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newController(program ...byte) *Controller {
	c := New(cpu.New(nil, nil), clock.New(clock.DefaultFrequency))
	c.Load(program)
	return c
}

func TestUpdatePaused(t *testing.T) {
	//   LD V0, 1

	c := newController(0x60, 0x01)

	if err := c.Update(time.Now().Add(time.Second)); err != nil {
		t.Fatal(err)
	}

	if c.CPU().PC() != cpu.ProgramStart {
		t.Fatalf("paused controller executed an instruction")
	}

	if c.Frequency() != 0 {
		t.Fatalf("paused controller reports a frequency")
	}
}

func TestUpdate(t *testing.T) {
	//   LD V0, 5
	//   LD DT, V0
	//   JP 0x204

	c := newController(0x60, 0x05, 0xF0, 0x15, 0x12, 0x04)
	c.Start()

	now := time.Now()
	for i := 1; i <= 3; i++ {
		if err := c.Update(now.Add(time.Duration(i) * 2 * time.Millisecond)); err != nil {
			t.Fatal(err)
		}
	}

	cp := c.CPU()
	if cp.PC() != 0x204 || cp.DT() != 5 {
		t.Fatalf("unexpected state after 3 steps: %v", cp)
	}

	// One poll fires each clock at most once.
	if err := c.Update(now.Add(time.Second)); err != nil {
		t.Fatal(err)
	}

	if cp.DT() != 4 {
		t.Fatalf("want DT 4; have %d", cp.DT())
	}
}

func TestUpdateHaltsOnFatalError(t *testing.T) {
	//   RET

	c := newController(0x00, 0xEE)
	c.Start()

	err := c.Update(time.Now().Add(time.Second))
	if !errors.Is(err, cpu.ErrStackUnderflow) {
		t.Fatalf("want stack underflow; have %v", err)
	}

	if c.Running() {
		t.Fatalf("controller still running after a fatal error")
	}

	if c.CPU().State() != cpu.Halted {
		t.Fatalf("want halted cpu; have %v", c.CPU().State())
	}
}

func TestToggleRun(t *testing.T) {
	c := newController()

	c.ToggleRun()
	if !c.Running() {
		t.Fatalf("expected controller to run")
	}

	c.ToggleRun()
	if c.Running() {
		t.Fatalf("expected controller to be paused")
	}
}

func TestStep(t *testing.T) {
	//   LD V0, 1
	//   LD V1, 2

	c := newController(0x60, 0x01, 0x61, 0x02)

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}

	if c.CPU().PC() != 0x202 || c.Running() {
		t.Fatalf("manual step: pc %04x, running %v", c.CPU().PC(), c.Running())
	}
}

func TestLoadResets(t *testing.T) {
	//   LD V0, 1

	c := newController(0x60, 0x01)
	c.Step()

	if n := c.Load([]byte{0x61, 0x02}); n != 2 {
		t.Fatalf("want 2 bytes loaded; have %d", n)
	}

	cp := c.CPU()
	if cp.PC() != cpu.ProgramStart || cp.V()[0] != 0 {
		t.Fatalf("cpu not reset by Load: %v", cp)
	}
}
