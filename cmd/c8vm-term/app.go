package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/clock"
	"github.com/hexaflex/c8vm/controller"
	"github.com/hexaflex/c8vm/cpu"
	"github.com/hexaflex/c8vm/framebuffer"
	"github.com/hexaflex/c8vm/keypad"
	"github.com/hexaflex/c8vm/rom"
)

// keyHold is how long a key counts as pressed after the terminal reported it.
// Terminals deliver no release events.
const keyHold = 100 * time.Millisecond

// Screen layout.
const (
	cellWidth  = 2                               // Terminal cells per pixel.
	infoColumn = framebuffer.Width*cellWidth + 3 // First column of the register panel.
)

// App defines application context.
type App struct {
	config       *Config
	cpu          *cpu.CPU
	ctl          *controller.Controller
	keys         *keyTimers
	events       chan termbox.Event
	lastRendered time.Time
	lastDigest   uint64
	status       string
	quit         bool
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.cpu = cpu.New(nil, a.printDiag)
	a.ctl = controller.New(a.cpu, clock.New(clock.DefaultFrequency))
	a.keys = newKeyTimers(keyHold)
	a.events = make(chan termbox.Event, 16)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	closeLog, err := a.initLog()
	if err != nil {
		return err
	}

	defer closeLog()

	log.Println(Version())

	program, err := rom.Load(a.config.Program)
	if err != nil {
		return err
	}

	if err := termbox.Init(); err != nil {
		return errors.Wrapf(err, "termbox.Init failed")
	}

	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)
	go a.pollEvents(termbox.PollEvent)
	defer a.stopEvents(termbox.Interrupt)

	a.ctl.Load(program)
	if !a.config.Debug {
		a.ctl.Start()
	}

	a.redraw()

	for !a.quit {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	now := time.Now()

	select {
	case ev := <-a.events:
		a.handleEvent(ev, now)
	default:
	}

	for _, k := range a.keys.Expired(now) {
		a.cpu.SetKey(k, false)
	}

	if err := a.ctl.Update(now); err != nil {
		a.status = "halted: " + err.Error()
		log.Println(a.status)
	}

	if now.Sub(a.lastRendered) >= time.Second/60 {
		a.lastRendered = now
		a.render()
	}

	// The clock runs at a few hundred herz; polling much faster only burns cpu.
	time.Sleep(time.Millisecond / 2)
}

// pollEvents forwards terminal events to the main loop.
// Termbox blocks in PollEvent, so this runs on its own goroutine.
// The events channel is closed once an interrupt arrives.
func (a *App) pollEvents(poll func() termbox.Event) {
	defer close(a.events)

	for {
		ev := poll()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		a.events <- ev
	}
}

// stopEvents interrupts the event poller and waits for it to exit.
// Pending events are discarded so the poller never blocks on a send.
func (a *App) stopEvents(interrupt func()) {
	go interrupt()

	for range a.events {
	}
}

func (a *App) handleEvent(ev termbox.Event, now time.Time) {
	switch ev.Type {
	case termbox.EventResize:
		a.redraw()
	case termbox.EventError:
		a.status = ev.Err.Error()
		log.Println(ev.Err)
	case termbox.EventKey:
		a.handleKey(ev, now)
	}
}

func (a *App) handleKey(ev termbox.Event, now time.Time) {
	if k, ok := keypad.Lookup(ev.Ch); ok {
		a.cpu.SetKey(k, true)
		a.keys.Press(k, now)
		return
	}

	var err error

	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		a.quit = true
	case termbox.KeyF5:
		var program []byte
		if program, err = rom.Load(a.config.Program); err == nil {
			a.ctl.Load(program)
			a.keys.Reset()
			a.status = ""
		}
	case termbox.KeyF6:
		a.ctl.ToggleRun()
	case termbox.KeyF7:
		err = a.ctl.Step()
	}

	if err != nil {
		a.status = err.Error()
		log.Println(err)
	}
}

// redraw forces a full repaint on the next render.
func (a *App) redraw() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	a.lastDigest = 0
	a.render()
}

// render draws the screen and the register panel.
func (a *App) render() {
	fb := a.cpu.Framebuffer()

	if sum := fb.Digest(); sum != a.lastDigest {
		a.lastDigest = sum
		drawScreen(fb)
	}

	a.drawInfo()
	termbox.Flush()
}

// drawScreen draws each pixel as two terminal cells, inside a border.
func drawScreen(fb *framebuffer.Framebuffer) {
	const w, h = framebuffer.Width*cellWidth + 2, framebuffer.Height + 2

	for x := 0; x < w; x++ {
		termbox.SetCell(x, 0, '-', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(x, h-1, '-', termbox.ColorDefault, termbox.ColorDefault)
	}

	for y := 1; y < h-1; y++ {
		termbox.SetCell(0, y, '|', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(w-1, y, '|', termbox.ColorDefault, termbox.ColorDefault)
	}

	for y := 0; y < framebuffer.Height; y++ {
		for x := 0; x < framebuffer.Width; x++ {
			bg := termbox.ColorDefault
			if fb.Pixel(x, y) {
				bg = termbox.ColorWhite
			}

			for c := 0; c < cellWidth; c++ {
				termbox.SetCell(1+x*cellWidth+c, 1+y, ' ', termbox.ColorDefault, bg)
			}
		}
	}
}

// drawInfo draws the machine state beside the screen.
func (a *App) drawInfo() {
	c := a.cpu
	v := c.V()

	stack := c.Stack()
	if len(stack) > 4 {
		stack = stack[len(stack)-4:]
	}

	state := c.State().String()
	if c.State() == cpu.Running && !a.ctl.Running() {
		state = "paused"
	}

	lines := []string{
		fmt.Sprintf("%s %s", AppName, AppVersion),
		"",
		fmt.Sprintf("PC %04x  I %04x", c.PC(), c.I()),
		fmt.Sprintf("DT %02x    ST %02x", c.DT(), c.ST()),
		fmt.Sprintf("SP %d    %-5s", c.SP(), sound(c.SoundActive())),
		fmt.Sprintf("%-28s", fmt.Sprintf("stack %04x", stack)),
		"",
	}

	for i := 0; i < len(v); i += 4 {
		lines = append(lines, fmt.Sprintf("V%X %02x V%X %02x V%X %02x V%X %02x",
			i, v[i], i+1, v[i+1], i+2, v[i+2], i+3, v[i+3]))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("%-24s", state),
		fmt.Sprintf("%-24s", prettyFrequency(a.ctl.Frequency())),
		"",
		"ESC quit  F5 reload",
		"F6 run/pause  F7 step",
	)

	for y, line := range lines {
		printText(infoColumn, y, line)
	}

	printText(0, framebuffer.Height+3, fmt.Sprintf("%-*s", infoColumn+24, a.status))
}

func sound(on bool) string {
	if on {
		return "BEEP"
	}
	return ""
}

func printText(x, y int, s string) {
	for i, r := range s {
		termbox.SetCell(x+i, y, r, termbox.ColorDefault, termbox.ColorDefault)
	}
}

// initLog points the standard logger at the configured log file, or discards
// log output entirely.
func (a *App) initLog() (func(), error) {
	if a.config.LogFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	fd, err := os.OpenFile(a.config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file")
	}

	log.SetOutput(fd)
	return func() { fd.Close() }, nil
}

// printDiag logs non-fatal conditions reported by the cpu.
func (a *App) printDiag(err error) {
	log.Println("diag:", err)
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
