package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/arch"
	"github.com/hexaflex/c8vm/clock"
	"github.com/hexaflex/c8vm/controller"
	"github.com/hexaflex/c8vm/cpu"
	"github.com/hexaflex/c8vm/devices"
	"github.com/hexaflex/c8vm/devices/display"
	"github.com/hexaflex/c8vm/devices/gamepad"
	"github.com/hexaflex/c8vm/framebuffer"
	"github.com/hexaflex/c8vm/keypad"
	"github.com/hexaflex/c8vm/rom"
)

// App defines application context.
type App struct {
	config       *Config                // Application configuration.
	window       *glfw.Window           // OpenGL/GLFW context.
	cpu          *cpu.CPU               // Machine running the program.
	ctl          *controller.Controller // Execution control for cpu.
	devices      devices.Map            // Connected peripherals.
	display      *display.Device        // Display peripheral.
	gamepad      *gamepad.Device        // Gamepad peripheral.
	titleUpdated time.Time              // Value used to periodically update window title.
	lastRendered time.Time              // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = display.New(config.Foreground, config.Background)
	a.gamepad = gamepad.New(a.setKey)
	a.cpu = cpu.New(a.printTrace, a.printDiag)

	clk := clock.New(clock.DefaultFrequency)
	a.ctl = controller.New(a.cpu, clk)

	a.devices.Connect(clk)
	a.devices.Connect(a.display)
	a.devices.Connect(a.gamepad)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	if err := a.devices.Startup(); err != nil {
		return err
	}

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	a.gamepad.Update()

	if err := a.ctl.Update(time.Now()); err != nil {
		log.Println("halted:", err)
	}

	// Periodically render display contents.
	if time.Since(a.lastRendered) >= time.Second/60 {
		a.lastRendered = time.Now()
		a.display.Update(a.cpu.Framebuffer())
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		a.window.SetTitle(a.title())
	}

	glfw.PollEvents()
}

// title returns the window title for the current machine state.
func (a *App) title() string {
	var status string
	switch {
	case a.cpu.State() == cpu.Halted:
		status = "halted"
	case !a.ctl.Running():
		status = "paused"
	default:
		status = prettyFrequency(a.ctl.Frequency())
	}
	return fmt.Sprintf("%s %s - %s", AppName, AppVersion, status)
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.ctl.Stop()

	if err := a.devices.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

// setKey forwards a keypad transition to the cpu.
func (a *App) setKey(k keypad.Key, pressed bool) {
	a.cpu.SetKey(k, pressed)
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}

	if k, ok := keypad.Lookup(rune(key)); ok {
		a.setKey(k, action == glfw.Press)
		return
	}

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.Debug = !a.config.Debug
		log.Println("debug mode:", a.config.Debug)
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		a.ctl.ToggleRun()
		a.window.SetTitle(a.title())
	case glfw.KeyF7:
		err = a.ctl.Step()
		if a.config.Debug {
			log.Println(a.cpu)
		}
	case glfw.KeyF8:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := framebuffer.Width * a.config.ScaleFactor
	height := framebuffer.Height * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.window.Destroy()
		glfw.Terminate()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and restarts the cpu.
// Execution starts right away unless we are in debug mode.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	program, err := rom.Load(a.config.Program)
	if err != nil {
		return err
	}

	a.ctl.Load(program)

	if a.config.Debug {
		a.ctl.Stop()
	} else {
		a.ctl.Start()
	}

	return nil
}

// printDiag logs non-fatal conditions reported by the cpu.
func (a *App) printDiag(err error) {
	log.Println("diag:", err)
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
func (a *App) printTrace(i *cpu.Instruction) {
	if !a.config.PrintTrace {
		return
	}

	fmt.Println(traceLine(i, a.cpu.V(), a.cpu.I()))
}

// traceLine formats a single instruction along with the register values it reads.
func traceLine(i *cpu.Instruction, v [arch.RegisterCount]byte, index uint16) string {
	var sb strings.Builder
	sb.Grow(80)

	name, ok := arch.Name(i.Opcode)
	if !ok {
		name = "DW"
	}

	fmt.Fprintf(&sb, "%04x %04x %5s  ", i.IP, i.Word, name)

	if ok {
		sb.WriteString(arch.Operands(i.Opcode, int(i.X), int(i.Y), int(i.N), int(i.KK), int(i.NNN)))
	} else {
		fmt.Fprintf(&sb, "0x%04x", i.Word)
	}

	pad(&sb, 40)

	switch arch.FormOf(i.Opcode) {
	case arch.RegReg, arch.RegRegNibble:
		fmt.Fprintf(&sb, "%s=%02x %s=%02x", arch.RegisterName(int(i.X)), v[i.X], arch.RegisterName(int(i.Y)), v[i.Y])
	case arch.V0Addr:
		fmt.Fprintf(&sb, "V0=%02x", v[0])
	case arch.NoOperands, arch.Addr, arch.IndexAddr:
	default:
		fmt.Fprintf(&sb, "%s=%02x", arch.RegisterName(int(i.X)), v[i.X])
	}

	switch i.Opcode {
	case arch.DRW, arch.ADDI, arch.LDB, arch.LDMem, arch.LDRegs:
		fmt.Fprintf(&sb, " I=%04x", index)
	}

	return strings.TrimRight(sb.String(), " ")
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Enable/Disable debug mode.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Perform a single execution step.\n")
	sb.WriteString(" F8       Enable/Disable debug trace output.\n")
	sb.WriteString("keypad:\n")
	sb.WriteString(" 1 2 3 4      1 2 3 C\n")
	sb.WriteString(" Q W E R  ->  4 5 6 D\n")
	sb.WriteString(" A S D F      7 8 9 E\n")
	sb.WriteString(" Z X C V      A 0 B F")
	log.Println(sb.String())
}

// pad padds sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		if size < sb.Len() {
			size = sb.Len()
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
