// Package gamepad maps a GLFW gamepad onto the keypad.
package gamepad

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/c8vm/devices"
	"github.com/hexaflex/c8vm/keypad"
)

// buttonCount is the number of buttons in a glfw gamepad state.
const buttonCount = int(glfw.ButtonLast) + 1

// buttonKeys maps gamepad buttons onto keypad keys. The d-pad covers the
// keys most programs use for movement.
var buttonKeys = map[glfw.GamepadButton]keypad.Key{
	glfw.ButtonDpadUp:    keypad.Key2,
	glfw.ButtonDpadLeft:  keypad.Key4,
	glfw.ButtonDpadRight: keypad.Key6,
	glfw.ButtonDpadDown:  keypad.Key8,
	glfw.ButtonA:         keypad.Key5,
	glfw.ButtonB:         keypad.Key0,
	glfw.ButtonX:         keypad.KeyA,
	glfw.ButtonY:         keypad.KeyB,
	glfw.ButtonStart:     keypad.KeyF,
	glfw.ButtonBack:      keypad.KeyE,
}

// KeyFunc receives keypad key transitions.
type KeyFunc func(k keypad.Key, pressed bool)

// Device defines all internal doodads for the gamepad.
type Device struct {
	onKey       KeyFunc
	joy         glfw.Joystick
	pressed     [buttonCount]bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device which reports key transitions to f.
func New(f KeyFunc) *Device {
	if f == nil {
		f = func(keypad.Key, bool) { /* nop */ }
	}

	return &Device{
		onKey: f,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0003)
}

// Startup initializes device resources.
// It detects any connected gamepad.
func (d *Device) Startup() error {
	glfw.SetJoystickCallback(d.configure)

	// Check if we have a connected gamepad.
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	d.releaseAll()
	d.initialized = false
	return nil
}

// Update polls the gamepad and forwards button transitions.
func (d *Device) Update() {
	if !d.initialized {
		return
	}

	state := d.joy.GetGamepadState()
	if state == nil {
		return
	}

	var buttons [buttonCount]bool
	for btn, action := range state.Buttons {
		buttons[btn] = action == glfw.Press
	}

	d.apply(buttons)
}

// apply compares the given button state with the previous one and reports
// every change of a mapped button.
func (d *Device) apply(buttons [buttonCount]bool) {
	for btn, pressed := range buttons {
		if pressed == d.pressed[btn] {
			continue
		}

		d.pressed[btn] = pressed

		if k, ok := buttonKeys[glfw.GamepadButton(btn)]; ok {
			d.onKey(k, pressed)
		}
	}
}

// releaseAll reports a release for every button still held.
func (d *Device) releaseAll() {
	d.apply([buttonCount]bool{})
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	connected := event == glfw.Connected && joy.IsGamepad()

	if !connected && d.initialized && joy != d.joy {
		return
	}

	d.releaseAll()
	d.initialized = connected
	d.joy = joy

	if d.initialized {
		log.Println(d.ID(), "gamepad connected:", joy.GetGamepadName())
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}
}
