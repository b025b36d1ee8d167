package gamepad

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/go-cmp/cmp"

	"github.com/hexaflex/c8vm/keypad"
)

type transition struct {
	Key     keypad.Key
	Pressed bool
}

func TestApply(t *testing.T) {
	var have []transition
	d := New(func(k keypad.Key, pressed bool) {
		have = append(have, transition{k, pressed})
	})

	var buttons [buttonCount]bool
	buttons[glfw.ButtonDpadUp] = true
	buttons[glfw.ButtonA] = true
	buttons[glfw.ButtonLeftBumper] = true
	d.apply(buttons)

	// Unchanged state reports nothing.
	d.apply(buttons)

	buttons[glfw.ButtonA] = false
	d.apply(buttons)

	d.releaseAll()

	want := []transition{
		{keypad.Key5, true},
		{keypad.Key2, true},
		{keypad.Key5, false},
		{keypad.Key2, false},
	}

	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("transition mismatch (-want, +have)\n%s", diff)
	}
}

func TestButtonKeys(t *testing.T) {
	seen := make(map[keypad.Key]bool)

	for btn, k := range buttonKeys {
		if int(btn) >= buttonCount {
			t.Errorf("button %d out of range", btn)
		}

		if seen[k] {
			t.Errorf("key %x mapped twice", k)
		}
		seen[k] = true
	}
}

func TestUpdateWithoutGamepad(t *testing.T) {
	d := New(nil)
	d.Update()
}
