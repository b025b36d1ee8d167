package main

import (
	"time"

	"github.com/hexaflex/c8vm/keypad"
)

// keyTimers tracks when each keypad key was last reported, so it can be
// released once the hold time has passed without a repeat.
type keyTimers struct {
	hold    time.Duration
	pressed [keypad.KeyCount]time.Time
}

func newKeyTimers(hold time.Duration) *keyTimers {
	return &keyTimers{hold: hold}
}

// Press records a press of k at the given time.
func (kt *keyTimers) Press(k keypad.Key, now time.Time) {
	if k.Valid() {
		kt.pressed[k] = now
	}
}

// Expired returns the keys whose hold time has run out, and forgets them.
func (kt *keyTimers) Expired(now time.Time) []keypad.Key {
	var out []keypad.Key

	for k, t := range kt.pressed {
		if !t.IsZero() && now.Sub(t) >= kt.hold {
			kt.pressed[k] = time.Time{}
			out = append(out, keypad.Key(k))
		}
	}

	return out
}

// Reset forgets all pressed keys.
func (kt *keyTimers) Reset() {
	kt.pressed = [keypad.KeyCount]time.Time{}
}
