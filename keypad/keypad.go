// Package keypad implements the CHIP-8 hexadecimal keypad state.
//
// The computers which originally ran CHIP-8 programs had a 16-key
// hexadecimal keypad with the following layout:
//
//	+---+---+---+---+
//	| 1 | 2 | 3 | C |
//	+---+---+---+---+
//	| 4 | 5 | 6 | D |
//	+---+---+---+---+
//	| 7 | 8 | 9 | E |
//	+---+---+---+---+
//	| A | 0 | B | F |
//	+---+---+---+---+
package keypad

import "unicode"

// Key identifies a keypad key.
type Key uint8

// Known keys.
const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Valid returns true if k is one of the 16 keypad keys.
func (k Key) Valid() bool {
	return k < KeyCount
}

// State holds the key-down flags of the keypad.
type State struct {
	keys [KeyCount]bool
}

// Set marks the given key as pressed or released.
// Keys outside the keypad are ignored.
func (s *State) Set(k Key, pressed bool) {
	if k.Valid() {
		s.keys[k] = pressed
	}
}

// IsPressed returns true if the given key is down.
// Keys outside the keypad are never pressed.
func (s *State) IsPressed(k Key) bool {
	return k.Valid() && s.keys[k]
}

// AnyPressed returns the lowest numbered key that is currently down.
// Returns false if no key is down.
func (s *State) AnyPressed() (Key, bool) {
	for k, down := range s.keys {
		if down {
			return Key(k), true
		}
	}
	return 0, false
}

// Reset releases all keys.
func (s *State) Reset() {
	s.keys = [KeyCount]bool{}
}

// hostKeys maps host keyboard characters onto the keypad, preserving the
// physical layout of the original keypad on the left side of a QWERTY keyboard.
var hostKeys = map[rune]Key{
	'1': Key1, '2': Key2, '3': Key3, '4': KeyC,
	'Q': Key4, 'W': Key5, 'E': Key6, 'R': KeyD,
	'A': Key7, 'S': Key8, 'D': Key9, 'F': KeyE,
	'Z': KeyA, 'X': Key0, 'C': KeyB, 'V': KeyF,
}

// Lookup returns the keypad key for the given host keyboard character.
// Letters are matched case-insensitively. Returns false if the character
// is not mapped.
func Lookup(r rune) (Key, bool) {
	k, ok := hostKeys[unicode.ToUpper(r)]
	return k, ok
}
