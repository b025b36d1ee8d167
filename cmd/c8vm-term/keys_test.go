package main

import (
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hexaflex/c8vm/keypad"
)

func TestKeyTimers(t *testing.T) {
	start := time.Unix(1000, 0)
	kt := newKeyTimers(keyHold)

	kt.Press(keypad.Key5, start)
	kt.Press(keypad.KeyA, start.Add(50*time.Millisecond))

	if have := kt.Expired(start.Add(99 * time.Millisecond)); len(have) != 0 {
		t.Fatalf("keys released early: %v", have)
	}

	have := kt.Expired(start.Add(100 * time.Millisecond))
	if diff := cmp.Diff([]keypad.Key{keypad.Key5}, have); diff != "" {
		t.Fatalf("release mismatch (-want, +have)\n%s", diff)
	}

	// A repeat extends the hold time.
	kt.Press(keypad.KeyA, start.Add(120*time.Millisecond))

	if have := kt.Expired(start.Add(200 * time.Millisecond)); len(have) != 0 {
		t.Fatalf("repeated key released early: %v", have)
	}

	have = kt.Expired(start.Add(220 * time.Millisecond))
	if diff := cmp.Diff([]keypad.Key{keypad.KeyA}, have); diff != "" {
		t.Fatalf("release mismatch (-want, +have)\n%s", diff)
	}

	if have := kt.Expired(start.Add(time.Hour)); len(have) != 0 {
		t.Fatalf("keys released twice: %v", have)
	}
}

func TestKeyTimersReset(t *testing.T) {
	start := time.Unix(1000, 0)
	kt := newKeyTimers(keyHold)

	kt.Press(keypad.Key1, start)
	kt.Press(keypad.Key(0x20), start)
	kt.Reset()

	if have := kt.Expired(start.Add(time.Second)); len(have) != 0 {
		t.Fatalf("reset keys reported: %v", have)
	}
}

func TestParseFlags(t *testing.T) {
	c, err := parseFlags("c8vm-term", []string{"-debug", "-log", "out.log", "pong.ch8"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	want := &Config{Program: "pong.ch8", Debug: true, LogFile: "out.log"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want, +have)\n%s", diff)
	}
}
