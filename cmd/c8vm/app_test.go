package main

import (
	"strings"
	"testing"

	"github.com/hexaflex/c8vm/cpu"
)

func TestTraceLine(t *testing.T) {
	var v [16]byte
	v[1] = 0x2a
	v[2] = 0x05
	v[0] = 0x10

	tests := []struct {
		ip   int
		word uint16
		want string
	}{
		{0x200, 0x00E0, "0200 00e0   CLS"},
		{0x202, 0x8124, "0202 8124   ADD  V1, V2"},
		{0x204, 0xD125, "0204 d125   DRW  V1, V2, 5"},
		{0x206, 0x7105, "0206 7105   ADD  V1, 0x05"},
		{0x208, 0xF133, "0208 f133    LD  B, V1"},
		{0x20a, 0x5121, "020a 5121    DW  0x5121"},
	}

	for _, tt := range tests {
		instr := cpu.Decode(tt.ip, tt.word)
		have := traceLine(&instr, v, 0x300)

		if !strings.HasPrefix(have, tt.want) {
			t.Errorf("want prefix %q; have %q", tt.want, have)
		}
	}

	instr := cpu.Decode(0x202, 0xD125)
	if have := traceLine(&instr, v, 0x300); !strings.HasSuffix(have, "V1=2a V2=05 I=0300") {
		t.Errorf("missing register values: %q", have)
	}

	instr = cpu.Decode(0x20c, 0xB123)
	if have := traceLine(&instr, v, 0x300); !strings.HasSuffix(have, "V0=10") {
		t.Errorf("want V0 for JP V0; have %q", have)
	}
}

func TestPrettyFrequency(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.00 Hz"},
		{600, "600.00 Hz"},
		{1500, "1.50 KHz"},
		{2e6, "2.00 MHz"},
		{3e9, "3.00 GHz"},
	}

	for _, tt := range tests {
		if have := prettyFrequency(tt.v); have != tt.want {
			t.Errorf("want %q; have %q", tt.want, have)
		}
	}
}
