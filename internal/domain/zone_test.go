package domain

import "testing"

func TestZone_StringRoundTrip(t *testing.T) {
	for _, z := range Zones {
		got, err := ParseZone(z.String())
		if err != nil {
			t.Fatalf("ParseZone(%q) error = %v", z.String(), err)
		}
		if got != z {
			t.Errorf("ParseZone(%q) = %v, want %v", z.String(), got, z)
		}
	}
}

func TestZone_Unknown(t *testing.T) {
	if s := Zone(42).String(); s != "unknown" {
		t.Errorf("String() = %q, want unknown", s)
	}
	if Zone(42).Valid() || Zone(-1).Valid() {
		t.Error("Valid() = true for undeclared zone")
	}
	if _, err := ParseZone("center"); err == nil {
		t.Error("ParseZone(center) error = nil")
	}
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		zone Zone
		want VelocityCommand
	}{
		{ZoneNone, VelocityCommand{0, 0}},
		{ZoneLeft, VelocityCommand{0, 0.1}},
		{ZoneMiddle, VelocityCommand{2.0, 0}},
		{ZoneRight, VelocityCommand{0, -0.1}},
		{Zone(9), VelocityCommand{0, 0}},
	}
	for _, tt := range tests {
		if got := CommandFor(tt.zone); got != tt.want {
			t.Errorf("CommandFor(%v) = %+v, want %+v", tt.zone, got, tt.want)
		}
	}
}

func TestDebounceState(t *testing.T) {
	var s DebounceState
	if s.Last() != ZoneNone || s.Emitted() {
		t.Fatalf("zero state = %+v", s)
	}
	if !s.Changed(ZoneNone) {
		t.Error("first ZoneNone should be a change")
	}

	s.Commit(ZoneLeft)
	if s.Changed(ZoneLeft) {
		t.Error("same zone reported as change")
	}
	if !s.Changed(ZoneRight) {
		t.Error("different zone not reported as change")
	}

	s.Reset()
	if s.Emitted() || !s.Changed(ZoneNone) {
		t.Error("Reset() did not restore initial state")
	}
}
