package schedule

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:00", 360, false},
		{"23:59", 1439, false},
		{"24:00", 1440, false},
		{"24:30", 0, true},
		{"25:00", 0, true},
		{"8:5", 485, false},
		{"junk", 0, true},
		{"12", 0, true},
		{"-1:00", 0, true},
	}
	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ToMinutes(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ToMinutes(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToHHMM(t *testing.T) {
	cases := map[int]string{
		0:    "00:00",
		360:  "06:00",
		485:  "08:05",
		1439: "23:59",
		1440: "24:00",
	}
	for in, want := range cases {
		if got := ToHHMM(in); got != want {
			t.Fatalf("ToHHMM(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestOrderStatus(t *testing.T) {
	o := Order{}
	if o.Status() != StatusUnassigned {
		t.Fatalf("Status = %s, want unassigned", o.Status())
	}
	o.MixerID = "M1"
	if o.Status() != StatusAssigned {
		t.Fatalf("Status = %s, want assigned", o.Status())
	}
	o.Locked = true
	if o.Status() != StatusLocked {
		t.Fatalf("Status = %s, want locked", o.Status())
	}
}

func TestLinesAndMixers(t *testing.T) {
	if got := len(Lines()); got != 4 {
		t.Fatalf("len(Lines()) = %d, want 4", got)
	}
	if got := len(Mixers()); got != 10 {
		t.Fatalf("len(Mixers()) = %d, want 10", got)
	}
	if !ValidLine("L4") || ValidLine("L5") {
		t.Fatalf("ValidLine misbehaves")
	}
	if !ValidMixer("M10") || ValidMixer("M11") {
		t.Fatalf("ValidMixer misbehaves")
	}
}

func TestHeldBlockProjection(t *testing.T) {
	o := makeOrder("a", "PO-1", "L1", 600, 720, 60)
	o.MixerID = "M2"
	b := HeldBlock(o)
	if b.ID != "order-a" {
		t.Fatalf("ID = %q, want order-a", b.ID)
	}
	if b.MixerID != "M2" || b.Start != 600 || b.End != 720 {
		t.Fatalf("block = %+v", b)
	}
	if b.Kind != KindHeld {
		t.Fatalf("kind = %s, want %s", b.Kind, KindHeld)
	}
}
