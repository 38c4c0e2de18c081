package domain

import (
	"errors"
	"math"
	"testing"
)

func TestClampVolume(t *testing.T) {
	for v := -300; v <= 300; v++ {
		got := ClampVolume(v)
		if got < 0 || got > 100 {
			t.Fatalf("ClampVolume(%d) = %d, out of range", v, got)
		}
		if again := ClampVolume(got); again != got {
			t.Fatalf("ClampVolume not idempotent for %d: %d then %d", v, got, again)
		}
		if v >= 0 && v <= 100 && got != v {
			t.Fatalf("ClampVolume(%d) = %d, want unchanged", v, got)
		}
	}
}

func TestClampLevel(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{3.2, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
	}
	for _, tc := range cases {
		if got := ClampLevel(tc.in); got != tc.want {
			t.Errorf("ClampLevel(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLevelToPercent(t *testing.T) {
	cases := map[float64]int{
		0:    0,
		0.29: 29,
		0.5:  50,
		1:    100,
		1.7:  100,
		-1:   0,
	}
	for in, want := range cases {
		if got := LevelToPercent(in); got != want {
			t.Errorf("LevelToPercent(%v) = %d, want %d", in, got, want)
		}
	}
	for p := 0; p <= 100; p++ {
		if got := LevelToPercent(PercentToLevel(p)); got != p {
			t.Fatalf("percent %d did not survive level conversion, got %d", p, got)
		}
	}
}

func TestValidateQuantum(t *testing.T) {
	valid := []int{32, 64, 128, 256, 512, 1024, 2048}
	for _, q := range valid {
		if err := ValidateQuantum(q); err != nil {
			t.Errorf("ValidateQuantum(%d) = %v, want nil", q, err)
		}
	}
	invalid := []int{0, -64, 16, 31, 33, 100, 1000, 3000, 4096}
	for _, q := range invalid {
		if err := ValidateQuantum(q); !errors.Is(err, ErrInvalidQuantum) {
			t.Errorf("ValidateQuantum(%d) = %v, want ErrInvalidQuantum", q, err)
		}
	}
}

func TestSwitchToken(t *testing.T) {
	if SwitchToken(true) != "on" || SwitchToken(false) != "off" {
		t.Fatalf("unexpected switch tokens %q/%q", SwitchToken(true), SwitchToken(false))
	}
}

func TestRoutingNames(t *testing.T) {
	main := Output{Name: "main", Route: StereoPair{Left: "AN1", Right: "AN2"}}
	phones := Output{Name: "headphones", Route: StereoPair{Left: "PH3", Right: "PH4"}}

	if got := CompositeControlName("Mic-AN1", "AN1"); got != "Mic-AN1-AN1" {
		t.Errorf("CompositeControlName = %q", got)
	}
	if got := RoutePair("Mic-AN1", main); got != (StereoPair{"Mic-AN1-AN1", "Mic-AN1-AN2"}) {
		t.Errorf("RoutePair = %+v", got)
	}
	playback := StereoPair{Left: "PCM-AN1", Right: "PCM-AN2"}
	if got := PlaybackPair(playback, phones); got != (StereoPair{"PCM-AN1-PH3", "PCM-AN2-PH4"}) {
		t.Errorf("PlaybackPair = %+v", got)
	}
}

func TestNodeRefTarget(t *testing.T) {
	if got := (NodeRef{ObjectID: 80, NodeID: 61, HasNode: true}).Target(); got != 61 {
		t.Errorf("Target with node = %d, want 61", got)
	}
	if got := (NodeRef{ObjectID: 80}).Target(); got != 80 {
		t.Errorf("Target without node = %d, want 80", got)
	}
}

func TestInputControl(t *testing.T) {
	cases := []struct {
		input, suffix, want string
	}{
		{"Mic-AN1", PhantomMarker, "Mic-AN1 48V"},
		{"Mic-AN1 48V", PhantomMarker, "Mic-AN1 48V"},
		{"Mic-AN2", PadSuffix, "Mic-AN2 PAD"},
		{"Mic-AN2", GainSuffix, "Mic-AN2 Gain"},
	}
	for _, c := range cases {
		if got := InputControl(c.input, c.suffix); got != c.want {
			t.Errorf("InputControl(%q, %q) = %q, want %q", c.input, c.suffix, got, c.want)
		}
	}
}
