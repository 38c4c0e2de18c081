package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	// ControlSeparator joins the source and destination of a routing or send control.
	ControlSeparator = "-"

	// PhantomMarker identifies phantom-power capable controls in the mixer listing.
	PhantomMarker = "48V"

	// PadSuffix and GainSuffix name the per-input pad switch and gain
	// controls ("Mic-AN1 PAD", "Mic-AN1 Gain").
	PadSuffix  = "PAD"
	GainSuffix = "Gain"

	MinQuantum = 32
	MaxQuantum = 2048

	switchOn  = "on"
	switchOff = "off"
)

// ClampVolume bounds an integer level to [0,100].
func ClampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampLevel bounds a fractional level to [0,1]. NaN is treated as silence.
func ClampLevel(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// LevelToPercent converts a fractional level to a clamped integer percentage.
func LevelToPercent(f float64) int {
	return int(math.Round(ClampLevel(f) * 100))
}

// PercentToLevel is the inverse of LevelToPercent.
func PercentToLevel(p int) float64 {
	return float64(ClampVolume(p)) / 100
}

// PercentArg formats a level the way the mixer tool expects a percentage.
func PercentArg(v int) string {
	return fmt.Sprintf("%d%%", v)
}

// SwitchToken maps a boolean state to the mixer's switch vocabulary.
func SwitchToken(on bool) string {
	if on {
		return switchOn
	}
	return switchOff
}

// ValidateQuantum accepts powers of two within [MinQuantum, MaxQuantum].
func ValidateQuantum(q int) error {
	if q < MinQuantum || q > MaxQuantum || q&(q-1) != 0 {
		return ErrInvalidQuantum
	}
	return nil
}

// CompositeControlName builds the control addressing source -> destination.
func CompositeControlName(source, destination string) string {
	return source + ControlSeparator + destination
}

// RoutePair returns the left and right controls routing input to out.
func RoutePair(input string, out Output) StereoPair {
	return StereoPair{
		Left:  CompositeControlName(input, out.Route.Left),
		Right: CompositeControlName(input, out.Route.Right),
	}
}

// PlaybackPair returns the controls feeding playback to out, pairing left
// with left and right with right.
func PlaybackPair(playback StereoPair, out Output) StereoPair {
	return StereoPair{
		Left:  CompositeControlName(playback.Left, out.Route.Left),
		Right: CompositeControlName(playback.Right, out.Route.Right),
	}
}

// InputControl names the control of input carrying suffix. A name that
// already ends with suffix is returned as is.
func InputControl(input, suffix string) string {
	if strings.HasSuffix(input, " "+suffix) {
		return input
	}
	return input + " " + suffix
}
