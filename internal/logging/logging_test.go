package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestVerbosityLevels(t *testing.T) {
	defer SetVerbosity(0)

	cases := []struct {
		count int
		want  string
	}{
		{-3, "warn"},
		{0, "warn"},
		{1, "info"},
		{2, "debug"},
		{3, "trace"},
		{9, "trace"},
	}
	for _, tc := range cases {
		SetVerbosity(tc.count)
		if LevelName() != tc.want {
			t.Errorf("SetVerbosity(%d) level = %s, want %s", tc.count, LevelName(), tc.want)
		}
	}
	if Verbosity() != 4 {
		t.Errorf("Verbosity() = %d, want clamp to 4", Verbosity())
	}
}

func TestParseLevel(t *testing.T) {
	l, count, err := ParseLevel("DEBUG")
	if err != nil || l != LevelDebug || count != 2 {
		t.Fatalf("ParseLevel(DEBUG) = %v, %d, %v", l, count, err)
	}
	if _, _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestOutputFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetVerbosity(0)

	SetVerbosity(0)
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info leaked at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown 2") {
		t.Fatalf("warn missing: %q", buf.String())
	}

	buf.Reset()
	SetVerbosity(2)
	Debugf("dbg")
	Tracef("trc")
	if !strings.Contains(buf.String(), "dbg") || strings.Contains(buf.String(), "trc") {
		t.Fatalf("unexpected debug/trace output: %q", buf.String())
	}

	buf.Reset()
	SetVerbosity(4)
	Named("resolver").Debugw("resolved", "port", "capture_AUX0")
	if !strings.Contains(buf.String(), "resolver") || !strings.Contains(buf.String(), "capture_AUX0") {
		t.Fatalf("named logger output: %q", buf.String())
	}
}

func TestSetOutputRedirectsEarlierNamedLoggers(t *testing.T) {
	defer SetOutput(os.Stderr)
	defer SetVerbosity(0)

	exec := Named("exec")

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbosity(1)
	exec.Infow("Running", "argv", "amixer -c 1 get PCM")
	if !strings.Contains(buf.String(), "amixer -c 1 get PCM") {
		t.Fatalf("earlier named logger did not follow SetOutput: %q", buf.String())
	}
}
