package parser

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"audioctl/internal/domain"
	"audioctl/internal/logging"
)

func TestParseFailureLogsRawOutput(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(os.Stderr)

	raw := "Mono: Playback garbled-output-xyz"
	if _, err := Percent(raw); !errors.Is(err, domain.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
	logged := buf.String()
	if !strings.Contains(logged, "WARN") {
		t.Errorf("parse failure not logged at warn: %q", logged)
	}
	if !strings.Contains(logged, raw) {
		t.Errorf("log does not carry the raw output: %q", logged)
	}
}
