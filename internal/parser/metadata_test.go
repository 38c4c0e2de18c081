package parser

import (
	"errors"
	"strings"
	"testing"

	"audioctl/internal/domain"
)

func TestQuantum(t *testing.T) {
	got, err := Quantum(pwMetadata)
	if err != nil || got != 1024 {
		t.Fatalf("Quantum = %d, %v; want configured 1024", got, err)
	}

	forced := strings.Replace(pwMetadata, "'clock.force-quantum' value:'0'", "'clock.force-quantum' value:'256'", 1)
	got, err = Quantum(forced)
	if err != nil || got != 256 {
		t.Fatalf("Quantum = %d, %v; want forced 256", got, err)
	}

	if _, err := Quantum("Found \"settings\" metadata 32\n"); !errors.Is(err, domain.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}
