package parser

import (
	"errors"
	"testing"

	"audioctl/internal/domain"
)

func TestFindPort(t *testing.T) {
	cases := []struct {
		port string
		want domain.NodeRef
	}{
		{"capture_AUX0", domain.NodeRef{ObjectID: 80, NodeID: 61, HasNode: true}},
		{"capture_AUX1", domain.NodeRef{ObjectID: 81, NodeID: 61, HasNode: true}},
		{"monitor_AUX0", domain.NodeRef{ObjectID: 95}},
		// last block of the dump: only the end-of-input flush can see it
		{"playback_AUX3", domain.NodeRef{ObjectID: 102, NodeID: 70, HasNode: true}},
	}
	for _, tc := range cases {
		got, err := FindPort(pwInfoAll, tc.port)
		if err != nil {
			t.Fatalf("FindPort(%q): %v", tc.port, err)
		}
		if got != tc.want {
			t.Errorf("FindPort(%q) = %+v, want %+v", tc.port, got, tc.want)
		}
	}
}

func TestFindPortExactName(t *testing.T) {
	if _, err := FindPort(pwInfoAll, "capture_AUX"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("prefix must not match, got %v", err)
	}
	if _, err := FindPort("", "capture_AUX0"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("empty dump should be NotFound, got %v", err)
	}
}

func TestPortVolume(t *testing.T) {
	got, err := PortVolume(pwEnumParams)
	if err != nil || got != 0.75 {
		t.Fatalf("PortVolume = %v, %v", got, err)
	}
	if _, err := PortVolume("Param: Props(2)\n"); !errors.Is(err, domain.ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}

func TestShortCardID(t *testing.T) {
	got, err := ShortCardID(pactlShort, "RME_Babyface")
	if err != nil || got != 56 {
		t.Fatalf("ShortCardID = %d, %v", got, err)
	}
	if _, err := ShortCardID(pactlShort, "Fireface"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
