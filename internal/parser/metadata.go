package parser

import (
	"strconv"
	"strings"
)

const (
	forceQuantumKey = "clock.force-quantum"
	quantumKey      = "clock.quantum"
)

// metadataValue extracts the value of a line such as
// update: id:0 key:'clock.quantum' value:'1024' type:''
func metadataValue(line string) (string, bool) {
	_, rest, ok := strings.Cut(line, "value:'")
	if !ok {
		return "", false
	}
	value, _, _ := strings.Cut(rest, "'")
	return value, true
}

func metadataKey(line string) string {
	_, rest, ok := strings.Cut(line, "key:'")
	if !ok {
		return ""
	}
	key, _, _ := strings.Cut(rest, "'")
	return key
}

// Quantum returns the effective clock quantum from a settings metadata dump:
// a non-zero forced quantum wins over the configured one.
func Quantum(raw string) (int, error) {
	forced, configured := 0, 0
	for _, line := range lines(raw) {
		value, ok := metadataValue(line)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch metadataKey(line) {
		case forceQuantumKey:
			forced = n
		case quantumKey:
			if configured == 0 {
				configured = n
			}
		}
	}
	if forced > 0 {
		return forced, nil
	}
	if configured > 0 {
		return configured, nil
	}
	return 0, failure("quantum", raw, "Could not find clock quantum in pw-metadata output")
}
