package parser

import (
	"regexp"
	"strconv"
	"strings"

	"audioctl/internal/domain"
)

const (
	controlHeader = "Simple mixer control"
	enumMarker    = "Item0:"
)

// StateToken marks the line of a control block that carries its current state.
const StateToken = "Mono:"

var (
	nativeValueRe = regexp.MustCompile(`Mono:\s*(?:Playback\s+|Capture\s+)?(-?\d+)`)
	percentRe     = regexp.MustCompile(`(\d+)%`)
	limitsRe      = regexp.MustCompile(`Limits:(?:\s*(?:Playback|Capture))?\s*(-?\d+)\s*-\s*(-?\d+)`)
	channelValRe  = regexp.MustCompile(`^(?:\s*(?:Playback|Capture)\s*)?(-?\d+)(?:\s*\[(\d+)%\])?`)
)

// Block is one control of a mixer listing: the quoted name from its header
// line and every non-blank line up to the next header, header included.
type Block struct {
	Name  string
	Lines []string
}

// Blocks splits a mixer listing into control blocks in output order.
func Blocks(raw string) []Block {
	var (
		blocks  []Block
		current *Block
	)
	for _, line := range lines(raw) {
		if strings.HasPrefix(line, controlHeader) {
			if current != nil {
				blocks = append(blocks, *current)
				current = nil
			}
			parts := strings.Split(line, "'")
			if len(parts) >= 2 {
				current = &Block{Name: parts[1], Lines: []string{line}}
			}
			continue
		}
		if strings.TrimSpace(line) == "" || current == nil {
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}

// Controls maps each control name in a mixer listing to its description lines.
func Controls(raw string) map[string][]string {
	controls := make(map[string][]string)
	for _, b := range Blocks(raw) {
		controls[b.Name] = b.Lines
	}
	return controls
}

// CardIndex finds the device enumeration line containing name and returns
// the index printed in its second column ("card 1: ...").
func CardIndex(raw, name string) (domain.CardID, error) {
	for _, line := range lines(raw) {
		if !strings.Contains(line, name) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		token := strings.TrimSuffix(fields[1], ":")
		idx, err := strconv.Atoi(token)
		if err != nil {
			return 0, failure("card index", raw, "Could not parse card index %q for %s", token, name)
		}
		return domain.CardID(idx), nil
	}
	return 0, domain.NotFound("card index", "Could not find card with name: %s", name)
}

// NativeValue extracts the integer from a "Mono: [Playback] <n>" state line.
func NativeValue(raw string) (int, error) {
	m := nativeValueRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, failure("native value", raw, "Could not parse value from amixer output")
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, failure("native value", raw, "Could not parse value from amixer output: %v", err)
	}
	return v, nil
}

// Percent extracts the first "<n>%" from the output.
func Percent(raw string) (int, error) {
	m := percentRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, failure("percent", raw, "Could not parse volume from amixer output")
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, failure("percent", raw, "Could not parse volume from amixer output: %v", err)
	}
	return v, nil
}

// findBlock returns the first block whose header mentions control and, when
// marker is set, also mentions marker.
func findBlock(raw, control, marker string) (Block, bool) {
	for _, b := range Blocks(raw) {
		header := b.Lines[0]
		if !strings.Contains(header, control) {
			continue
		}
		if marker != "" && !strings.Contains(header, marker) {
			continue
		}
		return b, true
	}
	return Block{}, false
}

// Switch reports the on/off state of control. marker narrows the header
// match, e.g. to phantom-power controls.
func Switch(raw, control, marker string) (bool, error) {
	b, ok := findBlock(raw, control, marker)
	if !ok {
		if marker != "" {
			return false, domain.NotFound("switch", "Control %s (%s) not found", control, marker)
		}
		return false, domain.NotFound("switch", "Control %s not found", control)
	}
	for _, line := range b.Lines[1:] {
		if strings.Contains(line, StateToken) {
			return strings.Contains(line, "[on]"), nil
		}
	}
	return false, failure("switch", raw, "No state line for control %s", control)
}

// EnumItem returns the current item of an enumerated control, unquoted.
func EnumItem(raw, control string) (string, error) {
	b, ok := findBlock(raw, control, "")
	if !ok {
		return "", domain.NotFound("enum", "Control %s not found", control)
	}
	for _, line := range b.Lines[1:] {
		idx := strings.Index(line, enumMarker)
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+len(enumMarker):])
		return strings.Trim(value, `'"`), nil
	}
	return "", failure("enum", raw, "No item line for control %s", control)
}

// Describe converts the description lines of one control into ControlInfo.
func Describe(name string, info []string) domain.ControlInfo {
	ctl := domain.ControlInfo{
		Name:   name,
		Values: map[string]int{},
		Lines:  info,
	}
	for _, line := range info {
		key, rest, found := strings.Cut(strings.TrimSpace(line), ":")
		if !found {
			continue
		}
		rest = strings.TrimSpace(rest)
		switch {
		case key == "Capabilities":
			ctl.Capabilities = strings.Fields(rest)
		case key == "Playback channels" || key == "Capture channels":
			ctl.Channels = rest
		case key == "Limits":
			if m := limitsRe.FindStringSubmatch(line); m != nil {
				ctl.Limits.Min, _ = strconv.Atoi(m[1])
				ctl.Limits.Max, _ = strconv.Atoi(m[2])
			}
		case key == "Mono" || key == "Front Left" || key == "Front Right":
			if m := channelValRe.FindStringSubmatch(rest); m != nil {
				ctl.Values[key], _ = strconv.Atoi(m[1])
			}
		case key == "Item0":
			item := strings.Trim(rest, `'"`)
			switch item {
			case "On":
				ctl.Values["phantom"] = 1
			case "Off":
				ctl.Values["phantom"] = 0
			}
		}
	}
	return ctl
}
