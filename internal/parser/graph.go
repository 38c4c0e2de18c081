package parser

import (
	"regexp"
	"strconv"
	"strings"

	"audioctl/internal/domain"
)

var portVolumeRe = regexp.MustCompile(`Prop:\s+key\s+Spa:Pod:Object:Param:Props:volume\s+\(\d+\),\s+flags\s+\d+\s+Float\s+([0-9.]+)`)

type scanState int

const (
	stateOutside scanState = iota
	stateInBlock
	stateDone
)

// graphScanner walks a graph dump block by block. A block's properties are
// only complete once the next "id:" line or the end of input is seen, so
// the match check runs when a block is closed.
type graphScanner struct {
	target string
	state  scanState

	objectID int
	nodeID   int
	hasNode  bool
	port     string

	found domain.NodeRef
}

func (s *graphScanner) feed(line string) {
	if s.state == stateDone {
		return
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "id: ") {
		s.closeBlock()
		if s.state == stateDone {
			return
		}
		s.openBlock(trimmed)
		return
	}
	if s.state != stateInBlock {
		return
	}
	key, value, ok := property(trimmed)
	if !ok {
		return
	}
	switch key {
	case "node.id":
		if id, err := strconv.Atoi(value); err == nil {
			s.nodeID = id
			s.hasNode = true
		}
	case "port.name":
		s.port = value
	}
}

func (s *graphScanner) openBlock(line string) {
	s.nodeID, s.hasNode, s.port = 0, false, ""
	fields := strings.Fields(line)
	id, err := strconv.Atoi(strings.TrimSuffix(fields[1], ","))
	if err != nil {
		s.state = stateOutside
		return
	}
	s.objectID = id
	s.state = stateInBlock
}

func (s *graphScanner) closeBlock() {
	if s.state != stateInBlock || s.port != s.target {
		return
	}
	s.found = domain.NodeRef{ObjectID: s.objectID, NodeID: s.nodeID, HasNode: s.hasNode}
	s.state = stateDone
}

// property splits a `key = "value"` line, tolerating the leading "*" the
// tool prints for changed properties.
func property(line string) (string, string, bool) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.Trim(strings.TrimSpace(value), `"`), true
}

// FindPort scans a full graph dump for the block whose port.name equals
// port exactly and returns its object and node ids.
func FindPort(raw, port string) (domain.NodeRef, error) {
	if port == "" {
		return domain.NodeRef{}, domain.NotFound("port", "Port name must not be empty")
	}
	s := &graphScanner{target: port}
	for _, line := range lines(raw) {
		s.feed(line)
		if s.state == stateDone {
			return s.found, nil
		}
	}
	s.closeBlock()
	if s.state == stateDone {
		return s.found, nil
	}
	return domain.NodeRef{}, domain.NotFound("port", "Could not find node with port name: %s", port)
}

// PortVolume extracts the volume property from a parameter dump.
func PortVolume(raw string) (float64, error) {
	m := portVolumeRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, failure("port volume", raw, "Could not parse volume from pw-cli output")
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, failure("port volume", raw, "Could not parse volume from pw-cli output: %v", err)
	}
	return v, nil
}

// ShortCardID finds the short card listing line containing name and
// returns its leading id column.
func ShortCardID(raw, name string) (domain.CardID, error) {
	for _, line := range lines(raw) {
		if !strings.Contains(line, name) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, failure("card id", raw, "Could not parse card id %q for %s", fields[0], name)
		}
		return domain.CardID(id), nil
	}
	return 0, domain.NotFound("card id", "Could not find card with name: %s", name)
}
