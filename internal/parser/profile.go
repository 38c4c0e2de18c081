package parser

import (
	"regexp"
	"strings"

	"audioctl/internal/domain"
)

const cardHeaderPrefix = "Card #"

var (
	activeProfileRe = regexp.MustCompile(`^\s*Active Profile: (.+?)\s*$`)
	profileRe       = regexp.MustCompile(`^\s+(\S+): (.*) \(sinks: \d+, sources: \d+, priority: \d+, available: (yes|no)\)\s*$`)
)

// cardSection yields the lines belonging to one card of a card listing.
// It enters on the exact header for card and stops at the next header.
type cardSection struct {
	header string
	state  scanState
}

func newCardSection(card domain.CardID) *cardSection {
	return &cardSection{header: cardHeaderPrefix + card.String()}
}

// accept reports whether line lies inside the target section.
func (c *cardSection) accept(line string) bool {
	isHeader := strings.HasPrefix(line, cardHeaderPrefix)
	switch c.state {
	case stateOutside:
		if isHeader && strings.TrimSpace(line) == c.header {
			c.state = stateInBlock
		}
		return false
	case stateInBlock:
		if isHeader {
			c.state = stateDone
			return false
		}
		return true
	default:
		return false
	}
}

func (c *cardSection) seen() bool {
	return c.state != stateOutside
}

// ActiveProfile returns the active profile of card from a card listing.
func ActiveProfile(raw string, card domain.CardID) (string, error) {
	section := newCardSection(card)
	for _, line := range lines(raw) {
		if !section.accept(line) {
			if section.state == stateDone {
				break
			}
			continue
		}
		if m := activeProfileRe.FindStringSubmatch(line); m != nil {
			return m[1], nil
		}
	}
	if !section.seen() {
		return "", domain.NotFound("active profile", "Could not find card id: %s", card)
	}
	return "", failure("active profile", raw, "Could not find active profile for card id: %s", card)
}

// Profiles lists every profile of card with its availability flag.
func Profiles(raw string, card domain.CardID) ([]domain.Profile, error) {
	section := newCardSection(card)
	var profiles []domain.Profile
	for _, line := range lines(raw) {
		if !section.accept(line) {
			if section.state == stateDone {
				break
			}
			continue
		}
		if m := profileRe.FindStringSubmatch(line); m != nil {
			profiles = append(profiles, domain.Profile{
				Name:        m[1],
				Description: m[2],
				Available:   m[3] == "yes",
			})
		}
	}
	if !section.seen() {
		return nil, domain.NotFound("profiles", "Could not find card id: %s", card)
	}
	if len(profiles) == 0 {
		return nil, failure("profiles", raw, "Could not find profiles for card id: %s", card)
	}
	return profiles, nil
}
