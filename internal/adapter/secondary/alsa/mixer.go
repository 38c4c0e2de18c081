package alsa

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"audioctl/internal/domain"
	"audioctl/internal/logging"
	"audioctl/internal/parser"
)

// Tools holds the command lines used to reach the mixer subsystem.
type Tools struct {
	Aplay  []string
	Amixer []string
}

// DefaultTools returns the stock command lines.
func DefaultTools() Tools {
	return Tools{
		Aplay:  []string{"aplay", "-l"},
		Amixer: []string{"amixer"},
	}
}

// Mixer implements domain.Mixer on top of aplay and amixer.
// This is a secondary adapter.
type Mixer struct {
	run    domain.Runner
	tools  Tools
	logger *zap.SugaredLogger
}

// NewMixer creates a mixer adapter issuing commands through run.
func NewMixer(run domain.Runner, tools Tools) *Mixer {
	return &Mixer{
		run:    run,
		tools:  tools,
		logger: logging.Named("alsa"),
	}
}

func (m *Mixer) amixer(card domain.CardID, args ...string) []string {
	argv := append([]string{}, m.tools.Amixer...)
	argv = append(argv, "-c", card.String())
	return append(argv, args...)
}

func (m *Mixer) get(ctx context.Context, card domain.CardID, control string) (string, error) {
	return m.run.Run(ctx, m.amixer(card, "get", control))
}

func (m *Mixer) set(ctx context.Context, card domain.CardID, control, value string) error {
	m.logger.Debugw("Setting control", "card", card, "control", control, "value", value)
	_, err := m.run.Run(ctx, m.amixer(card, "set", control, value))
	return err
}

// ResolveCard finds the index of the playback device whose listing line
// contains name.
func (m *Mixer) ResolveCard(ctx context.Context, name string) (domain.CardID, error) {
	out, err := m.run.Run(ctx, m.tools.Aplay)
	if err != nil {
		return 0, err
	}
	card, err := parser.CardIndex(out, name)
	if err != nil {
		return 0, err
	}
	m.logger.Infow("Resolved card", "name", name, "card", card)
	return card, nil
}

// Controls lists every control of card with its raw description lines.
func (m *Mixer) Controls(ctx context.Context, card domain.CardID) (map[string][]string, error) {
	out, err := m.run.Run(ctx, m.amixer(card))
	if err != nil {
		return nil, err
	}
	return parser.Controls(out), nil
}

// Volume reads a control's level as a percentage.
func (m *Mixer) Volume(ctx context.Context, card domain.CardID, control string) (int, error) {
	out, err := m.get(ctx, card, control)
	if err != nil {
		return 0, err
	}
	return parser.Percent(out)
}

// SetVolume clamps volume to [0,100] and writes it as a percentage.
func (m *Mixer) SetVolume(ctx context.Context, card domain.CardID, control string, volume int) error {
	return m.set(ctx, card, control, domain.PercentArg(domain.ClampVolume(volume)))
}

// Level reads a send or routing control as a fraction of full scale.
func (m *Mixer) Level(ctx context.Context, card domain.CardID, control string) (float64, error) {
	p, err := m.Volume(ctx, card, control)
	if err != nil {
		return 0, err
	}
	return domain.PercentToLevel(p), nil
}

// SetLevel clamps level to [0,1] and writes it as an integer percentage.
func (m *Mixer) SetLevel(ctx context.Context, card domain.CardID, control string, level float64) error {
	return m.set(ctx, card, control, domain.PercentArg(domain.LevelToPercent(level)))
}

// Gain reads a control's value in device-native units.
func (m *Mixer) Gain(ctx context.Context, card domain.CardID, control string) (int, error) {
	out, err := m.get(ctx, card, control)
	if err != nil {
		return 0, err
	}
	return parser.NativeValue(out)
}

// SetGain writes a device-native value; the device enforces its own range.
func (m *Mixer) SetGain(ctx context.Context, card domain.CardID, control string, gain int) error {
	if gain < 0 {
		_, err := m.run.Run(ctx, m.amixer(card, "set", control, "--", strconv.Itoa(gain)))
		return err
	}
	return m.set(ctx, card, control, strconv.Itoa(gain))
}

// Switch reads the state of a boolean control. A non-empty marker restricts
// the match to headers that also contain it.
func (m *Mixer) Switch(ctx context.Context, card domain.CardID, control, marker string) (bool, error) {
	out, err := m.get(ctx, card, control)
	if err != nil {
		return false, err
	}
	return parser.Switch(out, control, marker)
}

// SetSwitch turns a boolean control on or off.
func (m *Mixer) SetSwitch(ctx context.Context, card domain.CardID, control string, on bool) error {
	return m.set(ctx, card, control, domain.SwitchToken(on))
}

// Sensitivity reads the current item of an enumerated control.
func (m *Mixer) Sensitivity(ctx context.Context, card domain.CardID, control string) (string, error) {
	out, err := m.get(ctx, card, control)
	if err != nil {
		return "", err
	}
	return parser.EnumItem(out, control)
}

// SetSensitivity selects an item of an enumerated control. Values such as
// "-10dBV" start with a dash, hence the "--" separator.
func (m *Mixer) SetSensitivity(ctx context.Context, card domain.CardID, control, value string) error {
	if value == "" {
		return fmt.Errorf("set %s: %w", control, domain.ErrInvalidSensitivity)
	}
	_, err := m.run.Run(ctx, m.amixer(card, "sset", control, "--", value))
	return err
}
