package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"audioctl/internal/domain"
	"audioctl/internal/logging"
	"audioctl/internal/parser"
	"audioctl/internal/resolver"
)

// MixerUseCase is the primary port: the typed query/command pairs exposed to
// the CLI, the HTTP API and the control-panel bridge.
type MixerUseCase interface {
	InitCard(ctx context.Context) (domain.CardID, error)
	Card(ctx context.Context) (domain.CardID, error)
	Refresh()
	Rename(names resolver.Names)

	Controls(ctx context.Context) (map[string][]string, error)
	ControlNames(ctx context.Context) ([]string, error)
	DescribeControls(ctx context.Context) ([]domain.ControlInfo, error)

	Volume(ctx context.Context, control string) (int, error)
	SetVolume(ctx context.Context, control string, volume int) error
	Gain(ctx context.Context, control string) (int, error)
	SetGain(ctx context.Context, control string, gain int) error
	Switch(ctx context.Context, control string) (bool, error)
	SetSwitch(ctx context.Context, control string, on bool) error
	Phantom(ctx context.Context, input string) (bool, error)
	SetPhantom(ctx context.Context, input string, on bool) error
	Sensitivity(ctx context.Context, control string) (string, error)
	SetSensitivity(ctx context.Context, control, value string) error

	SendLevel(ctx context.Context, source, destination string) (float64, error)
	SetSendLevel(ctx context.Context, source, destination string, level float64) error
	Outputs() []domain.Output
	Route(ctx context.Context, input, output string) (left, right float64, err error)
	SetRoute(ctx context.Context, input, output string, level float64) error
	SetOutputVolume(ctx context.Context, output string, level float64) error

	PortVolume(ctx context.Context, port string) (float64, error)
	SetPortVolume(ctx context.Context, port string, volume float64) error

	Profiles(ctx context.Context) ([]domain.Profile, error)
	ActiveProfile(ctx context.Context) (string, error)
	SetProfile(ctx context.Context, profile string) error
	Quantum(ctx context.Context) (int, error)
	SetQuantum(ctx context.Context, quantum int) error

	Settings() (domain.CardSettings, error)
	SaveChannel(ctx context.Context, index int, channel domain.ChannelSettings) (domain.ChannelSettings, error)
	Restore(ctx context.Context) error

	Health(ctx context.Context) []domain.HealthCheck
}

// Options carries the device layout and the host dependencies to probe.
type Options struct {
	Outputs  []domain.Output
	Playback domain.StereoPair
	Binaries []string
	Daemons  []string
}

// mixerInteractor implements MixerUseCase. It depends only on the domain
// layer and secondary ports.
type mixerInteractor struct {
	mixer    domain.Mixer
	graph    domain.Graph
	resolver *resolver.Resolver
	repo     domain.SettingsRepository
	procs    domain.ProcessChecker
	opts     Options
	logger   *zap.SugaredLogger
}

// NewMixerUseCase creates the use case. Dependencies are injected
// (secondary ports). The card is resolved lazily on first use.
func NewMixerUseCase(
	mixer domain.Mixer,
	graph domain.Graph,
	res *resolver.Resolver,
	repo domain.SettingsRepository,
	procs domain.ProcessChecker,
	opts Options,
) MixerUseCase {
	return &mixerInteractor{
		mixer:    mixer,
		graph:    graph,
		resolver: res,
		repo:     repo,
		procs:    procs,
		opts:     opts,
		logger:   logging.Named("usecase"),
	}
}

func (m *mixerInteractor) InitCard(ctx context.Context) (domain.CardID, error) {
	return m.resolver.InitCard(ctx)
}

func (m *mixerInteractor) Card(ctx context.Context) (domain.CardID, error) {
	return m.resolver.Card(ctx)
}

// Refresh drops every resolved identifier after a replug or server restart.
func (m *mixerInteractor) Refresh() {
	m.resolver.Refresh()
}

func (m *mixerInteractor) Rename(names resolver.Names) {
	m.resolver.Rename(names)
}

// withCard resolves the session card and runs fn against it.
func withCard[T any](ctx context.Context, m *mixerInteractor, fn func(domain.CardID) (T, error)) (T, error) {
	card, err := m.resolver.Card(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(card)
}

func (m *mixerInteractor) do(ctx context.Context, fn func(domain.CardID) error) error {
	_, err := withCard(ctx, m, func(card domain.CardID) (struct{}, error) {
		return struct{}{}, fn(card)
	})
	return err
}

func (m *mixerInteractor) Controls(ctx context.Context) (map[string][]string, error) {
	return withCard(ctx, m, func(card domain.CardID) (map[string][]string, error) {
		return m.mixer.Controls(ctx, card)
	})
}

// ControlNames lists control names in sorted order.
func (m *mixerInteractor) ControlNames(ctx context.Context) ([]string, error) {
	controls, err := m.Controls(ctx)
	if err != nil {
		return nil, err
	}
	names := funk.Keys(controls).([]string)
	sort.Strings(names)
	return names, nil
}

func (m *mixerInteractor) DescribeControls(ctx context.Context) ([]domain.ControlInfo, error) {
	controls, err := m.Controls(ctx)
	if err != nil {
		return nil, err
	}
	names := funk.Keys(controls).([]string)
	sort.Strings(names)
	infos := make([]domain.ControlInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, parser.Describe(name, controls[name]))
	}
	return infos, nil
}

func (m *mixerInteractor) Volume(ctx context.Context, control string) (int, error) {
	return withCard(ctx, m, func(card domain.CardID) (int, error) {
		return m.mixer.Volume(ctx, card, control)
	})
}

func (m *mixerInteractor) SetVolume(ctx context.Context, control string, volume int) error {
	return m.do(ctx, func(card domain.CardID) error {
		return m.mixer.SetVolume(ctx, card, control, volume)
	})
}

func (m *mixerInteractor) Gain(ctx context.Context, control string) (int, error) {
	return withCard(ctx, m, func(card domain.CardID) (int, error) {
		return m.mixer.Gain(ctx, card, control)
	})
}

func (m *mixerInteractor) SetGain(ctx context.Context, control string, gain int) error {
	return m.do(ctx, func(card domain.CardID) error {
		return m.mixer.SetGain(ctx, card, control, gain)
	})
}

func (m *mixerInteractor) Switch(ctx context.Context, control string) (bool, error) {
	return withCard(ctx, m, func(card domain.CardID) (bool, error) {
		return m.mixer.Switch(ctx, card, control, "")
	})
}

func (m *mixerInteractor) SetSwitch(ctx context.Context, control string, on bool) error {
	return m.do(ctx, func(card domain.CardID) error {
		return m.mixer.SetSwitch(ctx, card, control, on)
	})
}

// Phantom reads the phantom power switch of input ("Mic-AN1").
func (m *mixerInteractor) Phantom(ctx context.Context, input string) (bool, error) {
	control := domain.InputControl(input, domain.PhantomMarker)
	return withCard(ctx, m, func(card domain.CardID) (bool, error) {
		return m.mixer.Switch(ctx, card, control, domain.PhantomMarker)
	})
}

func (m *mixerInteractor) SetPhantom(ctx context.Context, input string, on bool) error {
	control := domain.InputControl(input, domain.PhantomMarker)
	m.logger.Infow("Phantom power", "input", input, "on", on)
	return m.do(ctx, func(card domain.CardID) error {
		return m.mixer.SetSwitch(ctx, card, control, on)
	})
}

func (m *mixerInteractor) Sensitivity(ctx context.Context, control string) (string, error) {
	return withCard(ctx, m, func(card domain.CardID) (string, error) {
		return m.mixer.Sensitivity(ctx, card, control)
	})
}

func (m *mixerInteractor) SetSensitivity(ctx context.Context, control, value string) error {
	return m.do(ctx, func(card domain.CardID) error {
		return m.mixer.SetSensitivity(ctx, card, control, value)
	})
}

// SendLevel reads the level sent from source to destination as a fraction.
func (m *mixerInteractor) SendLevel(ctx context.Context, source, destination string) (float64, error) {
	control := domain.CompositeControlName(source, destination)
	return withCard(ctx, m, func(card domain.CardID) (float64, error) {
		return m.mixer.Level(ctx, card, control)
	})
}

func (m *mixerInteractor) SetSendLevel(ctx context.Context, source, destination string, level float64) error {
	control := domain.CompositeControlName(source, destination)
	return m.do(ctx, func(card domain.CardID) error {
		return m.mixer.SetLevel(ctx, card, control, level)
	})
}

func (m *mixerInteractor) Outputs() []domain.Output {
	return append([]domain.Output(nil), m.opts.Outputs...)
}

func (m *mixerInteractor) output(name string) (domain.Output, error) {
	found := funk.Find(m.opts.Outputs, func(o domain.Output) bool { return o.Name == name })
	if found == nil {
		return domain.Output{}, domain.NotFound("output", "Unknown output: %s", name)
	}
	return found.(domain.Output), nil
}

// Route reads both sides of the stereo route from input to output.
func (m *mixerInteractor) Route(ctx context.Context, input, output string) (float64, float64, error) {
	out, err := m.output(output)
	if err != nil {
		return 0, 0, err
	}
	pair := domain.RoutePair(input, out)
	left, err := m.SendLevel(ctx, input, out.Route.Left)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", pair.Left, err)
	}
	right, err := m.SendLevel(ctx, input, out.Route.Right)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", pair.Right, err)
	}
	return left, right, nil
}

// SetRoute applies level to both sides of the stereo route.
func (m *mixerInteractor) SetRoute(ctx context.Context, input, output string, level float64) error {
	out, err := m.output(output)
	if err != nil {
		return err
	}
	return m.setPair(ctx, domain.RoutePair(input, out), level)
}

// SetOutputVolume sets the playback feed of output on both sides.
func (m *mixerInteractor) SetOutputVolume(ctx context.Context, output string, level float64) error {
	out, err := m.output(output)
	if err != nil {
		return err
	}
	return m.setPair(ctx, domain.PlaybackPair(m.opts.Playback, out), level)
}

func (m *mixerInteractor) setPair(ctx context.Context, pair domain.StereoPair, level float64) error {
	return m.do(ctx, func(card domain.CardID) error {
		if err := m.mixer.SetLevel(ctx, card, pair.Left, level); err != nil {
			return err
		}
		return m.mixer.SetLevel(ctx, card, pair.Right, level)
	})
}

func (m *mixerInteractor) PortVolume(ctx context.Context, port string) (float64, error) {
	node, err := m.resolver.Node(ctx, port)
	if err != nil {
		return 0, err
	}
	return m.graph.PortVolume(ctx, node)
}

func (m *mixerInteractor) SetPortVolume(ctx context.Context, port string, volume float64) error {
	node, err := m.resolver.Node(ctx, port)
	if err != nil {
		return err
	}
	return m.graph.SetPortVolume(ctx, node, volume)
}

func (m *mixerInteractor) Profiles(ctx context.Context) ([]domain.Profile, error) {
	card, err := m.resolver.GraphCard(ctx)
	if err != nil {
		return nil, err
	}
	return m.graph.Profiles(ctx, card)
}

func (m *mixerInteractor) ActiveProfile(ctx context.Context) (string, error) {
	card, err := m.resolver.GraphCard(ctx)
	if err != nil {
		return "", err
	}
	return m.graph.ActiveProfile(ctx, card)
}

func (m *mixerInteractor) SetProfile(ctx context.Context, profile string) error {
	card, err := m.resolver.GraphCard(ctx)
	if err != nil {
		return err
	}
	if err := m.graph.SetProfile(ctx, card, profile); err != nil {
		return err
	}
	// Switching profile recreates the card's nodes.
	m.resolver.Refresh()
	return nil
}

func (m *mixerInteractor) Quantum(ctx context.Context) (int, error) {
	return m.graph.Quantum(ctx)
}

func (m *mixerInteractor) SetQuantum(ctx context.Context, quantum int) error {
	return m.graph.SetQuantum(ctx, quantum)
}

func (m *mixerInteractor) Settings() (domain.CardSettings, error) {
	return m.repo.Load()
}

// SaveChannel captures the live state of a channel and stores it together
// with the active profile and clock quantum.
func (m *mixerInteractor) SaveChannel(ctx context.Context, index int, ch domain.ChannelSettings) (domain.ChannelSettings, error) {
	settings, err := m.repo.Load()
	if err != nil {
		return ch, err
	}

	if ch.Type == domain.ChannelMic && ch.Control != "" {
		if ch.Phantom, err = m.Phantom(ctx, ch.Control); err != nil {
			return ch, err
		}
		if ch.Pad, err = m.Switch(ctx, domain.InputControl(ch.Control, domain.PadSuffix)); err != nil {
			return ch, err
		}
		if ch.Gain, err = m.Gain(ctx, domain.InputControl(ch.Control, domain.GainSuffix)); err != nil {
			return ch, err
		}
	}
	if ch.Port != "" {
		if ch.Volume, err = m.PortVolume(ctx, ch.Port); err != nil {
			return ch, err
		}
	}

	if profile, err := m.ActiveProfile(ctx); err == nil {
		settings.ActiveProfile = profile
	} else {
		m.logger.Warnw("Active profile not saved", "error", err)
	}
	if quantum, err := m.Quantum(ctx); err == nil {
		settings.BufferSize = quantum
	} else {
		m.logger.Warnw("Buffer size not saved", "error", err)
	}

	if settings.Channels == nil {
		settings.Channels = map[int]domain.ChannelSettings{}
	}
	settings.Channels[index] = ch
	if err := m.repo.Save(settings); err != nil {
		return ch, err
	}
	m.logger.Infow("Channel saved", "index", index, "name", ch.DisplayName)
	return ch, nil
}

// Restore re-applies saved settings. Every step is attempted; the failures
// are returned joined.
func (m *mixerInteractor) Restore(ctx context.Context) error {
	settings, err := m.repo.Load()
	if err != nil {
		return err
	}

	var errs []error
	if settings.ActiveProfile != "" {
		if err := m.SetProfile(ctx, settings.ActiveProfile); err != nil {
			errs = append(errs, fmt.Errorf("profile %s: %w", settings.ActiveProfile, err))
		}
	}
	if settings.BufferSize != 0 {
		if err := m.SetQuantum(ctx, settings.BufferSize); err != nil {
			errs = append(errs, fmt.Errorf("buffer size %d: %w", settings.BufferSize, err))
		}
	}

	indexes := funk.Keys(settings.Channels).([]int)
	sort.Ints(indexes)
	for _, idx := range indexes {
		ch := settings.Channels[idx]
		if err := m.restoreChannel(ctx, ch); err != nil {
			errs = append(errs, fmt.Errorf("channel %d (%s): %w", idx, ch.DisplayName, err))
		}
	}
	return errors.Join(errs...)
}

func (m *mixerInteractor) restoreChannel(ctx context.Context, ch domain.ChannelSettings) error {
	if ch.Type == domain.ChannelMic && ch.Control != "" {
		if err := m.SetPhantom(ctx, ch.Control, ch.Phantom); err != nil {
			return err
		}
		if err := m.SetSwitch(ctx, domain.InputControl(ch.Control, domain.PadSuffix), ch.Pad); err != nil {
			return err
		}
		if err := m.SetGain(ctx, domain.InputControl(ch.Control, domain.GainSuffix), ch.Gain); err != nil {
			return err
		}
	}
	if ch.Port != "" {
		return m.SetPortVolume(ctx, ch.Port, ch.Volume)
	}
	return nil
}

// Health probes the tool binaries and audio daemons.
func (m *mixerInteractor) Health(ctx context.Context) []domain.HealthCheck {
	var checks []domain.HealthCheck
	for _, bin := range funk.UniqString(m.opts.Binaries) {
		path, err := m.procs.OnPath(bin)
		check := domain.HealthCheck{Name: bin, OK: err == nil, Detail: path}
		if err != nil {
			check.Detail = err.Error()
		}
		checks = append(checks, check)
	}
	for _, daemon := range m.opts.Daemons {
		running, err := m.procs.Running(daemon)
		check := domain.HealthCheck{Name: daemon, OK: running, Detail: "running"}
		switch {
		case err != nil:
			check.Detail = err.Error()
		case !running:
			check.Detail = "not running"
		}
		checks = append(checks, check)
	}
	if card, err := m.resolver.Card(ctx); err != nil {
		checks = append(checks, domain.HealthCheck{Name: "card", Detail: err.Error()})
	} else {
		checks = append(checks, domain.HealthCheck{Name: "card", OK: true, Detail: "card " + card.String()})
	}
	return checks
}
