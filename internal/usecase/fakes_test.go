package usecase

import (
	"context"
	"fmt"
	"sync"

	"audioctl/internal/domain"
)

type fakeMixer struct {
	mu       sync.Mutex
	card     domain.CardID
	resolves int
	listing  map[string][]string
	levels   map[string]float64
	volumes  map[string]int
	gains    map[string]int
	switches map[string]bool
	sens     map[string]string
	failSet  map[string]error
}

func newFakeMixer() *fakeMixer {
	return &fakeMixer{
		card:     2,
		listing:  map[string][]string{},
		levels:   map[string]float64{},
		volumes:  map[string]int{},
		gains:    map[string]int{},
		switches: map[string]bool{},
		sens:     map[string]string{},
		failSet:  map[string]error{},
	}
}

func (f *fakeMixer) ResolveCard(ctx context.Context, name string) (domain.CardID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolves++
	if name != "Babyface" {
		return 0, domain.NotFound("card", "Could not find card with name: %s", name)
	}
	return f.card, nil
}

func (f *fakeMixer) Controls(ctx context.Context, card domain.CardID) (map[string][]string, error) {
	return f.listing, nil
}

func (f *fakeMixer) Volume(ctx context.Context, card domain.CardID, control string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.volumes[control]
	if !ok {
		return 0, domain.CommandRejected("amixer", fmt.Sprintf("amixer: Unable to find simple control '%s',0\n", control))
	}
	return v, nil
}

func (f *fakeMixer) SetVolume(ctx context.Context, card domain.CardID, control string, volume int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes[control] = domain.ClampVolume(volume)
	return nil
}

func (f *fakeMixer) Level(ctx context.Context, card domain.CardID, control string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.levels[control], nil
}

func (f *fakeMixer) SetLevel(ctx context.Context, card domain.CardID, control string, level float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failSet[control]; ok {
		return err
	}
	f.levels[control] = domain.PercentToLevel(domain.LevelToPercent(level))
	return nil
}

func (f *fakeMixer) Gain(ctx context.Context, card domain.CardID, control string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gains[control], nil
}

func (f *fakeMixer) SetGain(ctx context.Context, card domain.CardID, control string, gain int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gains[control] = gain
	return nil
}

func (f *fakeMixer) Switch(ctx context.Context, card domain.CardID, control, marker string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	on, ok := f.switches[control]
	if !ok {
		return false, domain.NotFound("switch", "Control %s not found", control)
	}
	return on, nil
}

func (f *fakeMixer) SetSwitch(ctx context.Context, card domain.CardID, control string, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failSet[control]; ok {
		return err
	}
	f.switches[control] = on
	return nil
}

func (f *fakeMixer) Sensitivity(ctx context.Context, card domain.CardID, control string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sens[control], nil
}

func (f *fakeMixer) SetSensitivity(ctx context.Context, card domain.CardID, control, value string) error {
	if value == "" {
		return domain.ErrInvalidSensitivity
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sens[control] = value
	return nil
}

type fakeGraph struct {
	mu       sync.Mutex
	nodes    map[string]domain.NodeRef
	volumes  map[int]float64
	profiles []domain.Profile
	active   string
	quantum  int
	resolves int
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		nodes: map[string]domain.NodeRef{
			"capture_AUX0": {ObjectID: 80, NodeID: 61, HasNode: true},
		},
		volumes: map[int]float64{61: 0.8},
		profiles: []domain.Profile{
			{Name: "pro-audio", Description: "Pro Audio", Available: true},
			{Name: "off", Description: "Off", Available: true},
		},
		active:  "pro-audio",
		quantum: 1024,
	}
}

func (g *fakeGraph) ResolveCard(ctx context.Context, name string) (domain.CardID, error) {
	return 56, nil
}

func (g *fakeGraph) ResolveNode(ctx context.Context, port string) (domain.NodeRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolves++
	node, ok := g.nodes[port]
	if !ok {
		return domain.NodeRef{}, domain.NotFound("port", "Could not find node with port name: %s", port)
	}
	return node, nil
}

func (g *fakeGraph) PortVolume(ctx context.Context, node domain.NodeRef) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.volumes[node.Target()], nil
}

func (g *fakeGraph) SetPortVolume(ctx context.Context, node domain.NodeRef, volume float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.volumes[node.Target()] = domain.ClampLevel(volume)
	return nil
}

func (g *fakeGraph) Profiles(ctx context.Context, card domain.CardID) ([]domain.Profile, error) {
	return g.profiles, nil
}

func (g *fakeGraph) ActiveProfile(ctx context.Context, card domain.CardID) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active, nil
}

func (g *fakeGraph) SetProfile(ctx context.Context, card domain.CardID, profile string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = profile
	return nil
}

func (g *fakeGraph) Quantum(ctx context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.quantum, nil
}

func (g *fakeGraph) SetQuantum(ctx context.Context, quantum int) error {
	if err := domain.ValidateQuantum(quantum); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quantum = quantum
	return nil
}

type memoryRepo struct {
	settings domain.CardSettings
	saves    int
}

func (r *memoryRepo) Load() (domain.CardSettings, error) {
	return r.settings, nil
}

func (r *memoryRepo) Save(s domain.CardSettings) error {
	r.saves++
	r.settings = s
	return nil
}

type fakeProcs struct {
	running map[string]bool
	paths   map[string]string
}

func (p fakeProcs) Running(name string) (bool, error) {
	return p.running[name], nil
}

func (p fakeProcs) OnPath(binary string) (string, error) {
	path, ok := p.paths[binary]
	if !ok {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", binary)
	}
	return path, nil
}
