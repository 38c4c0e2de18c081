// Package pipewire adapts the user-space audio server tools (pw-cli,
// pw-metadata and pactl) to the domain.Graph port.
package pipewire

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"audioctl/internal/domain"
	"audioctl/internal/logging"
	"audioctl/internal/parser"
)

const (
	propsParamID     = "2"
	propsParam       = "Props"
	settingsMetadata = "settings"
	forceQuantumKey  = "clock.force-quantum"
)

// Tools holds the command lines used to reach the audio server.
type Tools struct {
	PwCli      []string
	PwMetadata []string
	Pactl      []string
}

// DefaultTools returns the stock command lines.
func DefaultTools() Tools {
	return Tools{
		PwCli:      []string{"pw-cli"},
		PwMetadata: []string{"pw-metadata"},
		Pactl:      []string{"pactl"},
	}
}

// Graph implements domain.Graph.
type Graph struct {
	run    domain.Runner
	tools  Tools
	logger *zap.SugaredLogger
}

// NewGraph creates a graph adapter issuing commands through run.
func NewGraph(run domain.Runner, tools Tools) *Graph {
	return &Graph{
		run:    run,
		tools:  tools,
		logger: logging.Named("pipewire"),
	}
}

func argv(base []string, args ...string) []string {
	out := append([]string{}, base...)
	return append(out, args...)
}

// ResolveCard finds the audio server's id for the card whose short listing
// line contains name.
func (g *Graph) ResolveCard(ctx context.Context, name string) (domain.CardID, error) {
	out, err := g.run.Run(ctx, argv(g.tools.Pactl, "list", "cards", "short"))
	if err != nil {
		return 0, err
	}
	card, err := parser.ShortCardID(out, name)
	if err != nil {
		return 0, err
	}
	g.logger.Infow("Resolved graph card", "name", name, "card", card)
	return card, nil
}

// ResolveNode looks up the port named port in a full graph dump.
func (g *Graph) ResolveNode(ctx context.Context, port string) (domain.NodeRef, error) {
	out, err := g.run.Run(ctx, argv(g.tools.PwCli, "info", "all"))
	if err != nil {
		return domain.NodeRef{}, err
	}
	node, err := parser.FindPort(out, port)
	if err != nil {
		return domain.NodeRef{}, err
	}
	g.logger.Debugw("Resolved port", "port", port, "object", node.ObjectID, "node", node.NodeID, "hasNode", node.HasNode)
	return node, nil
}

// PortVolume reads the volume property of a node.
func (g *Graph) PortVolume(ctx context.Context, node domain.NodeRef) (float64, error) {
	target := strconv.Itoa(node.Target())
	out, err := g.run.Run(ctx, argv(g.tools.PwCli, "enum-params", target, propsParamID))
	if err != nil {
		return 0, err
	}
	return parser.PortVolume(out)
}

// SetPortVolume clamps volume to [0,1] and writes it as a Props parameter.
func (g *Graph) SetPortVolume(ctx context.Context, node domain.NodeRef, volume float64) error {
	payload, err := json.Marshal(struct {
		Volume float64 `json:"volume"`
	}{Volume: domain.ClampLevel(volume)})
	if err != nil {
		return err
	}
	target := strconv.Itoa(node.Target())
	_, err = g.run.Run(ctx, argv(g.tools.PwCli, "set-param", target, propsParam, string(payload)))
	return err
}

func (g *Graph) cards(ctx context.Context) (string, error) {
	return g.run.Run(ctx, argv(g.tools.Pactl, "list", "cards"))
}

// Profiles lists the profiles of card.
func (g *Graph) Profiles(ctx context.Context, card domain.CardID) ([]domain.Profile, error) {
	out, err := g.cards(ctx)
	if err != nil {
		return nil, err
	}
	return parser.Profiles(out, card)
}

// ActiveProfile returns the profile card is currently using.
func (g *Graph) ActiveProfile(ctx context.Context, card domain.CardID) (string, error) {
	out, err := g.cards(ctx)
	if err != nil {
		return "", err
	}
	return parser.ActiveProfile(out, card)
}

// SetProfile switches card to profile.
func (g *Graph) SetProfile(ctx context.Context, card domain.CardID, profile string) error {
	g.logger.Infow("Setting profile", "card", card, "profile", profile)
	_, err := g.run.Run(ctx, argv(g.tools.Pactl, "set-card-profile", card.String(), profile))
	return err
}

// Quantum returns the effective clock quantum of the audio server.
func (g *Graph) Quantum(ctx context.Context) (int, error) {
	out, err := g.run.Run(ctx, argv(g.tools.PwMetadata, "-n", settingsMetadata))
	if err != nil {
		return 0, err
	}
	return parser.Quantum(out)
}

// SetQuantum forces the clock quantum. Invalid sizes never reach the tool.
func (g *Graph) SetQuantum(ctx context.Context, quantum int) error {
	if err := domain.ValidateQuantum(quantum); err != nil {
		return err
	}
	g.logger.Infow("Forcing quantum", "quantum", quantum)
	_, err := g.run.Run(ctx, argv(g.tools.PwMetadata, "-n", settingsMetadata, "0", forceQuantumKey, strconv.Itoa(quantum)))
	return err
}
