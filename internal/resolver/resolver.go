package resolver

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"audioctl/internal/domain"
	"audioctl/internal/logging"
)

// Names are the device names each subsystem knows the card by.
type Names struct {
	Mixer string
	Graph string
}

// Resolver owns the session's resolved identifiers.
type Resolver struct {
	mixer  domain.Mixer
	graph  domain.Graph
	logger *zap.SugaredLogger

	mu    sync.RWMutex
	names Names

	card      CardCache
	graphCard CardCache
	nodes     *Cache[string, domain.NodeRef]
}

// New creates a resolver over the two subsystems.
func New(mixer domain.Mixer, graph domain.Graph, names Names) *Resolver {
	return &Resolver{
		mixer:  mixer,
		graph:  graph,
		names:  names,
		logger: logging.Named("resolver"),
		nodes:  NewCache[string, domain.NodeRef](),
	}
}

// Names returns the card names currently in use.
func (r *Resolver) Names() Names {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names
}

func (r *Resolver) resolveMixerCard(ctx context.Context) (domain.CardID, error) {
	return r.mixer.ResolveCard(ctx, r.Names().Mixer)
}

func (r *Resolver) resolveGraphCard(ctx context.Context) (domain.CardID, error) {
	return r.graph.ResolveCard(ctx, r.Names().Graph)
}

// InitCard resolves the mixer card by name, replacing any previous value.
// It is the explicit session initialisation.
func (r *Resolver) InitCard(ctx context.Context) (domain.CardID, error) {
	name := r.Names().Mixer
	card, err := r.card.Init(ctx, r.resolveMixerCard)
	if err != nil {
		return 0, fmt.Errorf("initialize card %q: %w", name, err)
	}
	r.logger.Infow("Card initialized", "name", name, "card", card)
	return card, nil
}

// Card returns the session mixer card, resolving it on first use.
func (r *Resolver) Card(ctx context.Context) (domain.CardID, error) {
	return r.card.GetOrInit(ctx, r.resolveMixerCard)
}

// CachedCard returns the mixer card only if it was already resolved.
func (r *Resolver) CachedCard() (domain.CardID, error) {
	return r.card.Get()
}

// GraphCard returns the audio server's id for the card.
func (r *Resolver) GraphCard(ctx context.Context) (domain.CardID, error) {
	return r.graphCard.GetOrInit(ctx, r.resolveGraphCard)
}

// Node returns the graph node of port, resolving it on first use.
func (r *Resolver) Node(ctx context.Context, port string) (domain.NodeRef, error) {
	return r.nodes.GetOrResolve(ctx, port, r.graph.ResolveNode)
}

// NodeCount returns the number of cached ports.
func (r *Resolver) NodeCount() int {
	return r.nodes.Len()
}

// Rename updates the card names and drops the identifiers resolved under
// the old ones.
func (r *Resolver) Rename(names Names) {
	r.mu.Lock()
	changed := r.names != names
	r.names = names
	r.mu.Unlock()
	if changed {
		r.logger.Infow("Card names changed", "mixer", names.Mixer, "graph", names.Graph)
		r.Refresh()
	}
}

// Refresh forgets every resolved identifier. Replugging the device or
// restarting the audio server reassigns them.
func (r *Resolver) Refresh() {
	r.card.Reset()
	r.graphCard.Reset()
	r.nodes.Reset()
	r.logger.Debug("Resolved identifiers dropped")
}
