package command

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"audioctl/internal/logging"
)

// DryRun implements domain.Runner without touching the system. It records
// every argv and answers from canned outputs keyed by the joined argv.
// Useful for tests or hosts without the audio tools installed.
type DryRun struct {
	logger *zap.SugaredLogger

	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

// NewDryRun creates a runner that answers every command with empty output.
func NewDryRun() *DryRun {
	return &DryRun{
		logger:  logging.Named("dry-run"),
		outputs: map[string]string{},
		errs:    map[string]error{},
	}
}

// Respond registers the output returned for argv.
func (d *DryRun) Respond(output string, argv ...string) *DryRun {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outputs[strings.Join(argv, " ")] = output
	return d
}

// Fail registers the error returned for argv.
func (d *DryRun) Fail(err error, argv ...string) *DryRun {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs[strings.Join(argv, " ")] = err
	return d
}

// Run records argv and returns the registered response.
func (d *DryRun) Run(ctx context.Context, argv []string) (string, error) {
	key := strings.Join(argv, " ")
	d.logger.Infow("Would run", "argv", key)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, append([]string(nil), argv...))
	if err, ok := d.errs[key]; ok {
		return "", err
	}
	return d.outputs[key], nil
}

// Calls returns a copy of every argv run so far.
func (d *DryRun) Calls() [][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]string, len(d.calls))
	copy(out, d.calls)
	return out
}
