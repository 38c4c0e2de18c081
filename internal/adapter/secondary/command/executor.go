package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"audioctl/internal/domain"
	"audioctl/internal/logging"
)

// Executor implements domain.Runner by launching the program named by
// argv[0]. Each call blocks until the program exits.
type Executor struct {
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewExecutor creates an executor. A zero timeout lets tools run for as
// long as the caller's context allows.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{
		timeout: timeout,
		logger:  logging.Named("exec"),
	}
}

// Run executes argv and returns its standard output. A non-zero exit maps to
// ErrCommandRejected carrying stderr verbatim; a failure to launch maps to
// ErrExecutionFailure.
func (e *Executor) Run(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", domain.ExecutionFailure("<empty>", errors.New("no command given"))
	}
	tool := argv[0]

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, tool, argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	e.logger.Debugw("Ran command", "argv", argv, "took", time.Since(start), "error", err)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", domain.ExecutionFailure(tool, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", domain.CommandRejected(tool, stderr.String())
		}
		return "", domain.ExecutionFailure(tool, err)
	}
	return stdout.String(), nil
}
