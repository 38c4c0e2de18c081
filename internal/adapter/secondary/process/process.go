// Package process probes the host for running audio daemons and for the
// tool binaries the adapters invoke.
package process

import (
	"fmt"
	"os/exec"

	"github.com/mitchellh/go-ps"
	"github.com/thoas/go-funk"
)

// Lister returns the running processes. ps.Processes satisfies it.
type Lister func() ([]ps.Process, error)

// Checker implements domain.ProcessChecker.
type Checker struct {
	list     Lister
	lookPath func(string) (string, error)
}

// NewChecker creates a checker reading the live process table.
func NewChecker() *Checker {
	return &Checker{list: ps.Processes, lookPath: exec.LookPath}
}

// Running reports whether a process whose executable is name exists.
func (c *Checker) Running(name string) (bool, error) {
	procs, err := c.list()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}
	found := funk.Find(procs, func(p ps.Process) bool {
		return p.Executable() == name
	})
	return found != nil, nil
}

// OnPath resolves binary against PATH.
func (c *Checker) OnPath(binary string) (string, error) {
	return c.lookPath(binary)
}
