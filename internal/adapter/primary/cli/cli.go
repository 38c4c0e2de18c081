package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"audioctl/internal/config"
	"audioctl/internal/logging"
)

var (
	cfgPath   string
	verbosity int
	dryRun    bool
	jsonOut   bool
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "audioctl",
		Short:         "Control a multi-channel USB audio interface from the command line",
		Long:          "Mixer, routing, profile and buffer-size control for a USB audio interface, via CLI, HTTP API or MQTT control panel.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv, ... up to 4)")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "log commands instead of running them")
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.SetVerbosity(verbosity)
	}

	cmd.AddCommand(
		newCardsCmd(),
		newControlsCmd(),
		newVolumeCmd(),
		newGainCmd(),
		newSwitchCmd(),
		newPhantomCmd(),
		newSensitivityCmd(),
		newSendCmd(),
		newRouteCmd(),
		newOutputCmd(),
		newPortVolumeCmd(),
		newProfileCmd(),
		newQuantumCmd(),
		newSettingsCmd(),
		newDoctorCmd(),
		newServeCmd(),
		newBridgeCmd(),
		newShellCmd(),
	)

	return cmd
}

// Execute runs the root command and reports errors on stderr.
func Execute() error {
	defer logging.Sync()
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// runWithApp wraps a command body that needs the wired application.
func runWithApp(fn func(cmd *cobra.Command, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return fn(cmd, app, args)
	}
}

// emit writes v as JSON with --json, or the human form otherwise.
func emit(w io.Writer, human string, v any) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, human)
	return err
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func parseLevel(s string) (float64, error) {
	level, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("level must be a number between 0 and 1: %w", err)
	}
	return level, nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return n, nil
}
