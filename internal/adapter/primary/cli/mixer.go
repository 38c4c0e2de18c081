package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thoas/go-funk"

	"audioctl/internal/domain"
)

func newCardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "Resolve the configured card to its current index",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			card, err := app.UseCase.InitCard(cmd.Context())
			if err != nil {
				return err
			}
			name := app.Config.Current().CardName
			return emit(cmd.OutOrStdout(), fmt.Sprintf("%s: card %s", name, card),
				map[string]any{"name": name, "card": int(card)})
		}),
	}
}

func newControlsCmd() *cobra.Command {
	var describe bool
	cmd := &cobra.Command{
		Use:   "controls",
		Short: "List the mixer controls of the card",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			out := cmd.OutOrStdout()
			if !describe {
				names, err := app.UseCase.ControlNames(cmd.Context())
				if err != nil {
					return err
				}
				return emit(out, strings.Join(names, "\n"), names)
			}
			infos, err := app.UseCase.DescribeControls(cmd.Context())
			if err != nil {
				return err
			}
			return emit(out, formatControls(infos), infos)
		}),
	}
	cmd.Flags().BoolVar(&describe, "describe", false, "show capabilities, limits and values")
	return cmd
}

func formatControls(infos []domain.ControlInfo) string {
	var b strings.Builder
	for _, info := range infos {
		fmt.Fprintf(&b, "%-24s %-28s", info.Name, strings.Join(info.Capabilities, ","))
		if info.Limits != (domain.Limits{}) {
			fmt.Fprintf(&b, " [%d..%d]", info.Limits.Min, info.Limits.Max)
		}
		if len(info.Values) > 0 {
			channels := funk.Keys(info.Values).([]string)
			sort.Strings(channels)
			for _, ch := range channels {
				fmt.Fprintf(&b, " %s=%d", ch, info.Values[ch])
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func newVolumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Get or set a control's volume (0-100)",
	}
	var showDB bool
	get := &cobra.Command{
		Use:   "get <control>",
		Short: "Print a control's volume",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			v, err := app.UseCase.Volume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			human := fmt.Sprintf("%d%%", v)
			if showDB {
				human = fmt.Sprintf("%d%% (%.1f dB)", v, domain.PercentToDB(v))
			}
			return emit(cmd.OutOrStdout(), human, map[string]any{"volume": v, "db": domain.PercentToDB(v)})
		}),
	}
	get.Flags().BoolVar(&showDB, "db", false, "also print the level in dB")
	set := &cobra.Command{
		Use:   "set <control> <0-100>",
		Short: "Set a control's volume; values are clamped to 0-100",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			v, err := parseInt("volume", args[1])
			if err != nil {
				return err
			}
			return app.UseCase.SetVolume(cmd.Context(), args[0], v)
		}),
	}
	cmd.AddCommand(get, set)
	return cmd
}

func newGainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gain",
		Short: "Get or set an input gain in device units",
	}
	var showDB bool
	get := &cobra.Command{
		Use:   "get <control>",
		Short: "Print an input gain",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			g, err := app.UseCase.Gain(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			human := fmt.Sprint(g)
			if showDB {
				human = fmt.Sprintf("%d (%.1f dB)", g, domain.AlsaToDB(g))
			}
			return emit(cmd.OutOrStdout(), human, map[string]any{"gain": g, "db": domain.AlsaToDB(g)})
		}),
	}
	get.Flags().BoolVar(&showDB, "db", false, "also print the level in dB")
	set := &cobra.Command{
		Use:   "set <control> <value>",
		Short: "Set an input gain; the device enforces its own range",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			g, err := parseInt("gain", args[1])
			if err != nil {
				return err
			}
			return app.UseCase.SetGain(cmd.Context(), args[0], g)
		}),
	}
	// Gain is device-native and may be negative.
	set.Flags().SetInterspersed(false)
	cmd.AddCommand(get, set)
	return cmd
}

// switchCommands builds get/set subcommands for a boolean control.
func switchCommands(cmd *cobra.Command, noun string,
	get func(cmd *cobra.Command, app *App, name string) (bool, error),
	set func(cmd *cobra.Command, app *App, name string, on bool) error,
) *cobra.Command {
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <" + noun + ">",
			Short: "Print the state",
			Args:  cobra.ExactArgs(1),
			RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
				on, err := get(cmd, app, args[0])
				if err != nil {
					return err
				}
				return emit(cmd.OutOrStdout(), domain.SwitchToken(on), map[string]any{"on": on})
			}),
		},
		&cobra.Command{
			Use:   "set <" + noun + "> <on|off>",
			Short: "Turn it on or off",
			Args:  cobra.ExactArgs(2),
			RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
				on, err := parseOnOff(args[1])
				if err != nil {
					return err
				}
				return set(cmd, app, args[0], on)
			}),
		},
	)
	return cmd
}

func newSwitchCmd() *cobra.Command {
	return switchCommands(&cobra.Command{
		Use:   "switch",
		Short: "Get or set a boolean control such as a pad",
	}, "control",
		func(cmd *cobra.Command, app *App, name string) (bool, error) {
			return app.UseCase.Switch(cmd.Context(), name)
		},
		func(cmd *cobra.Command, app *App, name string, on bool) error {
			return app.UseCase.SetSwitch(cmd.Context(), name, on)
		})
}

func newPhantomCmd() *cobra.Command {
	return switchCommands(&cobra.Command{
		Use:   "phantom",
		Short: "Get or set 48V phantom power of an input",
	}, "input",
		func(cmd *cobra.Command, app *App, name string) (bool, error) {
			return app.UseCase.Phantom(cmd.Context(), name)
		},
		func(cmd *cobra.Command, app *App, name string, on bool) error {
			return app.UseCase.SetPhantom(cmd.Context(), name, on)
		})
}

func newSensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Get or set a line input's reference level",
	}
	get := &cobra.Command{
		Use:   "get <control>",
		Short: "Print the reference level",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			v, err := app.UseCase.Sensitivity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), v, map[string]any{"sensitivity": v})
		}),
	}
	set := &cobra.Command{
		Use:   "set <control> <value>",
		Short: "Select a reference level such as +4dBu or -10dBV",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			return app.UseCase.SetSensitivity(cmd.Context(), args[0], args[1])
		}),
	}
	// "-10dBV" must not be taken for a flag.
	set.Flags().SetInterspersed(false)
	cmd.AddCommand(get, set)
	return cmd
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Get or set the level sent from a source to a destination (0-1)",
	}
	get := &cobra.Command{
		Use:   "get <source> <destination>",
		Short: "Print a send level",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			level, err := app.UseCase.SendLevel(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), fmt.Sprintf("%.2f", level), map[string]any{"level": level})
		}),
	}
	set := &cobra.Command{
		Use:   "set <source> <destination> <level>",
		Short: "Set a send level; values are clamped to 0-1",
		Args:  cobra.ExactArgs(3),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			level, err := parseLevel(args[2])
			if err != nil {
				return err
			}
			return app.UseCase.SetSendLevel(cmd.Context(), args[0], args[1], level)
		}),
	}
	cmd.AddCommand(get, set)
	return cmd
}

func newRouteCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Get or set the stereo route from an input to an output (0-1)",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "main", "configured output name")
	get := &cobra.Command{
		Use:   "get <input>",
		Short: "Print both sides of a route",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			left, right, err := app.UseCase.Route(cmd.Context(), args[0], output)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), fmt.Sprintf("L %.2f  R %.2f", left, right),
				map[string]any{"left": left, "right": right})
		}),
	}
	set := &cobra.Command{
		Use:   "set <input> <level>",
		Short: "Set both sides of a route",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			level, err := parseLevel(args[1])
			if err != nil {
				return err
			}
			return app.UseCase.SetRoute(cmd.Context(), args[0], output, level)
		}),
	}
	cmd.AddCommand(get, set)
	return cmd
}

func newOutputCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "output",
		Short: "List outputs or set an output's playback volume (0-1)",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List configured outputs",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			outputs := app.UseCase.Outputs()
			lines := make([]string, 0, len(outputs))
			for _, o := range outputs {
				lines = append(lines, fmt.Sprintf("%-10s %s / %s", o.Name, o.Route.Left, o.Route.Right))
			}
			return emit(cmd.OutOrStdout(), strings.Join(lines, "\n"), outputs)
		}),
	}
	set := &cobra.Command{
		Use:   "set <output> <level>",
		Short: "Set the playback feed of both sides of an output",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			level, err := parseLevel(args[1])
			if err != nil {
				return err
			}
			return app.UseCase.SetOutputVolume(cmd.Context(), args[0], level)
		}),
	}
	cmd.AddCommand(list, set)
	return cmd
}
