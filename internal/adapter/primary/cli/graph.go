package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPortVolumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "port",
		Short: "Get or set the audio server volume of a port (0-1)",
	}
	get := &cobra.Command{
		Use:   "get <port>",
		Short: "Print a port's volume",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			v, err := app.UseCase.PortVolume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), fmt.Sprintf("%.3f", v), map[string]any{"volume": v})
		}),
	}
	set := &cobra.Command{
		Use:   "set <port> <volume>",
		Short: "Set a port's volume; values are clamped to 0-1",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			v, err := parseLevel(args[1])
			if err != nil {
				return err
			}
			return app.UseCase.SetPortVolume(cmd.Context(), args[0], v)
		}),
	}
	cmd.AddCommand(get, set)
	return cmd
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "List, get or set the card profile",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List the card's profiles",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			profiles, err := app.UseCase.Profiles(cmd.Context())
			if err != nil {
				return err
			}
			lines := make([]string, 0, len(profiles))
			for _, p := range profiles {
				mark := " "
				if !p.Available {
					mark = "x"
				}
				lines = append(lines, fmt.Sprintf("%s %-60s %s", mark, p.Name, p.Description))
			}
			return emit(cmd.OutOrStdout(), strings.Join(lines, "\n"), profiles)
		}),
	}
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the active profile",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			p, err := app.UseCase.ActiveProfile(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), p, map[string]any{"profile": p})
		}),
	}
	set := &cobra.Command{
		Use:   "set <profile>",
		Short: "Activate a profile",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			return app.UseCase.SetProfile(cmd.Context(), args[0])
		}),
	}
	cmd.AddCommand(list, get, set)
	return cmd
}

func newQuantumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quantum",
		Aliases: []string{"buffer-size"},
		Short:   "Get or set the audio server clock quantum",
	}
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the effective quantum",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			q, err := app.UseCase.Quantum(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), fmt.Sprint(q), map[string]any{"quantum": q})
		}),
	}
	set := &cobra.Command{
		Use:   "set <frames>",
		Short: "Force the quantum; a power of two between 32 and 2048",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			q, err := parseInt("quantum", args[0])
			if err != nil {
				return err
			}
			return app.UseCase.SetQuantum(cmd.Context(), q)
		}),
	}
	cmd.AddCommand(get, set)
	return cmd
}
