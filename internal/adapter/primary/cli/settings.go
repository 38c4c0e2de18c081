package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thoas/go-funk"

	"audioctl/internal/domain"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show, save or restore the saved channel settings",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved settings",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			s, err := app.UseCase.Settings()
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), formatSettings(s), s)
		}),
	}
	cmd.AddCommand(show, newSaveChannelCmd(), &cobra.Command{
		Use:   "restore",
		Short: "Re-apply the saved profile, buffer size and channel state",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			if err := app.UseCase.Restore(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings restored")
			return nil
		}),
	})
	return cmd
}

func newSaveChannelCmd() *cobra.Command {
	var (
		name, kind, control, port string
	)
	cmd := &cobra.Command{
		Use:   "save-channel <index>",
		Short: "Capture a channel's live state and save it",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			idx, err := parseInt("index", args[0])
			if err != nil {
				return err
			}
			t := domain.ChannelType(kind)
			if !funk.Contains([]domain.ChannelType{domain.ChannelMic, domain.ChannelLine, domain.ChannelAdat}, t) {
				return fmt.Errorf("--type must be mic, line or adat, got %q", kind)
			}
			ch, err := app.UseCase.SaveChannel(cmd.Context(), idx, domain.ChannelSettings{
				DisplayName: name,
				Type:        t,
				Control:     control,
				Port:        port,
			})
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), fmt.Sprintf("Saved channel %d: %s", idx, formatChannel(ch)), ch)
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&kind, "type", string(domain.ChannelMic), "mic, line or adat")
	cmd.Flags().StringVar(&control, "control", "", "input control, e.g. Mic-AN1")
	cmd.Flags().StringVar(&port, "port", "", "audio server port, e.g. capture_AUX0")
	return cmd
}

func formatChannel(ch domain.ChannelSettings) string {
	s := fmt.Sprintf("%q %s", ch.DisplayName, ch.Type)
	if ch.Type == domain.ChannelMic && ch.Control != "" {
		s += fmt.Sprintf(" gain=%d pad=%s 48V=%s", ch.Gain, domain.SwitchToken(ch.Pad), domain.SwitchToken(ch.Phantom))
	}
	if ch.Port != "" {
		s += fmt.Sprintf(" volume=%.2f", ch.Volume)
	}
	return s
}

func formatSettings(s domain.CardSettings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Card:        %s\n", s.DisplayName)
	fmt.Fprintf(&b, "Profile:     %s\n", s.ActiveProfile)
	fmt.Fprintf(&b, "Buffer size: %d\n", s.BufferSize)
	indexes := funk.Keys(s.Channels).([]int)
	sort.Ints(indexes)
	for _, idx := range indexes {
		fmt.Fprintf(&b, "  %2d  %s\n", idx, formatChannel(s.Channels[idx]))
	}
	return strings.TrimRight(b.String(), "\n")
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check tools, audio daemons and the card",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			checks := app.UseCase.Health(cmd.Context())
			lines := make([]string, 0, len(checks))
			failed := 0
			for _, c := range checks {
				status := "ok  "
				if !c.OK {
					status = "FAIL"
					failed++
				}
				lines = append(lines, fmt.Sprintf("%s %-14s %s", status, c.Name, c.Detail))
			}
			if err := emit(cmd.OutOrStdout(), strings.Join(lines, "\n"), checks); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(checks))
			}
			return nil
		}),
	}
}
