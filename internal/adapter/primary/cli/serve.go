package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"audioctl/internal/adapter/primary/mqtt"
	"audioctl/internal/adapter/primary/web"
	"audioctl/internal/logging"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API (and the MQTT bridge when a broker is configured)",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			cfg := app.Config.Current()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.HTTP.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			go app.Config.Watch(ctx, onConfigChange(app.UseCase))
			if cfg.MQTT.Broker != "" {
				go func() {
					if err := mqtt.NewBridge(app.UseCase, bridgeOptions(app, "")).Run(ctx); err != nil {
						logging.Errorf("mqtt bridge: %v", err)
					}
				}()
			}

			srv := web.NewServer(app.UseCase, addr)
			fmt.Fprintf(cmd.OutOrStdout(), "audioctl API running at http://%s\n", addr)
			logging.Infof("API: http://%s", addr)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7070", "HTTP listen address (overrides http.addr)")
	return cmd
}

func bridgeOptions(app *App, broker string) mqtt.Options {
	cfg := app.Config.Current().MQTT
	if broker == "" {
		broker = cfg.Broker
	}
	return mqtt.Options{
		Broker:        broker,
		Topic:         cfg.Topic,
		ClientID:      cfg.ClientID,
		Headphones:    cfg.Headphones,
		PhantomInputs: cfg.PhantomInputs,
	}
}

func newBridgeCmd() *cobra.Command {
	var broker string
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Run only the MQTT control-panel bridge",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, app *App, args []string) error {
			opts := bridgeOptions(app, broker)
			if opts.Broker == "" {
				return errors.New("no broker: set mqtt.broker or pass --broker")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			go app.Config.Watch(ctx, onConfigChange(app.UseCase))

			fmt.Fprintf(cmd.OutOrStdout(), "MQTT bridge connected to %s, topic %s\n", opts.Broker, opts.Topic)
			return mqtt.NewBridge(app.UseCase, opts).Run(ctx)
		}),
	}
	cmd.Flags().StringVar(&broker, "broker", "", "broker URL, e.g. tcp://localhost:1883 (overrides mqtt.broker)")
	return cmd
}
