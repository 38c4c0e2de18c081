// Package mqtt bridges a hardware control panel publishing over MQTT to the
// mixer: a potentiometer drives the headphone volume and a button toggles
// phantom power.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"audioctl/internal/logging"
)

const (
	commandHeadphoneVolume = "hp_volume"
	commandPhantom         = "phantom"

	// potMax is the full-scale reading of the panel's potentiometer.
	potMax = 1024

	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250
)

var errTimeout = errors.New("timed out")

// Controller is the subset of mixer operations the panel can drive.
type Controller interface {
	SetOutputVolume(ctx context.Context, output string, level float64) error
	SetPhantom(ctx context.Context, input string, on bool) error
}

// Options configures the bridge.
type Options struct {
	Broker        string
	Topic         string
	ClientID      string
	Headphones    string
	PhantomInputs []string
}

// Bridge is a primary adapter translating panel messages to use case calls.
type Bridge struct {
	ctrl   Controller
	opts   Options
	logger *zap.SugaredLogger
}

// NewBridge creates a bridge driving ctrl.
func NewBridge(ctrl Controller, opts Options) *Bridge {
	return &Bridge{
		ctrl:   ctrl,
		opts:   opts,
		logger: logging.Named("mqtt"),
	}
}

type panelMessage struct {
	Command string   `json:"command"`
	PotVal  *float64 `json:"potVal"`
	State   *int     `json:"state"`
}

// Handle applies one panel message. Messages on other topics and unknown
// commands are ignored.
func (b *Bridge) Handle(ctx context.Context, topic string, payload []byte) error {
	if topic != b.opts.Topic {
		return nil
	}
	var msg panelMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("decode panel message: %w", err)
	}

	switch msg.Command {
	case commandHeadphoneVolume:
		if msg.PotVal == nil {
			return errors.New("hp_volume without potVal")
		}
		level := *msg.PotVal / potMax
		b.logger.Debugw("Headphone volume", "potVal", *msg.PotVal, "level", level)
		return b.ctrl.SetOutputVolume(ctx, b.opts.Headphones, level)
	case commandPhantom:
		if msg.State == nil {
			return errors.New("phantom without state")
		}
		on := *msg.State == 1
		var errs []error
		for _, input := range b.opts.PhantomInputs {
			if err := b.ctrl.SetPhantom(ctx, input, on); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", input, err))
			}
		}
		return errors.Join(errs...)
	default:
		b.logger.Debugw("Ignoring panel command", "command", msg.Command)
		return nil
	}
}

// Run connects to the broker, subscribes to the panel topic and applies
// messages until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(b.opts.Broker).
		SetClientID(b.opts.ClientID).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			b.logger.Warnw("Connection lost", "error", err)
		}).
		SetOnConnectHandler(func(c paho.Client) {
			b.logger.Infow("Connected to broker", "broker", b.opts.Broker)
			token := c.Subscribe(b.opts.Topic, 0, func(_ paho.Client, m paho.Message) {
				if err := b.Handle(ctx, m.Topic(), m.Payload()); err != nil {
					b.logger.Warnw("Failed to apply panel message", "error", err, "payload", string(m.Payload()))
				}
			})
			if err := await(token, connectTimeout); err != nil {
				b.logger.Errorw("Subscribe failed", "topic", b.opts.Topic, "error", err)
				return
			}
			b.logger.Infow("Subscribed", "topic", b.opts.Topic)
		})

	client := paho.NewClient(opts)
	if err := await(client.Connect(), connectTimeout); err != nil {
		return fmt.Errorf("connect %s: %w", b.opts.Broker, err)
	}

	<-ctx.Done()
	client.Disconnect(disconnectQuiesce)
	b.logger.Info("Disconnected from broker")
	return nil
}

// await waits for token and reports a timeout as an error.
func await(token paho.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return errTimeout
	}
	return token.Error()
}
