// Package config loads the application configuration with viper and keeps
// it current while the file changes on disk.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/shlex"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"audioctl/internal/logging"
)

// Route is the left/right pair of an output or a playback feed.
type Route struct {
	Left  string `mapstructure:"left"`
	Right string `mapstructure:"right"`
}

// Tools are the command lines used to reach each external program. Each is
// split shell-style, so wrappers such as "sudo -n amixer" work.
type Tools struct {
	Aplay      string `mapstructure:"aplay"`
	Amixer     string `mapstructure:"amixer"`
	PwCli      string `mapstructure:"pwcli"`
	PwMetadata string `mapstructure:"pwmetadata"`
	Pactl      string `mapstructure:"pactl"`
}

// HTTP configures the JSON API.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// MQTT configures the control-panel bridge. An empty broker disables it.
type MQTT struct {
	Broker        string   `mapstructure:"broker"`
	Topic         string   `mapstructure:"topic"`
	ClientID      string   `mapstructure:"client_id"`
	Headphones    string   `mapstructure:"headphones"`
	PhantomInputs []string `mapstructure:"phantom_inputs"`
}

// Config is the decoded application configuration.
type Config struct {
	CardName      string           `mapstructure:"card_name"`
	GraphCardName string           `mapstructure:"graph_card_name"`
	Tools         Tools            `mapstructure:"tools"`
	ExecTimeout   time.Duration    `mapstructure:"exec_timeout"`
	SettingsPath  string           `mapstructure:"settings_path"`
	HTTP          HTTP             `mapstructure:"http"`
	MQTT          MQTT             `mapstructure:"mqtt"`
	Outputs       map[string]Route `mapstructure:"outputs"`
	Playback      Route            `mapstructure:"playback"`
	Inputs        []string         `mapstructure:"inputs"`
	Daemons       []string         `mapstructure:"daemons"`
}

const (
	configName = "audioctl"
	configType = "yaml"
	envPrefix  = "AUDIOCTL"

	keyCardName      = "card_name"
	keyGraphCardName = "graph_card_name"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyCardName, "Babyface")
	v.SetDefault(keyGraphCardName, "RME_Babyface")
	v.SetDefault("tools.aplay", "aplay -l")
	v.SetDefault("tools.amixer", "amixer")
	v.SetDefault("tools.pwcli", "pw-cli")
	v.SetDefault("tools.pwmetadata", "pw-metadata")
	v.SetDefault("tools.pactl", "pactl")
	v.SetDefault("exec_timeout", "0s")
	v.SetDefault("settings_path", "")
	v.SetDefault("http.addr", "127.0.0.1:7070")
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "control_panel/out")
	v.SetDefault("mqtt.client_id", "audioctl")
	v.SetDefault("mqtt.headphones", "phones")
	v.SetDefault("mqtt.phantom_inputs", []string{"Mic-AN1", "Mic-AN2"})
	v.SetDefault("outputs", map[string]any{
		"main":   map[string]any{"left": "AN1", "right": "AN2"},
		"phones": map[string]any{"left": "PH3", "right": "PH4"},
	})
	v.SetDefault("playback.left", "PCM-AN1")
	v.SetDefault("playback.right", "PCM-AN2")
	v.SetDefault("inputs", []string{"Mic-AN1", "Mic-AN2", "Line-IN3", "Line-IN4"})
	v.SetDefault("daemons", []string{"pipewire", "wireplumber"})
}

// Manager owns the viper instance and the last successfully decoded Config.
type Manager struct {
	logger *zap.SugaredLogger
	v      *viper.Viper
	path   string

	mu      sync.RWMutex
	current Config
}

// NewManager creates a manager reading path. An empty path searches the
// default configuration directory.
func NewManager(path string) *Manager {
	v := viper.New()
	v.SetConfigType(configType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(DefaultDir())
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return &Manager{
		logger: logging.Named("config"),
		v:      v,
		path:   path,
	}
}

// Load reads the configuration file if there is one and decodes it over the
// defaults. A missing file is not an error.
func (m *Manager) Load() error {
	m.logger.Debugw("Loading config", "path", m.path)

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			m.logger.Infow("Config file not found, using defaults", "path", m.path)
		default:
			m.logger.Warnw("Viper failed to read config", "error", err)
			return fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	err := m.v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	cfg, err = Normalize(cfg)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.current = cfg
	m.mu.Unlock()

	m.logger.Infow("Config values",
		"cardName", cfg.CardName,
		"graphCardName", cfg.GraphCardName,
		"execTimeout", cfg.ExecTimeout)
	return nil
}

// Current returns the last successfully loaded configuration.
func (m *Manager) Current() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// File returns the configuration file in use, or "" when running on
// defaults.
func (m *Manager) File() string {
	return m.v.ConfigFileUsed()
}

// Watch reloads the configuration when its file is written and passes each
// successfully reloaded Config to onChange. It blocks until ctx is done.
func (m *Manager) Watch(ctx context.Context, onChange func(old, updated Config)) {
	if _, err := os.Stat(m.v.ConfigFileUsed()); err != nil {
		m.logger.Debugw("No config file to watch", "error", err)
		<-ctx.Done()
		return
	}

	const (
		minTimeBetweenReloadAttempts = 500 * time.Millisecond
		delayBetweenEventAndReload   = 50 * time.Millisecond
	)

	var (
		mu                  sync.Mutex
		lastAttemptedReload time.Time
	)

	m.v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		mu.Lock()
		defer mu.Unlock()

		// editors often write twice
		now := time.Now()
		if now.Sub(lastAttemptedReload) < minTimeBetweenReloadAttempts {
			return
		}
		lastAttemptedReload = now

		m.logger.Debugw("Config file modified, attempting reload", "event", event)
		<-time.After(delayBetweenEventAndReload)

		old := m.Current()
		if err := m.Load(); err != nil {
			m.logger.Warnw("Failed to reload config file", "error", err)
			return
		}
		m.logger.Info("Reloaded config successfully")
		if onChange != nil {
			onChange(old, m.Current())
		}
	})
	m.v.WatchConfig()

	<-ctx.Done()
	m.logger.Debug("Stopping config file watcher")
	m.v.OnConfigChange(func(fsnotify.Event) {})
}

// Argv splits a tool command line shell-style.
func Argv(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	return argv, nil
}
