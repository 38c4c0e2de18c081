package config

import (
	"errors"
	"fmt"
	"strings"
)

// Normalize trims values, rejects unusable ones and returns a safe copy.
func Normalize(cfg Config) (Config, error) {
	cfg.CardName = strings.TrimSpace(cfg.CardName)
	cfg.GraphCardName = strings.TrimSpace(cfg.GraphCardName)
	if cfg.CardName == "" {
		return cfg, errors.New("card_name must not be empty")
	}
	if cfg.GraphCardName == "" {
		cfg.GraphCardName = cfg.CardName
	}
	if cfg.ExecTimeout < 0 {
		return cfg, fmt.Errorf("exec_timeout must be >= 0, got %s", cfg.ExecTimeout)
	}

	tools := map[string]string{
		"tools.aplay":      cfg.Tools.Aplay,
		"tools.amixer":     cfg.Tools.Amixer,
		"tools.pwcli":      cfg.Tools.PwCli,
		"tools.pwmetadata": cfg.Tools.PwMetadata,
		"tools.pactl":      cfg.Tools.Pactl,
	}
	for key, command := range tools {
		if _, err := Argv(command); err != nil {
			return cfg, fmt.Errorf("%s: %w", key, err)
		}
	}

	for name, route := range cfg.Outputs {
		if route.Left == "" || route.Right == "" {
			return cfg, fmt.Errorf("outputs.%s needs both left and right", name)
		}
	}
	if cfg.Playback.Left == "" || cfg.Playback.Right == "" {
		return cfg, errors.New("playback needs both left and right")
	}
	if cfg.MQTT.Broker != "" && cfg.MQTT.Topic == "" {
		return cfg, errors.New("mqtt.topic must be set when mqtt.broker is")
	}
	if cfg.MQTT.Broker != "" {
		if _, ok := cfg.Outputs[cfg.MQTT.Headphones]; !ok {
			return cfg, fmt.Errorf("mqtt.headphones %q is not a configured output", cfg.MQTT.Headphones)
		}
	}
	return cfg, nil
}
