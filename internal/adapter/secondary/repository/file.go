package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"audioctl/internal/domain"
)

// FileRepository implements domain.SettingsRepository using a JSON file.
// This is a secondary adapter.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a file-based settings repository. Parent
// directories are created automatically.
func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	return &FileRepository{path: path}, nil
}

// persistedChannel is one channel on disk.
type persistedChannel struct {
	DisplayName  string  `json:"display_name"`
	ChannelType  string  `json:"channel_type"`
	Control      string  `json:"control,omitempty"`
	Port         string  `json:"port,omitempty"`
	Volume       float64 `json:"volume"`
	Gain         int     `json:"gain"`
	Pad          bool    `json:"pad"`
	PhantomPower bool    `json:"phantom_power"`
}

// persistedData represents the JSON structure on disk. Channel indexes are
// object keys.
type persistedData struct {
	DisplayName   string                      `json:"display_name"`
	Channels      map[string]persistedChannel `json:"channels"`
	ActiveProfile string                      `json:"active_profile"`
	BufferSize    int                         `json:"buffer_size"`
}

// Load reads the settings from disk, returning defaults when the file does
// not exist yet.
func (f *FileRepository) Load() (domain.CardSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultCardSettings(), nil
		}
		return domain.CardSettings{}, fmt.Errorf("read settings: %w", err)
	}

	var persisted persistedData
	if err := json.Unmarshal(data, &persisted); err != nil {
		return domain.CardSettings{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	settings := domain.CardSettings{
		DisplayName:   persisted.DisplayName,
		Channels:      make(map[int]domain.ChannelSettings, len(persisted.Channels)),
		ActiveProfile: persisted.ActiveProfile,
		BufferSize:    persisted.BufferSize,
	}
	if settings.BufferSize <= 0 {
		settings.BufferSize = domain.DefaultBufferSize
	}

	for key, ch := range persisted.Channels {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return domain.CardSettings{}, fmt.Errorf("channel index %q: %w", key, err)
		}
		settings.Channels[idx] = domain.ChannelSettings{
			DisplayName: ch.DisplayName,
			Type:        parseChannelType(ch.ChannelType),
			Control:     ch.Control,
			Port:        ch.Port,
			Volume:      ch.Volume,
			Gain:        ch.Gain,
			Pad:         ch.Pad,
			Phantom:     ch.PhantomPower,
		}
	}

	return settings, nil
}

// Save persists the settings to disk atomically.
func (f *FileRepository) Save(settings domain.CardSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	persisted := persistedData{
		DisplayName:   settings.DisplayName,
		Channels:      make(map[string]persistedChannel, len(settings.Channels)),
		ActiveProfile: settings.ActiveProfile,
		BufferSize:    settings.BufferSize,
	}
	for idx, ch := range settings.Channels {
		persisted.Channels[strconv.Itoa(idx)] = persistedChannel{
			DisplayName:  ch.DisplayName,
			ChannelType:  string(ch.Type),
			Control:      ch.Control,
			Port:         ch.Port,
			Volume:       ch.Volume,
			Gain:         ch.Gain,
			Pad:          ch.Pad,
			PhantomPower: ch.Phantom,
		}
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Atomic write
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}

	return nil
}

func parseChannelType(s string) domain.ChannelType {
	switch domain.ChannelType(s) {
	case domain.ChannelLine:
		return domain.ChannelLine
	case domain.ChannelAdat:
		return domain.ChannelAdat
	default:
		return domain.ChannelMic
	}
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "audioctl", "soundcard_settings.json")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, "audioctl-settings.json")
}
