package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"audioctl/internal/domain"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "nested", "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	settings, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if settings.BufferSize != domain.DefaultBufferSize || len(settings.Channels) != 0 {
		t.Fatalf("defaults = %+v", settings)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatal(err)
	}
	want := domain.CardSettings{
		DisplayName: "Studio",
		Channels: map[int]domain.ChannelSettings{
			1: {DisplayName: "Vocal", Type: domain.ChannelMic, Control: "Mic-AN1", Gain: 24, Phantom: true},
			3: {DisplayName: "Keys", Type: domain.ChannelLine, Port: "capture_AUX2", Volume: 0.5},
		},
		ActiveProfile: "pro-audio",
		BufferSize:    512,
	}
	if err := repo.Save(want); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file left behind: %v", err)
	}

	got, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	raw, _ := os.ReadFile(path)
	for _, key := range []string{`"phantom_power": true`, `"buffer_size": 512`, `"1": {`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("file missing %s:\n%s", key, raw)
		}
	}
}

func TestLoadRejectsBadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"channels":{"one":{}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	repo, _ := NewFileRepository(path)
	if _, err := repo.Load(); err == nil {
		t.Fatal("expected error for non-numeric channel index")
	}
}

func TestLoadFillsBufferSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"display_name":"x","channels":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	repo, _ := NewFileRepository(path)
	settings, err := repo.Load()
	if err != nil || settings.BufferSize != domain.DefaultBufferSize {
		t.Fatalf("Load = %+v, %v", settings, err)
	}
}
