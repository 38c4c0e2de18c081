package domain

import "context"

// Runner is a secondary port that executes an external program and returns
// its standard output.
type Runner interface {
	Run(ctx context.Context, argv []string) (string, error)
}

// Mixer is a secondary port over the low-level mixer subsystem.
type Mixer interface {
	ResolveCard(ctx context.Context, name string) (CardID, error)
	Controls(ctx context.Context, card CardID) (map[string][]string, error)
	Volume(ctx context.Context, card CardID, control string) (int, error)
	SetVolume(ctx context.Context, card CardID, control string, volume int) error
	Level(ctx context.Context, card CardID, control string) (float64, error)
	SetLevel(ctx context.Context, card CardID, control string, level float64) error
	Gain(ctx context.Context, card CardID, control string) (int, error)
	SetGain(ctx context.Context, card CardID, control string, gain int) error
	Switch(ctx context.Context, card CardID, control, marker string) (bool, error)
	SetSwitch(ctx context.Context, card CardID, control string, on bool) error
	Sensitivity(ctx context.Context, card CardID, control string) (string, error)
	SetSensitivity(ctx context.Context, card CardID, control, value string) error
}

// Graph is a secondary port over the user-space audio server.
type Graph interface {
	ResolveCard(ctx context.Context, name string) (CardID, error)
	ResolveNode(ctx context.Context, port string) (NodeRef, error)
	PortVolume(ctx context.Context, node NodeRef) (float64, error)
	SetPortVolume(ctx context.Context, node NodeRef, volume float64) error
	Profiles(ctx context.Context, card CardID) ([]Profile, error)
	ActiveProfile(ctx context.Context, card CardID) (string, error)
	SetProfile(ctx context.Context, card CardID, profile string) error
	Quantum(ctx context.Context) (int, error)
	SetQuantum(ctx context.Context, quantum int) error
}

// SettingsRepository persists channel and card settings.
type SettingsRepository interface {
	Load() (CardSettings, error)
	Save(settings CardSettings) error
}

// ProcessChecker probes the host for the programs the adapters depend on.
type ProcessChecker interface {
	Running(name string) (bool, error)
	OnPath(binary string) (string, error)
}
