package cli

import (
	"fmt"
	"sort"

	"github.com/thoas/go-funk"

	"audioctl/internal/adapter/secondary/alsa"
	"audioctl/internal/adapter/secondary/command"
	"audioctl/internal/adapter/secondary/pipewire"
	"audioctl/internal/adapter/secondary/process"
	"audioctl/internal/adapter/secondary/repository"
	"audioctl/internal/config"
	"audioctl/internal/domain"
	"audioctl/internal/logging"
	"audioctl/internal/resolver"
	"audioctl/internal/usecase"
)

// App is the wired application: configuration, the runner every adapter
// shares and the use case on top.
type App struct {
	Config  *config.Manager
	Runner  domain.Runner
	UseCase usecase.MixerUseCase
}

// newApp builds the App for a command. Tests replace it.
var newApp = buildApp

func buildApp() (*App, error) {
	mgr := config.NewManager(cfgPath)
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Current()

	var run domain.Runner = command.NewExecutor(cfg.ExecTimeout)
	if dryRun {
		logging.Infof("dry run: no command will be executed")
		run = command.NewDryRun()
	}
	return wire(mgr, run, process.NewChecker())
}

// wire assembles the adapters and the use case around run.
func wire(mgr *config.Manager, run domain.Runner, procs domain.ProcessChecker) (*App, error) {
	cfg := mgr.Current()
	mixerTools, graphTools, err := toolArgv(cfg.Tools)
	if err != nil {
		return nil, err
	}
	mixer := alsa.NewMixer(run, mixerTools)
	graph := pipewire.NewGraph(run, graphTools)
	res := resolver.New(mixer, graph, resolver.Names{Mixer: cfg.CardName, Graph: cfg.GraphCardName})

	settingsPath := cfg.SettingsPath
	if settingsPath == "" {
		settingsPath = repository.DefaultPath()
	}
	repo, err := repository.NewFileRepository(settingsPath)
	if err != nil {
		return nil, err
	}

	opts := useCaseOptions(cfg, mixerTools, graphTools)
	uc := usecase.NewMixerUseCase(mixer, graph, res, repo, procs, opts)
	return &App{Config: mgr, Runner: run, UseCase: uc}, nil
}

func toolArgv(t config.Tools) (alsa.Tools, pipewire.Tools, error) {
	var (
		m   alsa.Tools
		g   pipewire.Tools
		err error
	)
	fields := []struct {
		dst  *[]string
		line string
	}{
		{&m.Aplay, t.Aplay},
		{&m.Amixer, t.Amixer},
		{&g.PwCli, t.PwCli},
		{&g.PwMetadata, t.PwMetadata},
		{&g.Pactl, t.Pactl},
	}
	for _, f := range fields {
		if *f.dst, err = config.Argv(f.line); err != nil {
			return m, g, fmt.Errorf("tools: %w", err)
		}
	}
	return m, g, nil
}

func useCaseOptions(cfg config.Config, m alsa.Tools, g pipewire.Tools) usecase.Options {
	names := funk.Keys(cfg.Outputs).([]string)
	sort.Strings(names)
	outputs := make([]domain.Output, 0, len(names))
	for _, name := range names {
		r := cfg.Outputs[name]
		outputs = append(outputs, domain.Output{Name: name, Route: domain.StereoPair{Left: r.Left, Right: r.Right}})
	}
	return usecase.Options{
		Outputs:  outputs,
		Playback: domain.StereoPair{Left: cfg.Playback.Left, Right: cfg.Playback.Right},
		Binaries: []string{m.Aplay[0], m.Amixer[0], g.PwCli[0], g.PwMetadata[0], g.Pactl[0]},
		Daemons:  cfg.Daemons,
	}
}

// onConfigChange keeps the running app in step with a reloaded config.
func onConfigChange(uc usecase.MixerUseCase) func(old, updated config.Config) {
	return func(old, updated config.Config) {
		if old.CardName != updated.CardName || old.GraphCardName != updated.GraphCardName {
			logging.Infof("card name changed from %q to %q, refreshing", old.CardName, updated.CardName)
			uc.Rename(resolver.Names{Mixer: updated.CardName, Graph: updated.GraphCardName})
		}
	}
}
