package web

import (
	"sort"

	"audioctl/internal/domain"
)

type errorView struct {
	Error string `json:"error"`
}

type controlView struct {
	Name         string         `json:"name"`
	Capabilities []string       `json:"capabilities"`
	Channels     string         `json:"channels,omitempty"`
	Min          int            `json:"min"`
	Max          int            `json:"max"`
	Values       map[string]int `json:"values"`
}

func toControlView(info domain.ControlInfo) controlView {
	return controlView{
		Name:         info.Name,
		Capabilities: info.Capabilities,
		Channels:     info.Channels,
		Min:          info.Limits.Min,
		Max:          info.Limits.Max,
		Values:       info.Values,
	}
}

type profileView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

type healthView struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

type channelView struct {
	Index       int     `json:"index"`
	DisplayName string  `json:"displayName"`
	Type        string  `json:"type"`
	Control     string  `json:"control,omitempty"`
	Port        string  `json:"port,omitempty"`
	Volume      float64 `json:"volume"`
	Gain        int     `json:"gain"`
	Pad         bool    `json:"pad"`
	Phantom     bool    `json:"phantom"`
}

type settingsView struct {
	DisplayName   string        `json:"displayName"`
	ActiveProfile string        `json:"activeProfile"`
	BufferSize    int           `json:"bufferSize"`
	Channels      []channelView `json:"channels"`
}

func toSettingsView(s domain.CardSettings) settingsView {
	view := settingsView{
		DisplayName:   s.DisplayName,
		ActiveProfile: s.ActiveProfile,
		BufferSize:    s.BufferSize,
		Channels:      make([]channelView, 0, len(s.Channels)),
	}
	for idx, ch := range s.Channels {
		view.Channels = append(view.Channels, channelView{
			Index:       idx,
			DisplayName: ch.DisplayName,
			Type:        string(ch.Type),
			Control:     ch.Control,
			Port:        ch.Port,
			Volume:      ch.Volume,
			Gain:        ch.Gain,
			Pad:         ch.Pad,
			Phantom:     ch.Phantom,
		})
	}
	sort.Slice(view.Channels, func(i, j int) bool {
		return view.Channels[i].Index < view.Channels[j].Index
	})
	return view
}
