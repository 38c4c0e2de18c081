package domain

import "strconv"

// CardID is the index a subsystem assigns to a sound card. It is not stable
// across reboots or replugs and must be resolved once per session.
type CardID int

func (c CardID) String() string {
	return strconv.Itoa(int(c))
}

// NodeRef locates a port in the audio graph.
type NodeRef struct {
	ObjectID int
	NodeID   int
	HasNode  bool
}

// Target returns the id parameter operations should address: the node id,
// or the object id when the port block carried no node.id property.
func (n NodeRef) Target() int {
	if n.HasNode {
		return n.NodeID
	}
	return n.ObjectID
}

// Profile is one entry of a card's profile list.
type Profile struct {
	Name        string
	Description string
	Available   bool
}

// Limits is the native value range advertised by a mixer control.
type Limits struct {
	Min int
	Max int
}

// ControlInfo is the typed view of one control block from the mixer listing.
type ControlInfo struct {
	Name         string
	Capabilities []string
	Channels     string
	Limits       Limits
	Values       map[string]int
	Lines        []string
}

// StereoPair names the left and right halves of a stereo endpoint.
type StereoPair struct {
	Left  string
	Right string
}

// Output is a physical output and the route names the mixer uses for it.
type Output struct {
	Name  string
	Route StereoPair
}

// ChannelType classifies an input channel.
type ChannelType string

const (
	ChannelMic  ChannelType = "mic"
	ChannelLine ChannelType = "line"
	ChannelAdat ChannelType = "adat"
)

// ChannelSettings is the saved state of one input channel.
type ChannelSettings struct {
	DisplayName string
	Type        ChannelType
	Control     string
	Port        string
	Volume      float64
	Gain        int
	Pad         bool
	Phantom     bool
}

// CardSettings is the saved state of the whole interface.
type CardSettings struct {
	DisplayName   string
	Channels      map[int]ChannelSettings
	ActiveProfile string
	BufferSize    int
}

// DefaultBufferSize is the clock quantum assumed when nothing was saved.
const DefaultBufferSize = 256

// DefaultCardSettings returns the settings used before anything is saved.
func DefaultCardSettings() CardSettings {
	return CardSettings{
		Channels:   map[int]ChannelSettings{},
		BufferSize: DefaultBufferSize,
	}
}

// HealthCheck is the result of probing one runtime dependency.
type HealthCheck struct {
	Name   string
	OK     bool
	Detail string
}
