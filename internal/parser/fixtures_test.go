package parser

const aplayListing = `**** List of PLAYBACK Hardware Devices ****
card 0: PCH [HDA Intel PCH], device 0: ALC3246 Analog [ALC3246 Analog]
  Subdevices: 1/1
  Subdevice #0: subdevice #0
card 1: Pro [Babyface Pro (72040386)], device 0: USB Audio [USB Audio]
  Subdevices: 1/1
  Subdevice #0: subdevice #0
card 12: Device [USB Audio Device], device 0: USB Audio [USB Audio]
  Subdevices: 1/1
  Subdevice #0: subdevice #0
`

const amixerListing = `Simple mixer control 'Mic-AN1',0
  Capabilities: pvolume pvolume-joined
  Playback channels: Mono
  Limits: Playback 0 - 65535
  Mono: Playback 32768 [50%] [0.00dB]

Simple mixer control 'Mic-AN1 48V',0
  Capabilities: pswitch pswitch-joined
  Playback channels: Mono
  Mono: Playback [on]

   
Simple mixer control 'Line-IN3 Sens.',0
  Capabilities: enum
  Items: '+4dBu' '-10dBV'
  Item0: '-10dBV'
`

const amixerMultiStereo = `Simple mixer control 'PCM-AN1-AN1',0
  Capabilities: pvolume
  Playback channels: Front Left - Front Right
  Limits: Playback 0 - 65535
  Front Left: Playback 16384 [25%]
  Front Right: Playback 49151 [75%]
`

const phantomOn = `Simple mixer control 'Mic-AN1 48V',0
  Capabilities: pswitch pswitch-joined
  Playback channels: Mono
  Mono: Playback [on]
`

const phantomOff = `Simple mixer control 'Mic-AN2 48V',0
  Capabilities: pswitch pswitch-joined
  Playback channels: Mono
  Mono: Playback [off]
`

const padBlock = `Simple mixer control 'Mic-AN1 PAD',0
  Capabilities: pswitch pswitch-joined
  Playback channels: Mono
  Mono: Playback [on]
`

const sensitivityBlock = `Simple mixer control 'Line-IN4 Sens.',0
  Capabilities: enum
  Items: '+4dBu' '-10dBV'
  Item0: '+4dBu'
`

const gainGet = `Simple mixer control 'Mic-AN1 Gain',0
  Capabilities: pvolume pvolume-joined
  Playback channels: Mono
  Limits: Playback 0 - 65
  Mono: Playback 24 [37%]
`

const pwInfoAll = `	id: 0
	permissions: rwxm
	type: PipeWire:Interface:Core/4
	cookie: 1234
	user-name: "audio"
*	properties:
*		core.name = "pipewire-0"
	id: 61
	permissions: rwxm
	type: PipeWire:Interface:Node/3
*	properties:
*		node.name = "alsa_input.usb-RME_Babyface_Pro-00.pro-input-0"
*		object.id = "61"
	id: 80
	permissions: rwxm
	type: PipeWire:Interface:Port/3
	direction: "output"
*	properties:
*		format.dsp = "32 bit float mono audio"
*		node.id = "61"
*		port.name = "capture_AUX0"
*		object.id = "80"
	id: 81
	permissions: rwxm
	type: PipeWire:Interface:Port/3
	direction: "output"
*	properties:
*		port.name = "capture_AUX1"
*		node.id = "61"
*		object.id = "81"
	id: 95
	permissions: rwxm
	type: PipeWire:Interface:Port/3
	direction: "output"
*	properties:
*		port.name = "monitor_AUX0"
*		object.id = "95"
	id: 102
	permissions: rwxm
	type: PipeWire:Interface:Port/3
	direction: "input"
*	properties:
*		node.id = "70"
*		port.name = "playback_AUX3"
`

const pwEnumParams = `  Param: Props(2)
  Object: size 1688, type Spa:Pod:Object:Param:Props (262146), id Spa:Enum:ParamId:Props (2)
    Prop: key Spa:Pod:Object:Param:Props:device (257), flags 00000000
      String "hw:1"
    Prop: key Spa:Pod:Object:Param:Props:volume (65539), flags 00000000
      Float 0.750000
    Prop: key Spa:Pod:Object:Param:Props:mute (65540), flags 00000000
      Bool false
`

const pactlShort = `49	alsa_card.pci-0000_00_1f.3	alsa
56	alsa_card.usb-RME_Babyface_Pro__72040386_-00	alsa
`

const pactlCards = `Card #49
	Name: alsa_card.pci-0000_00_1f.3
	Driver: alsa
	Profiles:
		off: Off (sinks: 0, sources: 0, priority: 0, available: yes)
		output:analog-stereo: Analog Stereo Output (sinks: 1, sources: 0, priority: 6500, available: yes)
	Active Profile: output:analog-stereo
Card #5
	Name: alsa_card.bogus
	Profiles:
		pro-audio: Pro Audio (sinks: 1, sources: 1, priority: 1, available: yes)
	Active Profile: pro-audio
Card #56
	Name: alsa_card.usb-RME_Babyface_Pro__72040386_-00
	Driver: alsa
	Owner Module: 23
	Profiles:
		input:multichannel-input: Multichannel Input (sinks: 0, sources: 1, priority: 1, available: yes)
		output:multichannel-output+input:multichannel-input: Multichannel Duplex (sinks: 1, sources: 1, priority: 101, available: yes)
		pro-audio: Pro Audio (sinks: 1, sources: 1, priority: 1, available: no)
		off: Off (sinks: 0, sources: 0, priority: 0, available: yes)
	Active Profile: output:multichannel-output+input:multichannel-input
	Ports:
		analog-output: Analog Output (type: Line, priority: 9900, latency offset: 0 usec, availability unknown)
`

const pwMetadata = `Found "settings" metadata 32
update: id:0 key:'log.level' value:'2' type:''
update: id:0 key:'clock.rate' value:'48000' type:''
update: id:0 key:'clock.quantum' value:'1024' type:''
update: id:0 key:'clock.min-quantum' value:'32' type:''
update: id:0 key:'clock.max-quantum' value:'2048' type:''
update: id:0 key:'clock.force-quantum' value:'0' type:''
`
