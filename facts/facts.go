// Package facts extracts audio and MIDI capabilities and root canvas geometry from a patch.
// All functions only read the patch and may be called concurrently.
package facts

import (
	"github.com/ava12/pdpatch/match"
	"github.com/ava12/pdpatch/patch"
)

const (
	adcCommand = "adc~"
	dacCommand = "dac~"

	// DefaultChannels is the channel count of adc~ and dac~ objects without arguments.
	DefaultChannels = 2
)

var (
	midiInCommands = commandSet(
		"notein", "ctlin", "pgmin", "bendin", "touchin", "polytouchin",
		"midiin", "sysexin", "midirealtimein", "midiclkin",
	)
	midiOutCommands = commandSet(
		"noteout", "ctlout", "pgmout", "bendout", "touchout", "polytouchout",
		"midiout",
	)
)

func commandSet(names ...string) map[string]bool {
	result := make(map[string]bool, len(names))
	for _, name := range names {
		result[name] = true
	}
	return result
}

// IsMidiIn tells whether name is a MIDI input object name.
func IsMidiIn(name string) bool {
	return midiInCommands[name]
}

// IsMidiOut tells whether name is a MIDI output object name.
func IsMidiOut(name string) bool {
	return midiOutCommands[name]
}

// Channels returns the highest channel index referenced by adc~ or dac~ arguments.
// No arguments means DefaultChannels. Returns 0 if any argument is not a positive integer.
func Channels(args []patch.Atom) uint {
	if len(args) == 0 {
		return DefaultChannels
	}

	var result uint
	for _, a := range args {
		channel, valid := match.Uint(a)
		if !valid || channel == 0 {
			return 0
		}
		result = max(result, channel)
	}
	return result
}

func maxChannels(p *patch.Patch, command string) uint {
	var result uint
	for _, rec := range p.Records() {
		cmd, valid := match.ParseCmd(rec)
		if valid && cmd.Name.Is(command) {
			result = max(result, Channels(cmd.Args))
		}
	}
	return result
}

// AdcChannels returns the maximum channel count of all adc~ objects or 0 if there are none.
func AdcChannels(p *patch.Patch) uint {
	return maxChannels(p, adcCommand)
}

// DacChannels returns the maximum channel count of all dac~ objects or 0 if there are none.
func DacChannels(p *patch.Patch) uint {
	return maxChannels(p, dacCommand)
}

func hasCommand(p *patch.Patch, commands map[string]bool) bool {
	for _, rec := range p.Records() {
		cmd, valid := match.ParseCmd(rec)
		if valid && commands[cmd.Name.Text()] {
			return true
		}
	}
	return false
}

// MidiIn tells whether patch contains any MIDI input object.
func MidiIn(p *patch.Patch) bool {
	return hasCommand(p, midiInCommands)
}

// MidiOut tells whether patch contains any MIDI output object.
func MidiOut(p *patch.Patch) bool {
	return hasCommand(p, midiOutCommands)
}

// Canvas is the root canvas geometry: window position, window size, and font size.
type Canvas struct {
	Pos  [2]int  `json:"pos"`
	Size [2]uint `json:"size"`
	Font uint    `json:"font"`
}

// RootCanvas matches the first patch record against "#N canvas <x> <y> <width> <height> <font>".
// Other records are never examined. Returns false if there is no match.
func RootCanvas(p *patch.Patch) (Canvas, bool) {
	if p.Len() == 0 {
		return Canvas{}, false
	}

	atoms := p.Record(0).Atoms()
	if len(atoms) != 7 || !atoms[0].IsSymbol("#N") || !atoms[1].IsSymbol("canvas") {
		return Canvas{}, false
	}

	var c Canvas
	var valid [5]bool
	c.Pos[0], valid[0] = match.Int(atoms[2])
	c.Pos[1], valid[1] = match.Int(atoms[3])
	c.Size[0], valid[2] = match.Uint(atoms[4])
	c.Size[1], valid[3] = match.Uint(atoms[5])
	c.Font, valid[4] = match.Uint(atoms[6])
	for _, v := range valid {
		if !v {
			return Canvas{}, false
		}
	}
	return c, true
}

// Report gathers all facts about a patch.
type Report struct {
	AdcChannels uint    `json:"adcChannels"`
	DacChannels uint    `json:"dacChannels"`
	MidiIn      bool    `json:"midiIn"`
	MidiOut     bool    `json:"midiOut"`
	Canvas      *Canvas `json:"canvas,omitempty"`
}

// Collect extracts all facts about p.
func Collect(p *patch.Patch) Report {
	r := Report{
		AdcChannels: AdcChannels(p),
		DacChannels: DacChannels(p),
		MidiIn:      MidiIn(p),
		MidiOut:     MidiOut(p),
	}
	if c, found := RootCanvas(p); found {
		r.Canvas = &c
	}
	return r
}
