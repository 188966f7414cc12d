package uci

import (
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// optionType mirrors the UCI "option" record's type field.
type optionType int

const (
	optCheck optionType = iota
	optSpin
	optString
	optButton
)

// option is one entry of the engine's UCI options registry, surfaced via
// "option name ..." during the uci handshake and mutated by setoption.
type option struct {
	name    string
	typ     optionType
	def     string
	min     int
	max     int
	current string
}

// optionsRegistry holds every tunable the engine exposes, keyed by the exact
// (case-sensitive) UCI option name.
type optionsRegistry struct {
	entries map[string]*option
}

func newOptionsRegistry() *optionsRegistry {
	r := &optionsRegistry{entries: make(map[string]*option)}
	r.add(option{name: "Hash", typ: optSpin, def: "64", min: 1, max: 4096, current: "64"})
	r.add(option{name: "Clear Hash", typ: optButton})
	r.add(option{name: "Contempt", typ: optSpin, def: "0", min: 0, max: 100, current: "0"})
	return r
}

func (r *optionsRegistry) add(o option) {
	cp := o
	r.entries[o.name] = &cp
}

func (r *optionsRegistry) get(name string) (*option, bool) {
	o, ok := r.entries[name]
	return o, ok
}

// names returns every option name in a stable total order, resolving the
// deliberate choice of plain lexicographic string ordering over declaration
// order or UCI type grouping.
func (r *optionsRegistry) names() []string {
	names := maps.Keys(r.entries)
	slices.Sort(names)
	return names
}

func (o *option) describe() string {
	switch o.typ {
	case optCheck:
		return "option name " + o.name + " type check default " + o.def
	case optSpin:
		return "option name " + o.name + " type spin default " + o.def +
			" min " + strconv.Itoa(o.min) + " max " + strconv.Itoa(o.max)
	case optString:
		def := o.def
		if def == "" {
			def = "<empty>"
		}
		return "option name " + o.name + " type string default " + def
	case optButton:
		return "option name " + o.name + " type button"
	}
	return ""
}
