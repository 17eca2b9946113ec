package model

import (
	"slices"
	"strings"
)

// OutputID identifies one physical display by its hardware metadata.
//
// Displays of the same make and model that report an empty serial (common
// for built-in panels) share an OutputID. Nothing better is available from
// the compositor, so such displays are indistinguishable.
type OutputID string

// NewOutputID builds an OutputID from make, model and serial.
func NewOutputID(manufacturer, model, serial string) OutputID {
	return OutputID(manufacturer + " " + model + " " + serial)
}

// topologySep joins identities inside a TopologyID. It cannot occur in
// EDID strings.
const topologySep = "\x1f"

// TopologyID identifies a set of connected displays. The identities are
// kept sorted, so two TopologyIDs built from the same displays compare
// equal whatever order the compositor enumerated them in.
type TopologyID string

// NewTopologyID builds a TopologyID from output identities in any order.
// Duplicates are kept: two identical panels are a different topology than
// one.
func NewTopologyID(ids ...OutputID) TopologyID {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = string(id)
	}
	return TopologyID(strings.Join(parts, topologySep))
}

// TopologyOf returns the TopologyID of the given live outputs.
func TopologyOf(outputs []Output) TopologyID {
	ids := make([]OutputID, len(outputs))
	for i := range outputs {
		ids[i] = outputs[i].ID()
	}
	return NewTopologyID(ids...)
}

// Outputs returns the sorted output identities of the topology.
func (t TopologyID) Outputs() []OutputID {
	if t == "" {
		return nil
	}
	parts := strings.Split(string(t), topologySep)
	ids := make([]OutputID, len(parts))
	for i, p := range parts {
		ids[i] = OutputID(p)
	}
	return ids
}

// String renders the topology as "[id1, id2]".
func (t TopologyID) String() string {
	ids := t.Outputs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
