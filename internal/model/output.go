// Package model defines the core data structures for sway-displays.
package model

// Rect is an output's position and size in the compositor's layout.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Mode is a display mode. Refresh is in millihertz, as sway reports it.
type Mode struct {
	Width   int
	Height  int
	Refresh int
}

// Output is a live display record as reported by the compositor.
// This is the normalized format produced by the transport and consumed by
// capture and replay.
type Output struct {
	Name   string // Connector name, e.g. "DP-1"
	Make   string
	Model  string
	Serial string

	Active    bool
	Rect      Rect
	Transform string  // "normal", "90", "flipped-270", ...
	Scale     float64 // Non-positive for disabled outputs

	CurrentMode *Mode // nil when no mode is active
}

// ID returns the hardware identity of the output.
func (o *Output) ID() OutputID {
	return NewOutputID(o.Make, o.Model, o.Serial)
}

// Workspace is a live workspace record.
type Workspace struct {
	Name   string
	Output string // Name of the output the workspace is on
}

// WorkspacesByOutput groups workspace names by output name, keeping the
// order in which the compositor listed them.
func WorkspacesByOutput(workspaces []Workspace) map[string][]string {
	byOutput := make(map[string][]string)
	for _, ws := range workspaces {
		byOutput[ws.Output] = append(byOutput[ws.Output], ws.Name)
	}
	return byOutput
}
