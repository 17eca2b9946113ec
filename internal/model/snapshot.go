package model

import "strings"

// CommandSeparator separates commands inside one sway command batch.
const CommandSeparator = ";"

// Snapshot maps each display captured together to its stored properties.
type Snapshot map[OutputID]OutputProperties

// CaptureSnapshot captures every live output. Disconnected displays are
// never part of a snapshot.
func CaptureSnapshot(outputs []Output, workspaces []Workspace) Snapshot {
	byOutput := WorkspacesByOutput(workspaces)

	snap := make(Snapshot, len(outputs))
	for i := range outputs {
		o := &outputs[i]
		snap[o.ID()] = CaptureProperties(o, byOutput[o.Name])
	}
	return snap
}

// Commands returns the commands that apply the snapshot to the live
// outputs, in the order the outputs were listed. Entries for displays that
// are not connected are skipped.
func (s Snapshot) Commands(outputs []Output) []string {
	var commands []string
	for i := range outputs {
		o := &outputs[i]
		props, ok := s[o.ID()]
		if !ok {
			continue
		}
		commands = append(commands, props.OutputCommand(o.Name))
		commands = append(commands, props.WorkspaceCommands(o.Name)...)
	}
	return commands
}

// Batch joins Commands into a single sway command string. It is empty when
// no stored display is connected.
func (s Snapshot) Batch(outputs []Output) string {
	return strings.Join(s.Commands(outputs), CommandSeparator)
}

// Matches returns how many live outputs have an entry in the snapshot.
func (s Snapshot) Matches(outputs []Output) int {
	n := 0
	for i := range outputs {
		if _, ok := s[outputs[i].ID()]; ok {
			n++
		}
	}
	return n
}
