package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Capture thresholds.
const (
	// ScaleTolerance is how far a scale must be from 1.0 to be stored.
	ScaleTolerance = 0.01

	// DefaultTransform is sway's untransformed orientation.
	DefaultTransform = "normal"
)

// Size is a width and height pair.
type Size [2]int

// Width returns the first element.
func (s Size) Width() int { return s[0] }

// Height returns the second element.
func (s Size) Height() int { return s[1] }

// Point is an x and y pair.
type Point [2]int

// X returns the first element.
func (p Point) X() int { return p[0] }

// Y returns the second element.
func (p Point) Y() int { return p[1] }

// OutputProperties holds the stored settings for one display.
// A nil field means "leave the compositor's value alone" and is never
// written to a command or to the document.
type OutputProperties struct {
	Active      *bool    `yaml:"active,omitempty"`
	Resolution  *Size    `yaml:"resolution,omitempty,flow"`
	Position    *Point   `yaml:"position,omitempty,flow"`
	Rotation    *string  `yaml:"rotation,omitempty"`
	Scale       *float64 `yaml:"scale,omitempty"`
	RefreshRate *int     `yaml:"refresh_rate,omitempty"` // Hz
	Workspaces  []string `yaml:"workspaces,omitempty"`
}

// CaptureProperties reads the properties worth storing from a live output.
// workspaces are the names of the workspaces currently on that output.
//
// Resolution comes from the current mode when there is one, since the
// output rectangle is in scaled layout coordinates. It is kept when either
// dimension is positive. Position is kept when either coordinate is
// non-zero. Refresh rates are rounded from millihertz to whole Hz.
func CaptureProperties(o *Output, workspaces []string) OutputProperties {
	active := o.Active
	props := OutputProperties{Active: &active}

	size := Size{o.Rect.Width, o.Rect.Height}
	if o.CurrentMode != nil && (o.CurrentMode.Width > 0 || o.CurrentMode.Height > 0) {
		size = Size{o.CurrentMode.Width, o.CurrentMode.Height}
	}
	if size.Width() > 0 || size.Height() > 0 {
		props.Resolution = &size
	}

	if o.Rect.X != 0 || o.Rect.Y != 0 {
		pos := Point{o.Rect.X, o.Rect.Y}
		props.Position = &pos
	}

	if o.Transform != "" && o.Transform != DefaultTransform {
		rotation := o.Transform
		props.Rotation = &rotation
	}

	if o.Scale > 0 && math.Abs(1.0-o.Scale) > ScaleTolerance {
		scale := math.Round(o.Scale*1000) / 1000
		props.Scale = &scale
	}

	if o.CurrentMode != nil && o.CurrentMode.Refresh > 0 {
		hz := (o.CurrentMode.Refresh + 500) / 1000
		props.RefreshRate = &hz
	}

	if len(workspaces) > 0 {
		props.Workspaces = append([]string(nil), workspaces...)
	}

	return props
}

// OutputCommand renders the sway output command for the named output.
// Clauses appear in a fixed order and only for fields that are set.
func (p *OutputProperties) OutputCommand(outputName string) string {
	var sb strings.Builder
	sb.WriteString("output ")
	sb.WriteString(outputName)

	if p.Active != nil {
		if *p.Active {
			sb.WriteString(" enable")
		} else {
			sb.WriteString(" disable")
		}
	}

	if p.Resolution != nil {
		if p.RefreshRate != nil {
			fmt.Fprintf(&sb, " mode %dx%d@%dHz", p.Resolution.Width(), p.Resolution.Height(), *p.RefreshRate)
		} else {
			fmt.Fprintf(&sb, " res %dx%d", p.Resolution.Width(), p.Resolution.Height())
		}
	}

	if p.Position != nil {
		fmt.Fprintf(&sb, " pos %d %d", p.Position.X(), p.Position.Y())
	}

	if p.Rotation != nil {
		sb.WriteString(" transform ")
		sb.WriteString(*p.Rotation)
	}

	if p.Scale != nil {
		sb.WriteString(" scale ")
		sb.WriteString(strconv.FormatFloat(*p.Scale, 'f', -1, 64))
	}

	return sb.String()
}

// WorkspaceCommands renders one assignment per stored workspace, binding
// it to the named output.
func (p *OutputProperties) WorkspaceCommands(outputName string) []string {
	commands := make([]string, 0, len(p.Workspaces))
	for _, ws := range p.Workspaces {
		commands = append(commands, fmt.Sprintf("workspace %s output %s", quoteArg(ws), outputName))
	}
	return commands
}

// quoteArg double-quotes a command argument when sway would otherwise
// split or misparse it.
func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"';,\\") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
