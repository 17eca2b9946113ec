package sway

import (
	gosway "github.com/joshuarubin/go-sway"

	"github.com/jmylchreest/sway-displays/internal/model"
)

// convertOutputs turns a GET_OUTPUTS reply into live output records.
// sway reports a zero current mode for outputs without one.
func convertOutputs(raw []gosway.Output) []model.Output {
	outputs := make([]model.Output, 0, len(raw))
	for _, o := range raw {
		out := model.Output{
			Name:   o.Name,
			Make:   o.Make,
			Model:  o.Model,
			Serial: o.Serial,
			Active: o.Active,
			Rect: model.Rect{
				X:      int(o.Rect.X),
				Y:      int(o.Rect.Y),
				Width:  int(o.Rect.Width),
				Height: int(o.Rect.Height),
			},
			Transform: o.Transform,
			Scale:     o.Scale,
		}

		mode := o.CurrentMode
		if mode.Width > 0 || mode.Height > 0 {
			out.CurrentMode = &model.Mode{
				Width:   int(mode.Width),
				Height:  int(mode.Height),
				Refresh: int(mode.Refresh),
			}
		}
		outputs = append(outputs, out)
	}
	return outputs
}

// convertWorkspaces turns a GET_WORKSPACES reply into live workspace records.
func convertWorkspaces(raw []gosway.Workspace) []model.Workspace {
	workspaces := make([]model.Workspace, 0, len(raw))
	for _, ws := range raw {
		workspaces = append(workspaces, model.Workspace{Name: ws.Name, Output: ws.Output})
	}
	return workspaces
}
