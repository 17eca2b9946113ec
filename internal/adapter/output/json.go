package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/sway-displays/internal/model"
)

// jsonOutput is the JSON shape of one connected display.
type jsonOutput struct {
	ID     model.OutputID `json:"id"`
	Name   string         `json:"name"`
	Make   string         `json:"make"`
	Model  string         `json:"model"`
	Serial string         `json:"serial"`
	Active bool           `json:"active"`
}

// JSONFormatter formats connected displays as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes outputs as a JSON array, in the order sway listed them.
func (f *JSONFormatter) Format(w io.Writer, outputs []model.Output) error {
	items := make([]jsonOutput, len(outputs))
	for i := range outputs {
		o := &outputs[i]
		items[i] = jsonOutput{
			ID:     o.ID(),
			Name:   o.Name,
			Make:   o.Make,
			Model:  o.Model,
			Serial: o.Serial,
			Active: o.Active,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}
