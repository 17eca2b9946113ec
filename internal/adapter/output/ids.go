package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/sway-displays/internal/model"
)

// IDsFormatter outputs the output identities, sorted, one per line.
// Useful for scripting against the saved document.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes output identities to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, outputs []model.Output) error {
	for _, id := range model.TopologyOf(outputs).Outputs() {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
