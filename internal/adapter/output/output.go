// Package output provides output formatters for connected displays.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/sway-displays/internal/model"
)

// Formatter formats the connected displays for output.
type Formatter interface {
	// Format writes formatted outputs to the writer.
	Format(w io.Writer, outputs []model.Output) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatIDs   FormatType = "ids"
)

// Formats lists the accepted format names.
var Formats = []FormatType{FormatPlain, FormatJSON, FormatIDs}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType) (Formatter, error) {
	switch format {
	case FormatPlain, "":
		return NewPlainFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatIDs:
		return NewIDsFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (valid: %v)", format, Formats)
	}
}

// PlainFormatter writes the topology on one line, as it is keyed in the
// saved document.
type PlainFormatter struct{}

// NewPlainFormatter creates a new plain formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// Format writes "[id1, id2]".
func (f *PlainFormatter) Format(w io.Writer, outputs []model.Output) error {
	_, err := fmt.Fprintln(w, model.TopologyOf(outputs))
	return err
}
