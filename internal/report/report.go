package report

import (
	"fmt"
	"io"

	"pit-strategy/internal/evaluator"
)

type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected text, csv, json or xlsx)", s)
	}
}

// Write renders res in the given format. XLSX is written to path; the other
// formats go to w.
func Write(w io.Writer, path string, format Format, res *evaluator.Result) error {
	switch format {
	case FormatText:
		return WriteText(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatXLSX:
		if path == "" {
			return fmt.Errorf("xlsx output needs a file path")
		}
		return WriteXLSX(path, res)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
