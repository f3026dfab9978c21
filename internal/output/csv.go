package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/phrep/internal/model"
)

// WriteCSV renders matches as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, items []model.Match, sel FieldSelection) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Headers(sel.Fields)); err != nil {
		return err
	}
	for _, m := range items {
		if err := writer.Write(RowValues(m, sel.Fields)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
