package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/phrep/internal/model"
)

// WriteNDJSON streams matches as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, items []model.Match) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, m := range items {
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}
