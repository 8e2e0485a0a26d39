package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/predprey/internal/series"
	"github.com/san-kum/predprey/internal/storage"
)

type runDocument struct {
	Run    storage.RunMetadata `json:"run"`
	Series []series.Point      `json:"series"`
}

// WriteJSON writes a stored run and its population series as one document.
func WriteJSON(w io.Writer, meta storage.RunMetadata, points []series.Point) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runDocument{Run: meta, Series: points})
}
