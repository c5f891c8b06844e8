package storage

import (
	"encoding/json"
	"os"
)

// ExportData is the JSON export shape: run metadata plus the full
// average-velocity series.
type ExportData struct {
	RunMetadata
	AvVels []float64 `json:"av_vels"`
}

// ExportJSONStdout dumps a stored run to stdout.
func ExportJSONStdout(meta *RunMetadata, avVels []float64) error {
	data := ExportData{
		RunMetadata: *meta,
		AvVels:      avVels,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
