package batch

import (
	"encoding/json"
	"os"
)

// Manifest describes one rendered action.
type Manifest struct {
	Model  string          `json:"model"`
	Action int             `json:"action"`
	Bones  int             `json:"bones"`
	Frames []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame int        `json:"frame"`
	Image string     `json:"image,omitempty"`
	Root  [3]float64 `json:"root"`
	Error string     `json:"error,omitempty"`
}

// NewManifest collects results into a manifest. Failed frames keep their
// error and have no image.
func NewManifest(model string, action, bones int, results []Result) Manifest {
	m := Manifest{Model: model, Action: action, Bones: bones, Frames: make([]ManifestEntry, len(results))}
	for i, r := range results {
		e := ManifestEntry{Frame: r.Frame, Root: r.Root, Error: r.Error}
		if r.Success {
			e.Image = r.Image
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
