package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"github.com/KaramelBytes/fillmatrix/internal/utils"
	"github.com/google/uuid"
)

// Kinds of run recorded in a manifest.
const (
	KindMatrix  = "matrix"
	KindGrouped = "grouped"
)

// Manifest records what a report run read and produced.
type Manifest struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Sheet     string    `json:"sheet"`
	GroupBy   string    `json:"group_by,omitempty"`
	Threshold *float64  `json:"threshold,omitempty"`
	Sources   []Source  `json:"sources"`
	Catalog   []string  `json:"catalog"`
	Entities  []Entity  `json:"entities"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

// Source is one input file.
type Source struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

// Entity is one matrix row with its raw counts.
type Entity struct {
	Name    string           `json:"name"`
	Columns map[string]Count `json:"columns"`
}

// Count is a serialized Formula.
type Count struct {
	Filled  int     `json:"filled"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// New constructs an in-memory manifest with a fresh run ID. Call Save to persist.
func New(kind, sheet, output string) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Kind:      kind,
		Sheet:     sheet,
		Output:    output,
		Catalog:   []string{},
		CreatedAt: time.Now(),
	}
}

// AddSource records an input file and its dimensions.
func (m *Manifest) AddSource(path string, src completeness.Source) {
	m.Sources = append(m.Sources, Source{Name: src.Name, Path: path, Columns: len(src.Header), Rows: len(src.Rows)})
}

// SetResult records the catalog and the unfiltered per-entity counts.
func (m *Manifest) SetResult(catalog completeness.Catalog, reports []completeness.Report) {
	m.Catalog = append([]string{}, catalog...)
	m.Entities = make([]Entity, 0, len(reports))
	for _, r := range reports {
		e := Entity{Name: r.Name, Columns: make(map[string]Count, len(r.Entries))}
		for _, en := range r.Entries {
			e.Columns[en.Column] = Count{Filled: en.Value.Filled, Total: en.Value.Total, Percent: en.Value.Percent()}
		}
		m.Entities = append(m.Entities, e)
	}
}

// PathFor returns the manifest location next to an output file.
func PathFor(output string) string {
	return strings.TrimSuffix(output, ".xlsx") + ".manifest.json"
}

// Save writes the manifest next to its output using an atomic write.
func (m *Manifest) Save() (string, error) {
	if m.Output == "" {
		return "", errors.New("manifest output path not set")
	}
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return "", err
	}
	path := PathFor(m.Output)
	if err := utils.SafeWriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// load reads a manifest from path.
func load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
