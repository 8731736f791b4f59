package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	pkgerrors "sensemaker-backend/pkg/errors"
)

// Raw document shapes, decoupled from the validated types so that a parse
// success never implies a valid catalog.

type vertexDoc struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

type triadDoc struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Vertices    []vertexDoc `yaml:"vertices"`
}

type catalogDoc struct {
	Version string     `yaml:"version"`
	Context string     `yaml:"context"`
	Triads  []triadDoc `yaml:"triads"`
}

// Load reads and validates a triad catalog from a YAML file. Loading is
// expected once per process lifetime and is deterministic: the same source
// yields the same catalog, with triad and vertex order preserved.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.NewConfigFormatError(
			fmt.Sprintf("cannot read triad catalog %q", path), err)
	}
	return Parse(data)
}

// Parse validates a triad catalog from raw YAML. A syntax or shape error
// yields a ConfigFormatError; parsed data violating a catalog invariant
// yields a ConfigValidationError. No partial catalog is ever returned.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.NewConfigFormatError("triad catalog is not valid YAML", err)
	}

	triads := make([]Triad, 0, len(doc.Triads))
	for i, td := range doc.Triads {
		vertices := make([]Vertex, 0, len(td.Vertices))
		for j, vd := range td.Vertices {
			v, err := NewVertex(vd.ID, vd.Label, vd.Description)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "triads[%d].vertices[%d]", i, j)
			}
			vertices = append(vertices, v)
		}
		t, err := NewTriad(td.ID, td.Name, td.Description, vertices)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "triads[%d]", i)
		}
		triads = append(triads, t)
	}

	return NewCatalog(doc.Version, doc.Context, triads)
}
