// Package catalog holds the triad catalog: the configured set of conceptual
// triangles a story can be placed against. The catalog is loaded once at
// process start, validated all-or-nothing, and read-only afterwards. It is
// passed explicitly to whatever needs it; there is no package-level instance.
package catalog

import (
	"fmt"

	pkgerrors "sensemaker-backend/pkg/errors"
)

// vertexCount is the structural arity of a triad. Fewer or more vertices is a
// validation failure, never a truncation.
const vertexCount = 3

// Vertex is one corner of a configured triad.
type Vertex struct {
	id          string
	label       string
	description string
}

// NewVertex creates a vertex with validation
func NewVertex(id, label, description string) (Vertex, error) {
	var violations []pkgerrors.Violation
	if id == "" {
		violations = append(violations, pkgerrors.Violation{Field: "id", Reason: "is required"})
	}
	if label == "" {
		violations = append(violations, pkgerrors.Violation{Field: "label", Reason: "is required"})
	}
	if description == "" {
		violations = append(violations, pkgerrors.Violation{Field: "description", Reason: "is required"})
	}
	if len(violations) > 0 {
		return Vertex{}, pkgerrors.NewConfigValidationError("invalid triad vertex", violations...)
	}
	return Vertex{id: id, label: label, description: description}, nil
}

// ID returns the vertex identifier, unique within its parent triad
func (v Vertex) ID() string { return v.id }

// Label returns the vertex display label
func (v Vertex) Label() string { return v.label }

// Description returns the vertex description
func (v Vertex) Description() string { return v.description }

// Triad is a complete triad definition: three uniquely-identified vertices.
type Triad struct {
	id          string
	name        string
	description string
	vertices    [vertexCount]Vertex
}

// NewTriad creates a triad definition with validation
func NewTriad(id, name, description string, vertices []Vertex) (Triad, error) {
	var violations []pkgerrors.Violation
	if id == "" {
		violations = append(violations, pkgerrors.Violation{Field: "id", Reason: "is required"})
	}
	if name == "" {
		violations = append(violations, pkgerrors.Violation{Field: "name", Reason: "is required"})
	}
	if description == "" {
		violations = append(violations, pkgerrors.Violation{Field: "description", Reason: "is required"})
	}
	if len(vertices) != vertexCount {
		violations = append(violations, pkgerrors.Violation{
			Field:  "vertices",
			Reason: fmt.Sprintf("must contain exactly %d vertices, got %d", vertexCount, len(vertices)),
		})
	} else {
		seen := make(map[string]struct{}, vertexCount)
		for _, v := range vertices {
			if _, dup := seen[v.ID()]; dup {
				violations = append(violations, pkgerrors.Violation{
					Field:  "vertices",
					Reason: fmt.Sprintf("duplicate vertex id %q", v.ID()),
				})
			}
			seen[v.ID()] = struct{}{}
		}
	}
	if len(violations) > 0 {
		return Triad{}, pkgerrors.NewConfigValidationError("invalid triad definition", violations...)
	}

	t := Triad{id: id, name: name, description: description}
	copy(t.vertices[:], vertices)
	return t, nil
}

// ID returns the triad identifier, unique across the catalog
func (t Triad) ID() string { return t.id }

// Name returns the triad display name
func (t Triad) Name() string { return t.name }

// Description returns the triad description
func (t Triad) Description() string { return t.description }

// Vertices returns the three vertices in configured order
func (t Triad) Vertices() []Vertex {
	out := make([]Vertex, vertexCount)
	copy(out, t.vertices[:])
	return out
}

// Catalog is the validated, immutable set of configured triads.
type Catalog struct {
	version string
	context string
	triads  []Triad
	byID    map[string]int
}

// NewCatalog creates a catalog with validation. Triad order is preserved.
func NewCatalog(version, context string, triads []Triad) (*Catalog, error) {
	var violations []pkgerrors.Violation
	if version == "" {
		violations = append(violations, pkgerrors.Violation{Field: "version", Reason: "is required"})
	}
	if context == "" {
		violations = append(violations, pkgerrors.Violation{Field: "context", Reason: "is required"})
	}
	if len(triads) == 0 {
		violations = append(violations, pkgerrors.Violation{Field: "triads", Reason: "must contain at least one triad"})
	}
	byID := make(map[string]int, len(triads))
	for i, t := range triads {
		if _, dup := byID[t.ID()]; dup {
			violations = append(violations, pkgerrors.Violation{
				Field:  "triads",
				Reason: fmt.Sprintf("duplicate triad id %q", t.ID()),
			})
			continue
		}
		byID[t.ID()] = i
	}
	if len(violations) > 0 {
		return nil, pkgerrors.NewConfigValidationError("invalid triad catalog", violations...)
	}

	return &Catalog{
		version: version,
		context: context,
		triads:  append([]Triad(nil), triads...),
		byID:    byID,
	}, nil
}

// Version returns the catalog schema version
func (c *Catalog) Version() string { return c.version }

// Context returns the prompting context the triads were designed for
func (c *Catalog) Context() string { return c.context }

// Triads returns all triad definitions in configured order
func (c *Catalog) Triads() []Triad {
	return append([]Triad(nil), c.triads...)
}

// Triad looks up a triad definition by id
func (c *Catalog) Triad(id string) (Triad, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Triad{}, false
	}
	return c.triads[i], true
}

// IDs returns the triad ids in configured order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.triads))
	for i, t := range c.triads {
		ids[i] = t.ID()
	}
	return ids
}

// Len returns the number of configured triads
func (c *Catalog) Len() int { return len(c.triads) }
