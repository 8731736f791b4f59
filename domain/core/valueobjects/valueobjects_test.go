package valueobjects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensemaker-backend/domain/core/valueobjects"
	pkgerrors "sensemaker-backend/pkg/errors"
)

func TestTriadCoordinates_ValidRange(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"origin", 0, 0},
		{"upper bounds", 1, 1},
		{"interior point", 0.3, 0.6},
		{"edge x", 1, 0},
		{"edge y", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := valueobjects.NewTriadCoordinates(tt.x, tt.y)

			require.NoError(t, err)
			assert.Equal(t, tt.x, coords.X())
			assert.Equal(t, tt.y, coords.Y())
		})
	}
}

func TestTriadCoordinates_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		field string
	}{
		{"x below zero", -0.1, 0.5, "x"},
		{"x above one", 1.1, 0.5, "x"},
		{"y below zero", 0.5, -0.1, "y"},
		{"y above one", 0.5, 1.5, "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := valueobjects.NewTriadCoordinates(tt.x, tt.y)

			require.Error(t, err)
			assert.True(t, pkgerrors.IsDomainValidation(err))
			appErr := pkgerrors.GetAppError(err)
			require.Len(t, appErr.Violations, 1)
			assert.Equal(t, tt.field, appErr.Violations[0].Field)
			assert.Contains(t, appErr.Violations[0].Reason, "between 0 and 1")
		})
	}
}

func TestTriadCoordinates_BothAxesInvalidReportedTogether(t *testing.T) {
	_, err := valueobjects.NewTriadCoordinates(-1, 2)

	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Violations, 2)
}

func TestTriadCoordinates_ImplicitZ(t *testing.T) {
	coords, err := valueobjects.NewTriadCoordinates(0.3, 0.6)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, coords.Z(), 1e-9)
}

func TestTriadCoordinates_ZMayBeNegative(t *testing.T) {
	// x + y > 1 places the point outside the triangle and is accepted.
	coords, err := valueobjects.NewTriadCoordinates(0.9, 0.9)

	require.NoError(t, err)
	assert.InDelta(t, -0.8, coords.Z(), 1e-9)
}

func TestTriadPlacement_RequiresTriadID(t *testing.T) {
	coords, err := valueobjects.NewTriadCoordinates(0.2, 0.2)
	require.NoError(t, err)

	_, err = valueobjects.NewTriadPlacement("", coords)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsDomainValidation(err))
}

func TestTriadPlacement_AcceptsUnconfiguredTriadID(t *testing.T) {
	// The id is free text referencing a configured triad by convention; it
	// is not checked against the catalog here.
	coords, err := valueobjects.NewTriadCoordinates(0.2, 0.2)
	require.NoError(t, err)

	placement, err := valueobjects.NewTriadPlacement("no-such-triad", coords)

	require.NoError(t, err)
	assert.Equal(t, "no-such-triad", placement.TriadID())
}

func TestStoryMetadata_OptionalFields(t *testing.T) {
	pseudonym := "quiet-otter"
	role := "engineer"

	meta := valueobjects.NewStoryMetadata(&pseudonym, nil, &role, nil)

	require.NotNil(t, meta.UserPseudonym())
	assert.Equal(t, "quiet-otter", *meta.UserPseudonym())
	assert.Nil(t, meta.Department())
	require.NotNil(t, meta.Role())
	assert.Equal(t, "engineer", *meta.Role())
	assert.Nil(t, meta.ToolContext())
}

func TestStoryMetadata_Equals(t *testing.T) {
	pseudonym := "quiet-otter"
	other := "loud-otter"

	a := valueobjects.NewStoryMetadata(&pseudonym, nil, nil, nil)
	b := valueobjects.NewStoryMetadata(&pseudonym, nil, nil, nil)
	c := valueobjects.NewStoryMetadata(&other, nil, nil, nil)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
