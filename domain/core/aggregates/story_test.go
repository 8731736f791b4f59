package aggregates_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensemaker-backend/domain/core/aggregates"
	"sensemaker-backend/domain/core/valueobjects"
	pkgerrors "sensemaker-backend/pkg/errors"
)

func validText() string {
	return strings.Repeat("a", 50)
}

func placements(t *testing.T, ids ...string) []valueobjects.TriadPlacement {
	t.Helper()
	out := make([]valueobjects.TriadPlacement, 0, len(ids))
	for i, id := range ids {
		coords, err := valueobjects.NewTriadCoordinates(0.1*float64(i+1), 0.2)
		require.NoError(t, err)
		p, err := valueobjects.NewTriadPlacement(id, coords)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestNewStory_Valid(t *testing.T) {
	before := time.Now().UTC()

	story, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "b", "c"), nil, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, "story-1", story.ID())
	assert.Equal(t, aggregates.StatusPending, story.ProcessingStatus())
	assert.Nil(t, story.Metadata())
	assert.False(t, story.Timestamp().Before(before))
	assert.Equal(t, time.UTC, story.Timestamp().Location())
	assert.Len(t, story.Triads(), 3)
}

func TestNewStory_TextLengthBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		length int
		ok     bool
	}{
		{"one short of minimum", 49, false},
		{"exact minimum", 50, true},
		{"exact maximum", 2000, true},
		{"one past maximum", 2001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.length)

			_, err := aggregates.NewStory("story-1", text, placements(t, "a", "b", "c"), nil, time.Time{})

			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsDomainValidation(err))
			}
		})
	}
}

func TestNewStory_LengthCountsCharactersNotBytes(t *testing.T) {
	// 50 two-byte runes is 100 bytes but exactly the minimum length.
	text := strings.Repeat("é", 50)

	_, err := aggregates.NewStory("story-1", text, placements(t, "a", "b", "c"), nil, time.Time{})

	assert.NoError(t, err)
}

func TestNewStory_PlacementCardinality(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		ok   bool
	}{
		{"two placements", []string{"a", "b"}, false},
		{"three placements", []string{"a", "b", "c"}, true},
		{"four placements", []string{"a", "b", "c", "d"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := aggregates.NewStory("story-1", validText(), placements(t, tt.ids...), nil, time.Time{})

			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsDomainValidation(err))
			}
		})
	}
}

func TestNewStory_DuplicateTriadIDs(t *testing.T) {
	_, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "a", "c"), nil, time.Time{})

	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	require.Len(t, appErr.Violations, 1)
	assert.Equal(t, "triads", appErr.Violations[0].Field)
	assert.Contains(t, appErr.Violations[0].Reason, "duplicate triad id")
}

func TestNewStory_AggregatesViolationsInOrder(t *testing.T) {
	// Missing id, short text, and bad cardinality reported together:
	// presence first, then length, then cardinality.
	_, err := aggregates.NewStory("", "too short", placements(t, "a", "b"), nil, time.Time{})

	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	require.Len(t, appErr.Violations, 3)
	assert.Equal(t, "id", appErr.Violations[0].Field)
	assert.Equal(t, "story_text", appErr.Violations[1].Field)
	assert.Equal(t, "triads", appErr.Violations[2].Field)
}

func TestNewStory_ExplicitTimestampNormalizedToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2026, 3, 14, 15, 9, 26, 535897932, loc)

	story, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "b", "c"), nil, ts)

	require.NoError(t, err)
	assert.Equal(t, time.UTC, story.Timestamp().Location())
	assert.True(t, story.Timestamp().Equal(ts))
}

func TestStory_SetProcessingStatus(t *testing.T) {
	story, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "b", "c"), nil, time.Time{})
	require.NoError(t, err)

	require.NoError(t, story.SetProcessingStatus("processed"))
	assert.Equal(t, "processed", story.ProcessingStatus())

	err = story.SetProcessingStatus("")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDomainValidation(err))
}

func TestStory_DocumentRoundTrip(t *testing.T) {
	pseudonym := "quiet-otter"
	dept := "platform"
	meta := valueobjects.NewStoryMetadata(&pseudonym, &dept, nil, nil)

	story, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "b", "c"), &meta, time.Time{})
	require.NoError(t, err)

	doc := story.ToDocument()
	require.NotNil(t, doc.Metadata)
	assert.Equal(t, "pending", doc.ProcessingStatus)

	restored, err := aggregates.ReconstructStory("story-1", doc)
	require.NoError(t, err)
	assert.True(t, story.Equals(restored))
}

func TestStory_DocumentRoundTrip_NoMetadata(t *testing.T) {
	story, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "b", "c"), nil, time.Time{})
	require.NoError(t, err)

	doc := story.ToDocument()
	assert.Nil(t, doc.Metadata)

	restored, err := aggregates.ReconstructStory("story-1", doc)
	require.NoError(t, err)
	assert.Nil(t, restored.Metadata())
	assert.True(t, story.Equals(restored))
}

func TestReconstructStory_EmptyStatusDefaultsToPending(t *testing.T) {
	story, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "b", "c"), nil, time.Time{})
	require.NoError(t, err)

	doc := story.ToDocument()
	doc.ProcessingStatus = ""

	restored, err := aggregates.ReconstructStory("story-1", doc)
	require.NoError(t, err)
	assert.Equal(t, aggregates.StatusPending, restored.ProcessingStatus())
}

func TestReconstructStory_InvalidTimestamp(t *testing.T) {
	story, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "b", "c"), nil, time.Time{})
	require.NoError(t, err)

	doc := story.ToDocument()
	doc.Timestamp = "not-a-timestamp"

	_, err = aggregates.ReconstructStory("story-1", doc)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDomainValidation(err))
}

func TestReconstructStory_RejectsCorruptedCoordinates(t *testing.T) {
	story, err := aggregates.NewStory("story-1", validText(), placements(t, "a", "b", "c"), nil, time.Time{})
	require.NoError(t, err)

	doc := story.ToDocument()
	doc.Triads[0].Coordinates.X = 3.5

	_, err = aggregates.ReconstructStory("story-1", doc)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDomainValidation(err))
}
