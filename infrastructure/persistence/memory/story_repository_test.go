package memory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensemaker-backend/domain/core/aggregates"
	"sensemaker-backend/domain/core/valueobjects"
	"sensemaker-backend/infrastructure/persistence/memory"
	pkgerrors "sensemaker-backend/pkg/errors"
)

func testStory(t *testing.T, id string) *aggregates.Story {
	t.Helper()
	placements := make([]valueobjects.TriadPlacement, 0, 3)
	for _, triadID := range []string{"a", "b", "c"} {
		coords, err := valueobjects.NewTriadCoordinates(0.25, 0.25)
		require.NoError(t, err)
		p, err := valueobjects.NewTriadPlacement(triadID, coords)
		require.NoError(t, err)
		placements = append(placements, p)
	}
	story, err := aggregates.NewStory(id, strings.Repeat("a", 60), placements, nil, time.Time{})
	require.NoError(t, err)
	return story
}

func TestStoryRepository_SaveAndGet(t *testing.T) {
	repo := memory.NewStoryRepository()
	story := testStory(t, "story-1")

	id, err := repo.Save(context.Background(), story)
	require.NoError(t, err)
	assert.Equal(t, "story-1", id)

	got, err := repo.Get(context.Background(), "story-1")
	require.NoError(t, err)
	assert.True(t, story.Equals(got))
}

func TestStoryRepository_SaveIsUpsert(t *testing.T) {
	repo := memory.NewStoryRepository()
	story := testStory(t, "story-1")

	_, err := repo.Save(context.Background(), story)
	require.NoError(t, err)
	require.NoError(t, story.SetProcessingStatus("processed"))
	_, err = repo.Save(context.Background(), story)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.Len())
	got, err := repo.Get(context.Background(), "story-1")
	require.NoError(t, err)
	assert.Equal(t, "processed", got.ProcessingStatus())
}

func TestStoryRepository_GetMissing(t *testing.T) {
	repo := memory.NewStoryRepository()

	_, err := repo.Get(context.Background(), "absent")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.False(t, pkgerrors.IsStorage(err))
}

func TestStoryRepository_StoredDocumentIsDetached(t *testing.T) {
	repo := memory.NewStoryRepository()
	story := testStory(t, "story-1")

	_, err := repo.Save(context.Background(), story)
	require.NoError(t, err)

	// Mutating the aggregate after save must not alter the stored document.
	require.NoError(t, story.SetProcessingStatus("processed"))

	doc, ok := repo.Document("story-1")
	require.True(t, ok)
	assert.Equal(t, aggregates.StatusPending, doc.ProcessingStatus)
}
