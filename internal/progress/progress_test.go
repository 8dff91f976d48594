package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyline/internal/catalog"
	"partyline/internal/model"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.Batch{
		{ID: "basics", Title: "The Basics", Questions: []model.Question{
			{ID: "nickname", Kind: model.KindShortText, Required: true},
			{ID: "party_trick", Kind: model.KindShortText},
		}},
		{ID: "tastes", Title: "Matters of Taste", Questions: []model.Question{
			{ID: "chai_coffee", Kind: model.KindEitherOr, Required: true},
		}},
		{ID: "wanderlust", Title: "Wanderlust", Questions: []model.Question{
			{ID: "travel_city", Kind: model.KindShortText, Required: true},
			{ID: "bucket_list", Kind: model.KindShortText, Required: true},
		}},
	})
	require.NoError(t, err)
	return cat
}

func TestLockedSequentialUnlock(t *testing.T) {
	cat := testCatalog(t)
	prog := map[string]model.BatchStatus{}

	// First batch is always open; everything after it starts locked.
	assert.False(t, Locked(cat, "basics", prog))
	assert.True(t, Locked(cat, "tastes", prog))
	assert.True(t, Locked(cat, "wanderlust", prog))

	// In-progress does not unlock the next batch.
	prog["basics"] = model.BatchInProgress
	assert.True(t, Locked(cat, "tastes", prog))

	prog["basics"] = model.BatchComplete
	assert.False(t, Locked(cat, "tastes", prog))
	assert.True(t, Locked(cat, "wanderlust", prog))

	prog["tastes"] = model.BatchComplete
	assert.False(t, Locked(cat, "wanderlust", prog))
}

func TestLockedIgnoresUnknownIDs(t *testing.T) {
	cat := testCatalog(t)
	prog := map[string]model.BatchStatus{
		"basics":  model.BatchComplete,
		"retired": model.BatchInProgress,
	}
	assert.False(t, Locked(cat, "tastes", prog))
	assert.False(t, Locked(cat, "retired", prog))
}

func TestCompletion(t *testing.T) {
	cat := testCatalog(t)

	assert.Equal(t, 0, Completion(cat, map[string]model.BatchStatus{}))
	assert.Equal(t, 33, Completion(cat, map[string]model.BatchStatus{
		"basics": model.BatchComplete,
		"tastes": model.BatchInProgress,
	}))
	assert.Equal(t, 67, Completion(cat, map[string]model.BatchStatus{
		"basics": model.BatchComplete,
		"tastes": model.BatchComplete,
	}))
	assert.Equal(t, 100, Completion(cat, map[string]model.BatchStatus{
		"basics":     model.BatchComplete,
		"tastes":     model.BatchComplete,
		"wanderlust": model.BatchComplete,
	}))

	// Stray entries never push the figure past the catalog total.
	assert.Equal(t, 100, Completion(cat, map[string]model.BatchStatus{
		"basics":     model.BatchComplete,
		"tastes":     model.BatchComplete,
		"wanderlust": model.BatchComplete,
		"retired":    model.BatchComplete,
	}))
}

func TestNextBatch(t *testing.T) {
	cat := testCatalog(t)

	next := NextBatch(cat, map[string]model.BatchStatus{})
	require.NotNil(t, next)
	assert.Equal(t, "basics", next.ID)

	next = NextBatch(cat, map[string]model.BatchStatus{"basics": model.BatchComplete})
	require.NotNil(t, next)
	assert.Equal(t, "tastes", next.ID)

	assert.Nil(t, NextBatch(cat, map[string]model.BatchStatus{
		"basics":     model.BatchComplete,
		"tastes":     model.BatchComplete,
		"wanderlust": model.BatchComplete,
	}))
}

func TestMarkDraft(t *testing.T) {
	cat := testCatalog(t)

	prog := map[string]model.BatchStatus{}
	MarkDraft(cat, "basics", map[string]string{"nickname": "Mo"}, prog)
	assert.Equal(t, model.BatchInProgress, prog["basics"])

	// A draft with no answers in the batch stays not_started.
	prog = map[string]model.BatchStatus{}
	MarkDraft(cat, "basics", map[string]string{"chai_coffee": "a"}, prog)
	assert.Equal(t, model.BatchNotStarted, prog["basics"])

	// Complete is sticky: a later draft save never demotes it.
	prog = map[string]model.BatchStatus{"basics": model.BatchComplete}
	MarkDraft(cat, "basics", map[string]string{}, prog)
	assert.Equal(t, model.BatchComplete, prog["basics"])

	// Unknown batch ids are ignored.
	prog = map[string]model.BatchStatus{}
	MarkDraft(cat, "retired", map[string]string{"x": "y"}, prog)
	assert.Empty(t, prog)
}

func TestMarkCompleteIdempotent(t *testing.T) {
	cat := testCatalog(t)
	prog := map[string]model.BatchStatus{}

	MarkComplete(cat, "tastes", prog)
	MarkComplete(cat, "tastes", prog)
	assert.Equal(t, model.BatchComplete, prog["tastes"])

	MarkComplete(cat, "retired", prog)
	_, recorded := prog["retired"]
	assert.False(t, recorded)
}

func TestValidateBatch(t *testing.T) {
	cat := testCatalog(t)
	batch, ok := cat.Batch("wanderlust")
	require.True(t, ok)

	res := ValidateBatch(batch, map[string]string{})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"travel_city", "bucket_list"}, res.MissingQuestionIDs)

	// Whitespace-only answers do not satisfy a required question.
	res = ValidateBatch(batch, map[string]string{"travel_city": "   ", "bucket_list": "Aurora"})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"travel_city"}, res.MissingQuestionIDs)

	res = ValidateBatch(batch, map[string]string{"travel_city": "Lisbon", "bucket_list": "Aurora"})
	assert.True(t, res.Valid)
	assert.Empty(t, res.MissingQuestionIDs)

	// Optional questions never block, answers outside the batch are ignored.
	basics, ok := cat.Batch("basics")
	require.True(t, ok)
	res = ValidateBatch(basics, map[string]string{"nickname": "Mo", "chai_coffee": ""})
	assert.True(t, res.Valid)
}
