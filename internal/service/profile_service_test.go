package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"partyline/internal/catalog"
	"partyline/internal/codec"
	"partyline/internal/model"
)

// fakeProfileRepo is an in-memory ProfileRepo keyed by (party, respondent).
type fakeProfileRepo struct {
	profiles map[string]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.Profile)}
}

func repoKey(partyID, respondentID string) string {
	return partyID + "|" + respondentID
}

func (r *fakeProfileRepo) Get(ctx context.Context, partyID, respondentID string) (*model.Profile, error) {
	p, ok := r.profiles[repoKey(partyID, respondentID)]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *model.Profile) error {
	clone := *profile
	r.profiles[repoKey(profile.PartyID, profile.RespondentID)] = &clone
	return nil
}

func (r *fakeProfileRepo) ListByParty(ctx context.Context, partyID string) ([]*model.Profile, error) {
	var out []*model.Profile
	for _, p := range r.profiles {
		if p.PartyID == partyID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) BroadcastToHost(partyID string, msgType string, payload interface{}) {
	m.Called(partyID, msgType, payload)
}

func (m *mockBroadcaster) BroadcastToAllGuests(partyID string, msgType string, payload interface{}) {
	m.Called(partyID, msgType, payload)
}

// recordingReportCache counts invalidations; get/set are never hit here.
type recordingReportCache struct {
	invalidated []string
}

func (c *recordingReportCache) Get(ctx context.Context, partyID string) (*model.PartyReport, error) {
	return nil, nil
}

func (c *recordingReportCache) Set(ctx context.Context, report *model.PartyReport) error {
	return nil
}

func (c *recordingReportCache) Invalidate(ctx context.Context, partyID string) error {
	c.invalidated = append(c.invalidated, partyID)
	return nil
}

func serviceCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.Batch{
		{ID: "basics", Title: "The Basics", Questions: []model.Question{
			{ID: "nickname", Kind: model.KindShortText, Required: true},
			{ID: "birth_city", Kind: model.KindShortText, Required: true, Location: true},
		}},
		{ID: "tastes", Title: "Matters of Taste", Questions: []model.Question{
			{
				ID: "chai_coffee", Kind: model.KindEitherOr, Required: true,
				Options: []model.Option{{ID: "a", Label: "Chai"}, {ID: "b", Label: "Coffee"}},
				Flags:   model.EitherOrFlags{AllowBoth: true},
			},
		}},
		{ID: "wanderlust", Title: "Wanderlust", Questions: []model.Question{
			{ID: "travel_city", Kind: model.KindShortText, Required: true, Location: true},
		}},
	})
	require.NoError(t, err)
	return cat
}

func newTestProfileService(t *testing.T) (*ProfileService, *fakeProfileRepo, *recordingReportCache) {
	t.Helper()
	repo := newFakeProfileRepo()
	reportCache := &recordingReportCache{}
	svc := NewProfileService(repo, serviceCatalog(t), nil, reportCache)
	return svc, repo, reportCache
}

func TestEnsureProfileCreatesOnFirstSignIn(t *testing.T) {
	svc, repo, _ := newTestProfileService(t)
	b := &mockBroadcaster{}
	b.On("BroadcastToHost", "p1", EventGuestJoined, mock.Anything).Once()
	svc.SetBroadcaster(b)
	ctx := context.Background()

	p, err := svc.EnsureProfile(ctx, "p1", "g1", "Amira", "amira@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Amira", p.DisplayName)
	assert.Len(t, repo.profiles, 1)

	// Signing in again reuses the profile and announces nothing.
	again, err := svc.EnsureProfile(ctx, "p1", "g1", "Amira", "amira@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.RespondentID, again.RespondentID)
	b.AssertExpectations(t)
}

func TestSubmitBatchCompletes(t *testing.T) {
	svc, _, reportCache := newTestProfileService(t)
	ctx := context.Background()

	out, err := svc.SubmitBatch(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname":   {Text: "Mo"},
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)
	assert.True(t, out.Validation.Valid)
	assert.Equal(t, model.BatchComplete, out.Profile.Progress["basics"])
	assert.Equal(t, 33, out.Completion)
	assert.Equal(t, []string{"p1"}, reportCache.invalidated)
}

func TestSubmitBroadcastsCompletionAndReportRefresh(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	b := &mockBroadcaster{}
	b.On("BroadcastToHost", "p1", EventBatchCompleted, mock.Anything).Once()
	b.On("BroadcastToHost", "p1", EventReportRefresh, mock.Anything).Once()
	b.On("BroadcastToHost", "p1", EventProgressUpdate, mock.Anything).Once()
	svc.SetBroadcaster(b)

	_, err := svc.SubmitBatch(context.Background(), "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname":   {Text: "Mo"},
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)
	b.AssertExpectations(t)
}

func TestFailedSubmitDoesNotAnnounceRefresh(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	b := &mockBroadcaster{}
	b.On("BroadcastToHost", "p1", EventProgressUpdate, mock.Anything).Once()
	svc.SetBroadcaster(b)

	out, err := svc.SubmitBatch(context.Background(), "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname": {Text: "Mo"},
	})
	require.NoError(t, err)
	assert.False(t, out.Validation.Valid)
	b.AssertExpectations(t)
	b.AssertNotCalled(t, "BroadcastToHost", "p1", EventBatchCompleted, mock.Anything)
	b.AssertNotCalled(t, "BroadcastToHost", "p1", EventReportRefresh, mock.Anything)
}

func TestSubmitBatchValidationFailurePersistsDraft(t *testing.T) {
	svc, repo, reportCache := newTestProfileService(t)
	ctx := context.Background()

	out, err := svc.SubmitBatch(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname": {Text: "Mo"},
	})
	require.NoError(t, err)
	assert.False(t, out.Validation.Valid)
	assert.Equal(t, []string{"birth_city"}, out.Validation.MissingQuestionIDs)
	assert.Equal(t, model.BatchInProgress, out.Profile.Progress["basics"])
	assert.Empty(t, reportCache.invalidated)

	// The partial answer survived in the store.
	stored, err := repo.Get(ctx, "p1", "g1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Mo", stored.Answers["nickname"])
}

func TestSequentialUnlocking(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()

	// The third batch is out of reach until the first two are complete.
	_, err := svc.SaveDraft(ctx, "p1", "g1", "wanderlust", nil)
	assert.ErrorIs(t, err, ErrBatchLocked)

	_, err = svc.SubmitBatch(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname":   {Text: "Mo"},
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)

	_, err = svc.SaveDraft(ctx, "p1", "g1", "wanderlust", nil)
	assert.ErrorIs(t, err, ErrBatchLocked)

	_, err = svc.SubmitBatch(ctx, "p1", "g1", "tastes", map[string]codec.RawInput{
		"chai_coffee": {OptionIDs: []string{"a"}},
	})
	require.NoError(t, err)

	out, err := svc.SubmitBatch(ctx, "p1", "g1", "wanderlust", map[string]codec.RawInput{
		"travel_city": {Text: "Lisbon"},
	})
	require.NoError(t, err)
	assert.True(t, out.Validation.Valid)
	assert.Equal(t, 100, out.Completion)
}

func TestSelectOptionTapSequence(t *testing.T) {
	svc, repo, _ := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.SubmitBatch(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname":   {Text: "Mo"},
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)

	state, err := svc.SelectOption(ctx, "p1", "g1", "tastes", "chai_coffee", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, state.OptionIDs)

	// allowBoth lets the second tap accumulate.
	state, err = svc.SelectOption(ctx, "p1", "g1", "tastes", "chai_coffee", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, state.OptionIDs)

	stored, err := repo.Get(ctx, "p1", "g1")
	require.NoError(t, err)
	assert.Equal(t, "a,b", stored.Answers["chai_coffee"])
	assert.Equal(t, model.BatchInProgress, stored.Progress["tastes"])

	// Tapping each selected option again clears the answer entirely.
	_, err = svc.SelectOption(ctx, "p1", "g1", "tastes", "chai_coffee", "a")
	require.NoError(t, err)
	state, err = svc.SelectOption(ctx, "p1", "g1", "tastes", "chai_coffee", "b")
	require.NoError(t, err)
	assert.Empty(t, state.OptionIDs)

	stored, err = repo.Get(ctx, "p1", "g1")
	require.NoError(t, err)
	_, present := stored.Answers["chai_coffee"]
	assert.False(t, present)
}

func TestSelectOptionGuards(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.SelectOption(ctx, "p1", "g1", "tastes", "chai_coffee", "a")
	assert.ErrorIs(t, err, ErrBatchLocked)

	_, err = svc.SelectOption(ctx, "p1", "g1", "basics", "ghost", "a")
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	// Taps only apply to either_or questions.
	_, err = svc.SelectOption(ctx, "p1", "g1", "basics", "nickname", "a")
	assert.ErrorIs(t, err, codec.ErrKindMismatch)
}

func TestSubmitUnknownBatch(t *testing.T) {
	svc, _, _ := newTestProfileService(t)

	_, err := svc.SubmitBatch(context.Background(), "p1", "g1", "retired", nil)
	assert.ErrorIs(t, err, ErrUnknownBatch)
}

func TestResubmitCompleteBatchIsIdempotent(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()
	inputs := map[string]codec.RawInput{
		"nickname":   {Text: "Mo"},
		"birth_city": {Text: "Lahore"},
	}

	first, err := svc.SubmitBatch(ctx, "p1", "g1", "basics", inputs)
	require.NoError(t, err)
	second, err := svc.SubmitBatch(ctx, "p1", "g1", "basics", inputs)
	require.NoError(t, err)

	assert.Equal(t, first.Completion, second.Completion)
	assert.Equal(t, model.BatchComplete, second.Profile.Progress["basics"])
}

func TestSaveDraftPrefillRoundTrip(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.SaveDraft(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname": {Text: "Mo"},
	})
	require.NoError(t, err)

	inputs, err := svc.Prefill(ctx, "p1", "g1", "basics")
	require.NoError(t, err)
	assert.Equal(t, map[string]codec.RawInput{"nickname": {Text: "Mo"}}, inputs)
}

func TestSaveDraftClearsAnswerOnEmptyInput(t *testing.T) {
	svc, repo, _ := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.SaveDraft(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname": {Text: "Mo"},
	})
	require.NoError(t, err)

	_, err = svc.SaveDraft(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname": {Text: ""},
	})
	require.NoError(t, err)

	stored, err := repo.Get(ctx, "p1", "g1")
	require.NoError(t, err)
	_, present := stored.Answers["nickname"]
	assert.False(t, present)
}

func TestSaveDraftIgnoresStaleQuestions(t *testing.T) {
	svc, repo, _ := newTestProfileService(t)
	ctx := context.Background()

	// chai_coffee belongs to a different batch; the input is stale UI state.
	_, err := svc.SaveDraft(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname":    {Text: "Mo"},
		"chai_coffee": {OptionIDs: []string{"a"}},
	})
	require.NoError(t, err)

	stored, err := repo.Get(ctx, "p1", "g1")
	require.NoError(t, err)
	_, present := stored.Answers["chai_coffee"]
	assert.False(t, present)
}

func TestGeocodeFailureDoesNotBlockSave(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, serviceCatalog(t), NewGeocoderService(server.URL, nil), &recordingReportCache{})
	ctx := context.Background()

	p, err := svc.SaveDraft(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lahore", p.Answers["birth_city"])
	assert.Empty(t, p.Geo)
}

func TestGeocodeSuccessStoresPoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lahore", r.URL.Query().Get("q"))
		fmt.Fprint(w, `[{"display_name":"Lahore, Punjab, Pakistan","lat":"31.5204","lon":"74.3587"}]`)
	}))
	defer server.Close()

	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, serviceCatalog(t), NewGeocoderService(server.URL, nil), &recordingReportCache{})
	ctx := context.Background()

	p, err := svc.SaveDraft(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)
	require.Contains(t, p.Geo, "birth_city")
	assert.Equal(t, "Lahore, Punjab, Pakistan", p.Geo["birth_city"].Place)
	assert.InDelta(t, 31.5204, p.Geo["birth_city"].Lat, 0.0001)
}

func TestBatchesViews(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()

	views, err := svc.Batches(ctx, "p1", "g1")
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.False(t, views[0].Locked)
	assert.True(t, views[1].Locked)
	assert.Equal(t, model.BatchNotStarted, views[0].Status)

	_, err = svc.SubmitBatch(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname":   {Text: "Mo"},
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)

	views, err = svc.Batches(ctx, "p1", "g1")
	require.NoError(t, err)
	assert.Equal(t, model.BatchComplete, views[0].Status)
	assert.False(t, views[1].Locked)
	assert.True(t, views[2].Locked)
}
