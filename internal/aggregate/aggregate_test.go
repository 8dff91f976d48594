package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyline/internal/catalog"
	"partyline/internal/model"
)

func reportCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.Batch{
		{ID: "tastes", Title: "Matters of Taste", Questions: []model.Question{
			{
				ID:       "pulao_biryani",
				Kind:     model.KindEitherOr,
				Prompt:   "Pulao or Biryani?",
				Required: true,
				Options: []model.Option{
					{ID: "a", Label: "Pulao"},
					{ID: "b", Label: "Biryani"},
				},
				Flags: model.EitherOrFlags{AllowBoth: true, AllowDontKnow: true},
			},
			{
				ID:   "dance_move",
				Kind: model.KindSingleChoice,
				Options: []model.Option{
					{ID: "robot", Label: "The robot"},
					{ID: "other", Label: "Something else", WriteIn: true},
				},
			},
			{
				ID:             "birth_month",
				Kind:           model.KindDropdown,
				OrderedOptions: true,
				Options: []model.Option{
					{ID: "jan", Label: "January"},
					{ID: "feb", Label: "February"},
					{ID: "mar", Label: "March"},
				},
			},
			{
				ID:       "fav_city",
				Kind:     model.KindShortText,
				Location: true,
			},
		}},
	})
	require.NoError(t, err)
	return cat
}

func profileWith(respondentID, name string, answers map[string]string) *model.Profile {
	return &model.Profile{
		RespondentID: respondentID,
		DisplayName:  name,
		Answers:      answers,
		Geo:          map[string]model.GeoPoint{},
		Progress:     map[string]model.BatchStatus{},
	}
}

func findQuestion(t *testing.T, report *model.PartyReport, id string) model.QuestionAggregate {
	t.Helper()
	for _, q := range report.Questions {
		if q.QuestionID == id {
			return q
		}
	}
	t.Fatalf("question %q not in report", id)
	return model.QuestionAggregate{}
}

func TestEitherOrFrequencies(t *testing.T) {
	e := NewEngine(reportCatalog(t))
	profiles := []*model.Profile{
		profileWith("g1", "Amira", map[string]string{"pulao_biryani": "a"}),
		profileWith("g2", "Bilal", map[string]string{"pulao_biryani": "a"}),
		profileWith("g3", "Chen", map[string]string{"pulao_biryani": "b"}),
	}

	agg := findQuestion(t, e.Report("p1", profiles), "pulao_biryani")
	assert.Equal(t, 3, agg.ResponseCount)
	assert.False(t, agg.NoResponses)
	assert.Equal(t, []model.Bucket{
		{Label: "Pulao", Count: 2, Percent: 67},
		{Label: "Biryani", Count: 1, Percent: 33},
	}, agg.Buckets)
}

func TestEitherOrModifierAndBothBuckets(t *testing.T) {
	e := NewEngine(reportCatalog(t))
	profiles := []*model.Profile{
		profileWith("g1", "Amira", map[string]string{"pulao_biryani": "a,b"}),
		profileWith("g2", "Bilal", map[string]string{"pulao_biryani": "DONT_KNOW"}),
		profileWith("g3", "Chen", map[string]string{"pulao_biryani": "a,b"}),
	}

	agg := findQuestion(t, e.Report("p1", profiles), "pulao_biryani")
	assert.Equal(t, []model.Bucket{
		{Label: "Both!", Count: 2, Percent: 67},
		{Label: "Don't know", Count: 1, Percent: 33},
	}, agg.Buckets)
}

func TestWriteInCountsVerbatim(t *testing.T) {
	e := NewEngine(reportCatalog(t))
	profiles := []*model.Profile{
		profileWith("g1", "Amira", map[string]string{"dance_move": "robot"}),
		profileWith("g2", "Bilal", map[string]string{"dance_move": "OTHER::The worm"}),
	}

	agg := findQuestion(t, e.Report("p1", profiles), "dance_move")
	assert.ElementsMatch(t, []model.Bucket{
		{Label: "The robot", Count: 1, Percent: 50},
		{Label: "The worm", Count: 1, Percent: 50},
	}, agg.Buckets)
}

func TestNoResponsesMarker(t *testing.T) {
	e := NewEngine(reportCatalog(t))
	profiles := []*model.Profile{
		profileWith("g1", "Amira", map[string]string{"pulao_biryani": "a"}),
	}

	agg := findQuestion(t, e.Report("p1", profiles), "dance_move")
	assert.True(t, agg.NoResponses)
	assert.Zero(t, agg.ResponseCount)
	assert.Empty(t, agg.Buckets)
}

func TestOrderedDropdownKeepsCatalogOrder(t *testing.T) {
	e := NewEngine(reportCatalog(t))
	// More March than January, plus one value stored by label; February is
	// unused and must not appear.
	profiles := []*model.Profile{
		profileWith("g1", "Amira", map[string]string{"birth_month": "mar"}),
		profileWith("g2", "Bilal", map[string]string{"birth_month": "mar"}),
		profileWith("g3", "Chen", map[string]string{"birth_month": "jan"}),
		profileWith("g4", "Dua", map[string]string{"birth_month": "March"}),
	}

	agg := findQuestion(t, e.Report("p1", profiles), "birth_month")
	assert.Equal(t, []model.Bucket{
		{Label: "January", Count: 1, Percent: 25},
		{Label: "March", Count: 3, Percent: 75},
	}, agg.Buckets)
}

func TestTallyCaseFoldsFreeText(t *testing.T) {
	buckets := tally([]string{"Paris", "paris", "Lahore"}, true)
	assert.Equal(t, []model.Bucket{
		{Label: "Paris", Count: 2, Percent: 67},
		{Label: "Lahore", Count: 1, Percent: 33},
	}, buckets)

	// Without case folding the spellings stay separate.
	buckets = tally([]string{"Paris", "paris"}, false)
	assert.Len(t, buckets, 2)
}

func TestLocationQuestionClustersGeo(t *testing.T) {
	e := NewEngine(reportCatalog(t))
	lahore := model.GeoPoint{Place: "Lahore, Pakistan", Lat: 31.5204, Lng: 74.3587}
	lisbon := model.GeoPoint{Place: "Lisbon, Portugal", Lat: 38.7223, Lng: -9.1393}

	p1 := profileWith("g1", "Amira", map[string]string{"fav_city": "Lahore"})
	p1.Geo["fav_city"] = lahore
	p2 := profileWith("g2", "Bilal", map[string]string{"fav_city": "lahore"})
	p2.Geo["fav_city"] = lahore
	p3 := profileWith("g3", "Chen", map[string]string{"fav_city": "Lisbon"})
	p3.Geo["fav_city"] = lisbon
	// No geocode result for this one; it appears only in the text list.
	p4 := profileWith("g4", "Dua", map[string]string{"fav_city": "Atlantis"})

	agg := findQuestion(t, e.Report("p1", []*model.Profile{p1, p2, p3, p4}), "fav_city")
	assert.Len(t, agg.Texts, 4)
	require.Len(t, agg.Places, 2)
	assert.Equal(t, "Lahore, Pakistan", agg.Places[0].Place)
	assert.Equal(t, 2, agg.Places[0].Count)
	assert.ElementsMatch(t, []string{"Amira", "Bilal"}, agg.Places[0].RespondentNames)
	assert.Equal(t, 1, agg.Places[1].Count)
}

func TestMarkerRadius(t *testing.T) {
	assert.Equal(t, 6.0, MarkerRadius(0, 10, 6, 30))
	assert.Equal(t, 30.0, MarkerRadius(10, 10, 6, 30))
	assert.Equal(t, 30.0, MarkerRadius(15, 10, 6, 30))
	assert.Equal(t, 6.0, MarkerRadius(3, 0, 6, 30))

	prev := 0.0
	for c := 1; c <= 10; c++ {
		r := MarkerRadius(c, 10, 6, 30)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
}

func TestRoundPct(t *testing.T) {
	assert.Equal(t, 67, roundPct(2, 3))
	assert.Equal(t, 33, roundPct(1, 3))
	assert.Equal(t, 50, roundPct(1, 2))
	assert.Equal(t, 100, roundPct(3, 3))
}

func TestRespondentSummaries(t *testing.T) {
	e := NewEngine(reportCatalog(t))
	p := profileWith("g1", "Amira", map[string]string{"pulao_biryani": "b"})
	p.Progress["tastes"] = model.BatchComplete

	report := e.Report("p1", []*model.Profile{p})
	require.Len(t, report.Respondents, 1)
	s := report.Respondents[0]
	assert.Equal(t, "g1", s.RespondentID)
	assert.Equal(t, model.BatchComplete, s.BatchStatuses["tastes"])
	assert.Equal(t, 100, s.CompletionPct)
	assert.Equal(t, "Biryani", s.Answers["pulao_biryani"])
}
