// Package aggregate computes cross-respondent summaries for a party:
// frequency tables for choice questions, verbatim lists for free text,
// geo clusters for location questions, and the CSV export.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"partyline/internal/catalog"
	"partyline/internal/codec"
	"partyline/internal/model"
	"partyline/internal/progress"
)

// Engine computes reports over a snapshot of profiles. It is stateless and
// safe to run concurrently for different parties.
type Engine struct {
	cat *catalog.Catalog
}

// NewEngine creates an aggregation engine over the given catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Report builds the full party report from the given profile snapshot.
func (e *Engine) Report(partyID string, profiles []*model.Profile) *model.PartyReport {
	report := &model.PartyReport{
		PartyID:         partyID,
		GeneratedAt:     time.Now(),
		RespondentCount: len(profiles),
	}
	for _, q := range e.cat.Questions() {
		question := q
		report.Questions = append(report.Questions, e.aggregateQuestion(&question, profiles))
	}
	for _, p := range profiles {
		report.Respondents = append(report.Respondents, e.summarize(p))
	}
	return report
}

// aggregateQuestion tallies one question across all profiles.
func (e *Engine) aggregateQuestion(q *model.Question, profiles []*model.Profile) model.QuestionAggregate {
	agg := model.QuestionAggregate{
		QuestionID: q.ID,
		Prompt:     q.Prompt,
		Kind:       q.Kind,
	}

	type response struct {
		profile *model.Profile
		value   string
	}
	var responses []response
	for _, p := range profiles {
		if v := strings.TrimSpace(p.Answers[q.ID]); v != "" {
			responses = append(responses, response{profile: p, value: v})
		}
	}
	agg.ResponseCount = len(responses)
	if len(responses) == 0 {
		// Explicit empty state: callers must render this distinctly from
		// a unanimous 100% result.
		agg.NoResponses = true
		return agg
	}

	switch q.Kind {
	case model.KindEitherOr, model.KindSingleChoice:
		var labels []string
		for _, r := range responses {
			labels = append(labels, ResolveLabel(r.value, q))
		}
		agg.Buckets = tally(labels, false)

	case model.KindDropdown:
		if q.OrderedOptions {
			agg.Buckets = tallyOrdered(q, collectValues(responses, func(r response) string { return r.value }))
		} else {
			var labels []string
			for _, r := range responses {
				labels = append(labels, ResolveLabel(r.value, q))
			}
			agg.Buckets = tally(labels, true)
		}

	case model.KindShortText:
		for _, r := range responses {
			agg.Texts = append(agg.Texts, r.value)
		}
		if q.Location {
			var located []locatedResponse
			for _, r := range responses {
				if pt, ok := r.profile.Geo[q.ID]; ok {
					located = append(located, locatedResponse{
						point: pt,
						name:  r.profile.DisplayName,
					})
				}
			}
			agg.Places = clusterPlaces(located)
		}

	case model.KindPhotoUpload:
		for _, r := range responses {
			agg.Texts = append(agg.Texts, r.value)
		}
	}

	return agg
}

// summarize builds the host's browse-by-person projection for one profile.
func (e *Engine) summarize(p *model.Profile) model.RespondentSummary {
	statuses := make(map[string]model.BatchStatus, e.cat.BatchCount())
	for _, b := range e.cat.Batches() {
		statuses[b.ID] = p.BatchStatus(b.ID)
	}
	answers := make(map[string]string, len(p.Answers))
	for _, q := range e.cat.Questions() {
		question := q
		if v := strings.TrimSpace(p.Answers[q.ID]); v != "" {
			answers[q.ID] = ResolveLabel(v, &question)
		}
	}
	return model.RespondentSummary{
		RespondentID:  p.RespondentID,
		DisplayName:   p.DisplayName,
		BatchStatuses: statuses,
		CompletionPct: progress.Completion(e.cat, p.Progress),
		Answers:       answers,
	}
}

// ResolveLabel maps a stored wire value back to its human-readable label.
// Option ids resolve through the catalog (ids like "a"/"b" are reused
// across questions); write-ins and free text stay verbatim; an either_or
// pair of base options reads as the Both category.
func ResolveLabel(wire string, q *model.Question) string {
	ans, err := decodeWire(wire, q)
	if err != nil {
		return wire
	}
	switch a := ans.(type) {
	case model.TextAnswer:
		if opt, ok := q.Option(a.Text); ok {
			return opt.Label
		}
		return a.Text
	case model.ChoiceAnswer:
		if a.IsWriteIn() {
			return a.WriteIn
		}
		if opt, ok := q.Option(a.OptionID); ok {
			return opt.Label
		}
		return a.OptionID
	case model.EitherOrAnswer:
		if a.Modifier != model.ModifierNone {
			return a.Modifier.Label()
		}
		if len(a.OptionIDs) > 1 {
			return model.ModifierBoth.Label()
		}
		if len(a.OptionIDs) == 1 {
			if opt, ok := q.Option(a.OptionIDs[0]); ok {
				return opt.Label
			}
			return a.OptionIDs[0]
		}
		return ""
	case model.PhotoAnswer:
		return a.URL
	default:
		return wire
	}
}

func decodeWire(wire string, q *model.Question) (model.Answer, error) {
	c, err := codec.For(q.Kind)
	if err != nil {
		return nil, err
	}
	return c.DecodeWire(wire, q)
}

// tally builds a frequency table sorted descending by count; ties keep
// first-encountered order. caseFold buckets values case-insensitively
// while displaying the first spelling seen.
func tally(labels []string, caseFold bool) []model.Bucket {
	index := make(map[string]int)
	var buckets []model.Bucket
	for _, label := range labels {
		key := label
		if caseFold {
			key = strings.ToLower(strings.TrimSpace(label))
		}
		if i, ok := index[key]; ok {
			buckets[i].Count++
			continue
		}
		index[key] = len(buckets)
		buckets = append(buckets, model.Bucket{Label: label, Count: 1})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	fillPercents(buckets, len(labels))
	return buckets
}

// tallyOrdered keeps the catalog option order and omits zero-count
// categories instead of sorting by count.
func tallyOrdered(q *model.Question, values []string) []model.Bucket {
	counts := make(map[string]int, len(q.Options))
	total := 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if opt, ok := q.Option(v); ok {
			counts[opt.ID]++
			total++
			continue
		}
		// Tolerate values stored as labels rather than option ids.
		for _, opt := range q.Options {
			if strings.EqualFold(opt.Label, v) {
				counts[opt.ID]++
				total++
				break
			}
		}
	}
	var buckets []model.Bucket
	for _, opt := range q.Options {
		if counts[opt.ID] == 0 {
			continue
		}
		buckets = append(buckets, model.Bucket{Label: opt.Label, Count: counts[opt.ID]})
	}
	fillPercents(buckets, total)
	return buckets
}

func fillPercents(buckets []model.Bucket, total int) {
	if total == 0 {
		return
	}
	for i := range buckets {
		buckets[i].Percent = roundPct(buckets[i].Count, total)
	}
}

func roundPct(count, total int) int {
	return (200*count + total) / (2 * total)
}

func collectValues[T any](in []T, f func(T) string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
