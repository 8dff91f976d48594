package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"partyline/internal/cache"
	"partyline/internal/catalog"
	"partyline/internal/codec"
	"partyline/internal/model"
	"partyline/internal/progress"
	"partyline/internal/repository"
)

var (
	ErrBatchLocked     = errors.New("batch is locked until earlier batches are complete")
	ErrUnknownBatch    = errors.New("batch not in catalog")
	ErrUnknownQuestion = errors.New("question not in batch")
)

// BatchView is one batch with the respondent's status and lock state, for
// rendering the questionnaire index.
type BatchView struct {
	Batch  model.Batch       `json:"batch"`
	Status model.BatchStatus `json:"status"`
	Locked bool              `json:"locked"`
}

// SubmitOutcome is the result of a batch submission: either the batch
// completed, or validation lists the missing required questions. The draft
// is persisted either way.
type SubmitOutcome struct {
	Profile    *model.Profile  `json:"profile"`
	Validation progress.Result `json:"validation"`
	Completion int             `json:"completion"`
}

// ProfileService drives a respondent through the questionnaire: draft
// saves, batch submission, prefill for revisits. All operations
// read-modify-write the full profile before upserting; the store replaces
// answers and progress wholesale.
type ProfileService struct {
	profiles    repository.ProfileRepo
	cat         *catalog.Catalog
	geocoder    *GeocoderService
	reportCache cache.ReportCache
	broadcaster Broadcaster
}

// NewProfileService creates a new profile service
func NewProfileService(
	profiles repository.ProfileRepo,
	cat *catalog.Catalog,
	geocoder *GeocoderService,
	reportCache cache.ReportCache,
) *ProfileService {
	return &ProfileService{
		profiles:    profiles,
		cat:         cat,
		geocoder:    geocoder,
		reportCache: reportCache,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ProfileService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// EnsureProfile returns the existing profile for the respondent or creates
// an empty one on first sign-in.
func (s *ProfileService) EnsureProfile(ctx context.Context, partyID, respondentID, displayName, email string) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, partyID, respondentID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = model.NewProfile(partyID, respondentID, displayName)
	profile.Email = email
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToHost(partyID, EventGuestJoined, map[string]string{
			"respondentId": respondentID,
			"displayName":  displayName,
		})
	}
	return profile, nil
}

// SaveDraft merges partial answers for a batch into the profile without
// gating on validation. The batch moves to in_progress once it holds at
// least one answer; a complete batch stays complete.
func (s *ProfileService) SaveDraft(ctx context.Context, partyID, respondentID, batchID string, inputs map[string]codec.RawInput) (*model.Profile, error) {
	profile, batch, err := s.loadForBatch(ctx, partyID, respondentID, batchID)
	if err != nil {
		return nil, err
	}

	if err := s.mergeAnswers(ctx, profile, batch, inputs); err != nil {
		return nil, err
	}
	progress.MarkDraft(s.cat, batchID, profile.Answers, profile.Progress)

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	s.notifyProgress(profile)
	return profile, nil
}

// SubmitBatch merges the final answers for a batch and, when every
// required question is answered, marks the batch complete. Re-submitting a
// complete batch is idempotent. On validation failure the merged draft is
// still persisted and the missing question ids are reported.
func (s *ProfileService) SubmitBatch(ctx context.Context, partyID, respondentID, batchID string, inputs map[string]codec.RawInput) (*SubmitOutcome, error) {
	profile, batch, err := s.loadForBatch(ctx, partyID, respondentID, batchID)
	if err != nil {
		return nil, err
	}

	if err := s.mergeAnswers(ctx, profile, batch, inputs); err != nil {
		return nil, err
	}

	result := progress.ValidateBatch(batch, profile.Answers)
	if result.Valid {
		progress.MarkComplete(s.cat, batchID, profile.Progress)
	} else {
		progress.MarkDraft(s.cat, batchID, profile.Answers, profile.Progress)
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("submit batch: %w", err)
	}

	completion := progress.Completion(s.cat, profile.Progress)
	if result.Valid {
		if s.reportCache != nil {
			if err := s.reportCache.Invalidate(ctx, partyID); err != nil {
				log.Printf("report cache invalidate failed for party %s: %v", partyID, err)
			}
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastToHost(partyID, EventBatchCompleted, map[string]interface{}{
				"respondentId": respondentID,
				"batchId":      batchID,
				"completion":   completion,
			})
			// The cached report just went stale; dashboards should refetch.
			s.broadcaster.BroadcastToHost(partyID, EventReportRefresh, map[string]string{
				"partyId": partyID,
			})
		}
	}
	s.notifyProgress(profile)

	return &SubmitOutcome{Profile: profile, Validation: result, Completion: completion}, nil
}

// SelectOption applies one tap on an either_or question and saves the
// resulting draft. The tap token is either an option id or a modifier
// keyword; re-tapping the current selection clears it. Returns the new
// UI-level state for the question.
func (s *ProfileService) SelectOption(ctx context.Context, partyID, respondentID, batchID, questionID, token string) (codec.RawInput, error) {
	profile, batch, err := s.loadForBatch(ctx, partyID, respondentID, batchID)
	if err != nil {
		return codec.RawInput{}, err
	}
	q, ok := batch.Question(questionID)
	if !ok {
		return codec.RawInput{}, ErrUnknownQuestion
	}
	if q.Kind != model.KindEitherOr {
		return codec.RawInput{}, codec.ErrKindMismatch
	}

	c, err := codec.For(q.Kind)
	if err != nil {
		return codec.RawInput{}, err
	}

	var prev model.EitherOrAnswer
	if wire := profile.Answers[questionID]; wire != "" {
		ans, err := c.DecodeWire(wire, q)
		if err != nil {
			return codec.RawInput{}, fmt.Errorf("decode answer for %s: %w", questionID, err)
		}
		eo, ok := ans.(model.EitherOrAnswer)
		if !ok {
			return codec.RawInput{}, codec.ErrKindMismatch
		}
		prev = eo
	}

	next, err := codec.Select(prev, token, q)
	if err != nil {
		return codec.RawInput{}, err
	}

	if next.Empty() {
		delete(profile.Answers, questionID)
	} else {
		profile.Answers[questionID] = c.EncodeWire(next)
	}
	progress.MarkDraft(s.cat, batchID, profile.Answers, profile.Progress)

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return codec.RawInput{}, fmt.Errorf("save selection: %w", err)
	}
	s.notifyProgress(profile)
	return c.Decode(next, q)
}

// Batches returns every batch with the respondent's status and lock state.
func (s *ProfileService) Batches(ctx context.Context, partyID, respondentID string) ([]BatchView, error) {
	profile, err := s.profiles.Get(ctx, partyID, respondentID)
	if err != nil {
		return nil, err
	}
	prog := map[string]model.BatchStatus{}
	if profile != nil {
		prog = profile.Progress
	}

	var views []BatchView
	for _, b := range s.cat.Batches() {
		status := model.BatchNotStarted
		if st, ok := prog[b.ID]; ok {
			status = st
		}
		views = append(views, BatchView{
			Batch:  b,
			Status: status,
			Locked: progress.Locked(s.cat, b.ID, prog),
		})
	}
	return views, nil
}

// Prefill decodes a respondent's stored answers for one batch back into
// UI-level raw inputs for revisiting.
func (s *ProfileService) Prefill(ctx context.Context, partyID, respondentID, batchID string) (map[string]codec.RawInput, error) {
	profile, batch, err := s.loadForBatch(ctx, partyID, respondentID, batchID)
	if err != nil {
		return nil, err
	}

	inputs := make(map[string]codec.RawInput)
	for _, q := range batch.Questions {
		question := q
		wire, ok := profile.Answers[q.ID]
		if !ok || wire == "" {
			continue
		}
		raw, err := codec.DecodeWire(wire, &question)
		if err != nil {
			return nil, fmt.Errorf("prefill %s: %w", q.ID, err)
		}
		inputs[q.ID] = raw
	}
	return inputs, nil
}

// loadForBatch resolves the batch, checks the lock, and loads or creates
// the profile.
func (s *ProfileService) loadForBatch(ctx context.Context, partyID, respondentID, batchID string) (*model.Profile, *model.Batch, error) {
	batch, ok := s.cat.Batch(batchID)
	if !ok {
		return nil, nil, ErrUnknownBatch
	}

	profile, err := s.profiles.Get(ctx, partyID, respondentID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		profile = model.NewProfile(partyID, respondentID, "")
	}
	if profile.Answers == nil {
		profile.Answers = make(map[string]string)
	}
	if profile.Geo == nil {
		profile.Geo = make(map[string]model.GeoPoint)
	}
	if profile.Progress == nil {
		profile.Progress = make(map[string]model.BatchStatus)
	}

	if progress.Locked(s.cat, batchID, profile.Progress) {
		return nil, nil, ErrBatchLocked
	}
	return profile, batch, nil
}

// mergeAnswers encodes each input to its wire value and merges it into the
// profile's flat answer map. Inputs for questions outside the batch are
// stale and ignored. Location answers pick up best-effort coordinates;
// geocoding failure never blocks the save.
func (s *ProfileService) mergeAnswers(ctx context.Context, profile *model.Profile, batch *model.Batch, inputs map[string]codec.RawInput) error {
	for qid, raw := range inputs {
		q, ok := batch.Question(qid)
		if !ok {
			continue
		}

		wire, err := codec.EncodeWire(raw, q)
		if err != nil {
			return fmt.Errorf("encode answer for %s: %w", qid, err)
		}

		if strings.TrimSpace(wire) == "" {
			delete(profile.Answers, qid)
			delete(profile.Geo, qid)
			continue
		}
		previous := profile.Answers[qid]
		profile.Answers[qid] = wire

		if q.Location && wire != previous {
			delete(profile.Geo, qid)
			if s.geocoder != nil {
				point, err := s.geocoder.Geocode(ctx, wire)
				if err != nil {
					log.Printf("geocode failed for %q (question %s): %v", wire, qid, err)
				} else if point != nil {
					profile.Geo[qid] = *point
				}
			}
		}
	}
	return nil
}

func (s *ProfileService) notifyProgress(profile *model.Profile) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToHost(profile.PartyID, EventProgressUpdate, map[string]interface{}{
		"respondentId": profile.RespondentID,
		"completion":   progress.Completion(s.cat, profile.Progress),
		"progress":     profile.Progress,
	})
}
