// Package progress implements the per-respondent batch progression rules:
// sequential unlocking, status transitions, and completion percentage.
package progress

import (
	"math"

	"partyline/internal/catalog"
	"partyline/internal/model"
)

// Locked reports whether a batch is still inaccessible: true iff any batch
// ordered before it is not complete. The first batch is never locked, and
// unknown batch ids are never locked. Unknown ids in the progress map are
// ignored.
func Locked(cat *catalog.Catalog, batchID string, prog map[string]model.BatchStatus) bool {
	idx := cat.BatchIndex(batchID)
	if idx <= 0 {
		return false
	}
	batches := cat.Batches()
	for i := 0; i < idx; i++ {
		if prog[batches[i].ID] != model.BatchComplete {
			return true
		}
	}
	return false
}

// Completion returns the overall completion percentage:
// round(100 * complete / total). Extra ids in the progress map do not count.
func Completion(cat *catalog.Catalog, prog map[string]model.BatchStatus) int {
	total := cat.BatchCount()
	if total == 0 {
		return 0
	}
	complete := 0
	for _, b := range cat.Batches() {
		if prog[b.ID] == model.BatchComplete {
			complete++
		}
	}
	return int(math.Round(100 * float64(complete) / float64(total)))
}

// NextBatch returns the first batch in order that is not complete, or nil
// when every batch is done.
func NextBatch(cat *catalog.Catalog, prog map[string]model.BatchStatus) *model.Batch {
	for _, b := range cat.Batches() {
		if prog[b.ID] != model.BatchComplete {
			batch := b
			return &batch
		}
	}
	return nil
}

// MarkDraft records a draft save: not_started moves to in_progress when the
// batch has at least one recorded answer; complete stays complete.
func MarkDraft(cat *catalog.Catalog, batchID string, answers map[string]string, prog map[string]model.BatchStatus) {
	batch, ok := cat.Batch(batchID)
	if !ok {
		return
	}
	if prog[batchID] == model.BatchComplete {
		return
	}
	for _, q := range batch.Questions {
		if answers[q.ID] != "" {
			prog[batchID] = model.BatchInProgress
			return
		}
	}
	if _, recorded := prog[batchID]; !recorded {
		prog[batchID] = model.BatchNotStarted
	}
}

// MarkComplete records a successful batch submission. Re-submitting a
// complete batch is a no-op.
func MarkComplete(cat *catalog.Catalog, batchID string, prog map[string]model.BatchStatus) {
	if _, ok := cat.Batch(batchID); !ok {
		return
	}
	prog[batchID] = model.BatchComplete
}
