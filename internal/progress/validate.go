package progress

import (
	"strings"

	"partyline/internal/model"
)

// Result reports whether a batch's required questions are all answered.
// A validation failure is an expected outcome, not an error.
type Result struct {
	Valid              bool     `json:"valid"`
	MissingQuestionIDs []string `json:"missingQuestionIds,omitempty"`
}

// ValidateBatch checks that every required question in the batch has a
// non-empty answer. The check is structural only: content is not judged,
// and answers to questions outside the batch are irrelevant.
func ValidateBatch(batch *model.Batch, answers map[string]string) Result {
	var missing []string
	for _, q := range batch.Questions {
		if !q.Required {
			continue
		}
		if strings.TrimSpace(answers[q.ID]) == "" {
			missing = append(missing, q.ID)
		}
	}
	return Result{Valid: len(missing) == 0, MissingQuestionIDs: missing}
}
