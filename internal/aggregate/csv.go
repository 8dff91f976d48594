package aggregate

import (
	"encoding/csv"
	"fmt"
	"strings"

	"partyline/internal/model"
	"partyline/internal/progress"
)

// ExportCSV renders all profiles as CSV: one row per respondent, one
// column per catalog question (catalog order) with answers resolved to
// their human-readable labels, then one status column per batch and the
// completion percentage. Quoting follows RFC 4180 via encoding/csv.
func (e *Engine) ExportCSV(profiles []*model.Profile) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	questions := e.cat.Questions()
	batches := e.cat.Batches()

	header := []string{"respondent_id", "display_name"}
	for _, q := range questions {
		header = append(header, q.ID)
	}
	for _, b := range batches {
		header = append(header, "batch_"+b.ID)
	}
	header = append(header, "completion_pct")
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range profiles {
		row := []string{p.RespondentID, p.DisplayName}
		for _, q := range questions {
			question := q
			wire := strings.TrimSpace(p.Answers[q.ID])
			if wire == "" {
				row = append(row, "")
				continue
			}
			row = append(row, ResolveLabel(wire, &question))
		}
		for _, b := range batches {
			row = append(row, string(p.BatchStatus(b.ID)))
		}
		row = append(row, fmt.Sprintf("%d", progress.Completion(e.cat, p.Progress)))
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}
