package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyline/internal/aggregate"
	"partyline/internal/codec"
	"partyline/internal/model"
)

// memoryReportCache stores the last report per party, like the redis cache
// but without the TTL.
type memoryReportCache struct {
	reports map[string]*model.PartyReport
	gets    int
	sets    int
}

func newMemoryReportCache() *memoryReportCache {
	return &memoryReportCache{reports: make(map[string]*model.PartyReport)}
}

func (c *memoryReportCache) Get(ctx context.Context, partyID string) (*model.PartyReport, error) {
	c.gets++
	return c.reports[partyID], nil
}

func (c *memoryReportCache) Set(ctx context.Context, report *model.PartyReport) error {
	c.sets++
	c.reports[report.PartyID] = report
	return nil
}

func (c *memoryReportCache) Invalidate(ctx context.Context, partyID string) error {
	delete(c.reports, partyID)
	return nil
}

func TestReportComputesAndCaches(t *testing.T) {
	repo := newFakeProfileRepo()
	cat := serviceCatalog(t)
	reportCache := newMemoryReportCache()
	profileSvc := NewProfileService(repo, cat, nil, reportCache)
	reportSvc := NewReportService(repo, aggregate.NewEngine(cat), reportCache)
	ctx := context.Background()

	_, err := profileSvc.SubmitBatch(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname":   {Text: "Mo"},
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)

	report, err := reportSvc.Report(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", report.PartyID)
	assert.Equal(t, 1, report.RespondentCount)
	assert.Equal(t, 1, reportCache.sets)

	// Second read is served from cache without recomputing.
	again, err := reportSvc.Report(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, report, again)
	assert.Equal(t, 1, reportCache.sets)
}

func TestSubmitInvalidatesCachedReport(t *testing.T) {
	repo := newFakeProfileRepo()
	cat := serviceCatalog(t)
	reportCache := newMemoryReportCache()
	profileSvc := NewProfileService(repo, cat, nil, reportCache)
	reportSvc := NewReportService(repo, aggregate.NewEngine(cat), reportCache)
	ctx := context.Background()

	_, err := reportSvc.Report(ctx, "p1")
	require.NoError(t, err)

	_, err = profileSvc.SubmitBatch(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname":   {Text: "Mo"},
		"birth_city": {Text: "Lahore"},
	})
	require.NoError(t, err)

	report, err := reportSvc.Report(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.RespondentCount)
}

func TestReportServiceExportCSV(t *testing.T) {
	repo := newFakeProfileRepo()
	cat := serviceCatalog(t)
	profileSvc := NewProfileService(repo, cat, nil, nil)
	reportSvc := NewReportService(repo, aggregate.NewEngine(cat), nil)
	ctx := context.Background()

	_, err := profileSvc.SaveDraft(ctx, "p1", "g1", "basics", map[string]codec.RawInput{
		"nickname": {Text: "Mo"},
	})
	require.NoError(t, err)

	out, err := reportSvc.ExportCSV(ctx, "p1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "nickname")
	assert.Contains(t, lines[1], "Mo")
}
