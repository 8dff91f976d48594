package service

import (
	"context"
	"fmt"
	"log"

	"partyline/internal/aggregate"
	"partyline/internal/cache"
	"partyline/internal/model"
	"partyline/internal/repository"
)

// ReportService builds party reports and exports. Aggregation reads a
// snapshot of all profiles for the party; results go through a short-lived
// redis cache invalidated on batch submission.
type ReportService struct {
	profiles repository.ProfileRepo
	engine   *aggregate.Engine
	reports  cache.ReportCache
}

// NewReportService creates a new report service
func NewReportService(profiles repository.ProfileRepo, engine *aggregate.Engine, reports cache.ReportCache) *ReportService {
	return &ReportService{
		profiles: profiles,
		engine:   engine,
		reports:  reports,
	}
}

// Report returns the aggregated party report, from cache when fresh.
func (s *ReportService) Report(ctx context.Context, partyID string) (*model.PartyReport, error) {
	if s.reports != nil {
		cached, err := s.reports.Get(ctx, partyID)
		if err != nil {
			log.Printf("report cache get failed for party %s: %v", partyID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	profiles, err := s.profiles.ListByParty(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	report := s.engine.Report(partyID, profiles)

	if s.reports != nil {
		if err := s.reports.Set(ctx, report); err != nil {
			log.Printf("report cache set failed for party %s: %v", partyID, err)
		}
	}
	return report, nil
}

// ExportCSV renders every respondent's resolved answers as CSV.
func (s *ReportService) ExportCSV(ctx context.Context, partyID string) (string, error) {
	profiles, err := s.profiles.ListByParty(ctx, partyID)
	if err != nil {
		return "", fmt.Errorf("load profiles: %w", err)
	}
	return s.engine.ExportCSV(profiles)
}
