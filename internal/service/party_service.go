package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"partyline/internal/model"
	"partyline/internal/repository"
)

var ErrPartyNotFound = errors.New("party not found")

// PartyService handles party CRUD for hosts and guest sign-in.
type PartyService struct {
	parties  repository.PartyRepo
	authSvc  *AuthService
	profiles *ProfileService
}

// NewPartyService creates a new party service
func NewPartyService(parties repository.PartyRepo, authSvc *AuthService, profiles *ProfileService) *PartyService {
	return &PartyService{
		parties:  parties,
		authSvc:  authSvc,
		profiles: profiles,
	}
}

// Create creates a party with a fresh join code.
func (s *PartyService) Create(ctx context.Context, party *model.Party) (string, error) {
	party.JoinCode = strings.ToUpper(uuid.New().String()[:6])
	if party.Status == "" {
		party.Status = model.PartyStatusDraft
	}
	return s.parties.Create(ctx, party)
}

// GetByID returns one party.
func (s *PartyService) GetByID(ctx context.Context, id string) (*model.Party, error) {
	return s.parties.GetByID(ctx, id)
}

// GetByHostID lists a host's parties.
func (s *PartyService) GetByHostID(ctx context.Context, hostID string) ([]*model.Party, error) {
	return s.parties.GetByHostID(ctx, hostID)
}

// Update replaces a party document.
func (s *PartyService) Update(ctx context.Context, party *model.Party) error {
	return s.parties.Update(ctx, party)
}

// Delete removes a party.
func (s *PartyService) Delete(ctx context.Context, id string) error {
	return s.parties.Delete(ctx, id)
}

// SignInGuest resolves the join code to a party, mints a magic-link token
// and ensures the guest's profile exists. Email delivery of the link is a
// collaborator concern.
func (s *PartyService) SignInGuest(ctx context.Context, req *model.MagicLinkRequest) (*model.MagicLinkResponse, error) {
	party, err := s.parties.GetByJoinCode(ctx, strings.ToUpper(strings.TrimSpace(req.JoinCode)))
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, ErrPartyNotFound
	}

	respondentID := "g_" + uuid.New().String()[:8]
	token, err := s.authSvc.GenerateGuestToken(party.ID, respondentID, req.Email)
	if err != nil {
		return nil, err
	}

	if _, err := s.profiles.EnsureProfile(ctx, party.ID, respondentID, req.DisplayName, req.Email); err != nil {
		return nil, err
	}

	return &model.MagicLinkResponse{Token: token, RespondentID: respondentID}, nil
}
