package service

import (
	"context"
	"errors"

	"partyline/internal/model"
	"partyline/internal/repository"
)

var ErrGameNotFound = errors.New("game not found")

// GameService handles CRUD and moderation toggles for party games.
type GameService struct {
	games       repository.GameRepo
	broadcaster Broadcaster
}

// NewGameService creates a new game service
func NewGameService(games repository.GameRepo) *GameService {
	return &GameService{games: games}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create creates a game for a party.
func (s *GameService) Create(ctx context.Context, game *model.Game) (string, error) {
	return s.games.Create(ctx, game)
}

// GetByPartyID lists a party's games.
func (s *GameService) GetByPartyID(ctx context.Context, partyID string) ([]*model.Game, error) {
	return s.games.GetByPartyID(ctx, partyID)
}

// SetEnabled toggles whether guests can see and play a game.
func (s *GameService) SetEnabled(ctx context.Context, id string, enabled bool) (*model.Game, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	game.Enabled = enabled
	if err := s.games.Update(ctx, game); err != nil {
		return nil, err
	}
	s.notifyToggled(game)
	return game, nil
}

// SetModerated toggles host approval for a game's submissions.
func (s *GameService) SetModerated(ctx context.Context, id string, moderated bool) (*model.Game, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	game.Moderated = moderated
	if err := s.games.Update(ctx, game); err != nil {
		return nil, err
	}
	s.notifyToggled(game)
	return game, nil
}

// Delete removes a game.
func (s *GameService) Delete(ctx context.Context, id string) error {
	return s.games.Delete(ctx, id)
}

func (s *GameService) notifyToggled(game *model.Game) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToAllGuests(game.PartyID, EventGameToggled, map[string]interface{}{
		"gameId":    game.ID,
		"type":      game.Type,
		"enabled":   game.Enabled,
		"moderated": game.Moderated,
	})
}
