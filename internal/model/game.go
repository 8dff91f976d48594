package model

import "time"

// GameType defines the type of party activity
type GameType string

const (
	GameQuestionnaire GameType = "questionnaire" // Batched about-you questions
	GameSongRequest   GameType = "song_request"  // Guests submit songs for the playlist
	GamePhotoContest  GameType = "photo_contest" // Guests upload photos, host moderates
)

// Game is one configured activity within a party
type Game struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PartyID   string    `json:"partyId" bson:"partyId"`
	Type      GameType  `json:"type" bson:"type"`
	Title     string    `json:"title" bson:"title"`
	Enabled   bool      `json:"enabled" bson:"enabled"`
	Moderated bool      `json:"moderated" bson:"moderated"` // Submissions need host approval before display
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
