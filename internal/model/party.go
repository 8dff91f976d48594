package model

import "time"

// PartyStatus is the lifecycle state of a party
type PartyStatus string

const (
	PartyStatusDraft  PartyStatus = "draft"
	PartyStatusOpen   PartyStatus = "open"
	PartyStatusClosed PartyStatus = "closed"
)

// Party is an event created by a host; guests join via a short code
// carried in their magic-link token.
type Party struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	HostID    string      `json:"hostId" bson:"hostId"`
	Name      string      `json:"name" bson:"name"`
	JoinCode  string      `json:"joinCode" bson:"joinCode"`
	Status    PartyStatus `json:"status" bson:"status"`
	StartsAt  time.Time   `json:"startsAt" bson:"startsAt"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}
