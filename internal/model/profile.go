package model

import "time"

// BatchStatus tracks a respondent's progress through one batch
type BatchStatus string

const (
	BatchNotStarted BatchStatus = "not_started"
	BatchInProgress BatchStatus = "in_progress"
	BatchComplete   BatchStatus = "complete"
)

// GeoPoint is a geocoded place attached to a location answer
type GeoPoint struct {
	Place string  `json:"place" bson:"place"` // Resolved display name
	Lat   float64 `json:"lat" bson:"lat"`
	Lng   float64 `json:"lng" bson:"lng"`
}

// Profile is one respondent's record for one party: the flat merged answer
// map plus per-batch progress. Answers hold wire-encoded values keyed by
// question id; Geo holds best-effort coordinates for location answers.
type Profile struct {
	ID           string                 `json:"id" bson:"_id,omitempty"`
	PartyID      string                 `json:"partyId" bson:"partyId"`
	RespondentID string                 `json:"respondentId" bson:"respondentId"`
	DisplayName  string                 `json:"displayName" bson:"displayName"`
	Email        string                 `json:"email,omitempty" bson:"email,omitempty"`
	Answers      map[string]string      `json:"answers" bson:"answers"`
	Geo          map[string]GeoPoint    `json:"geo,omitempty" bson:"geo,omitempty"`
	Progress     map[string]BatchStatus `json:"progress" bson:"progress"`
	CreatedAt    time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt" bson:"updatedAt"`
}

// NewProfile creates an empty profile for a (party, respondent) pair.
func NewProfile(partyID, respondentID, displayName string) *Profile {
	return &Profile{
		PartyID:      partyID,
		RespondentID: respondentID,
		DisplayName:  displayName,
		Answers:      make(map[string]string),
		Geo:          make(map[string]GeoPoint),
		Progress:     make(map[string]BatchStatus),
	}
}

// BatchStatus returns the recorded status for a batch, defaulting to
// not_started for unknown ids.
func (p *Profile) BatchStatus(batchID string) BatchStatus {
	if s, ok := p.Progress[batchID]; ok {
		return s
	}
	return BatchNotStarted
}
