package model

import "time"

// Bucket is one row of a frequency table
type Bucket struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"` // Rounded to the nearest integer
}

// GeoCluster groups respondents who resolved to the same exact place
type GeoCluster struct {
	Place           string   `json:"place"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	Count           int      `json:"count"`
	RespondentNames []string `json:"respondentNames"`
}

// QuestionAggregate is the cross-respondent summary of one question.
// Choice kinds fill Buckets, free text fills Texts, and location questions
// additionally fill Places for respondents with coordinates. NoResponses
// distinguishes "nobody answered yet" from a unanimous result.
type QuestionAggregate struct {
	QuestionID    string       `json:"questionId"`
	Prompt        string       `json:"prompt"`
	Kind          QuestionKind `json:"kind"`
	ResponseCount int          `json:"responseCount"`
	NoResponses   bool         `json:"noResponses"`

	Buckets []Bucket     `json:"buckets,omitempty"`
	Texts   []string     `json:"texts,omitempty"`
	Places  []GeoCluster `json:"places,omitempty"`
}

// RespondentSummary is the host's browse-by-person projection
type RespondentSummary struct {
	RespondentID  string                 `json:"respondentId"`
	DisplayName   string                 `json:"displayName"`
	BatchStatuses map[string]BatchStatus `json:"batchStatuses"`
	CompletionPct int                    `json:"completionPct"`
	Answers       map[string]string      `json:"answers"` // question id -> human-readable label
}

// PartyReport is the full aggregation output for one party, recomputed on
// demand from a snapshot of stored profiles. Identical input always yields
// identical output.
type PartyReport struct {
	PartyID         string              `json:"partyId"`
	GeneratedAt     time.Time           `json:"generatedAt"`
	RespondentCount int                 `json:"respondentCount"`
	Questions       []QuestionAggregate `json:"questions"`
	Respondents     []RespondentSummary `json:"respondents"`
}
