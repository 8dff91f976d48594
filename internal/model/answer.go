package model

import "strings"

// Modifier is an either_or token that replaces a base option selection
type Modifier string

const (
	ModifierNone     Modifier = ""
	ModifierBoth     Modifier = "BOTH"
	ModifierNeither  Modifier = "NEITHER"
	ModifierDontKnow Modifier = "DONT_KNOW"
)

// Label returns the display label a modifier is tallied under.
func (m Modifier) Label() string {
	switch m {
	case ModifierBoth:
		return "Both!"
	case ModifierNeither:
		return "Neither"
	case ModifierDontKnow:
		return "Don't know"
	default:
		return string(m)
	}
}

// Answer is the stored value for one question for one respondent.
// It is a closed union: exactly one concrete type per question kind
// (TextAnswer serves both short_text and dropdown).
type Answer interface {
	// Empty reports whether the answer carries no value; empty answers
	// never satisfy a required question and are excluded from aggregation.
	Empty() bool

	isAnswer()
}

// TextAnswer holds a short_text or dropdown value
type TextAnswer struct {
	Text string `json:"text"`
}

func (a TextAnswer) Empty() bool { return strings.TrimSpace(a.Text) == "" }
func (a TextAnswer) isAnswer()   {}

// ChoiceAnswer holds a single_choice value: either a catalog option id or
// a free-text write-in, never both.
type ChoiceAnswer struct {
	OptionID string `json:"optionId,omitempty"`
	WriteIn  string `json:"writeIn,omitempty"`
}

func (a ChoiceAnswer) Empty() bool     { return a.OptionID == "" && strings.TrimSpace(a.WriteIn) == "" }
func (a ChoiceAnswer) IsWriteIn() bool { return a.WriteIn != "" }
func (a ChoiceAnswer) isAnswer()       {}

// EitherOrAnswer holds an either_or selection: base option ids, or a
// single modifier token, never both at once.
type EitherOrAnswer struct {
	OptionIDs []string `json:"optionIds,omitempty"`
	Modifier  Modifier `json:"modifier,omitempty"`
}

func (a EitherOrAnswer) Empty() bool { return len(a.OptionIDs) == 0 && a.Modifier == ModifierNone }
func (a EitherOrAnswer) isAnswer()   {}

// PhotoAnswer holds a photo_upload reference; the core never sees blob bytes
type PhotoAnswer struct {
	URL string `json:"url"`
}

func (a PhotoAnswer) Empty() bool { return a.URL == "" }
func (a PhotoAnswer) isAnswer()   {}
