// Package codec converts between UI-level selection state, the typed
// answer union, and the wire strings kept in the response store. One codec
// per question kind; all kind dispatch goes through For.
package codec

import (
	"errors"
	"fmt"

	"partyline/internal/model"
)

var (
	// ErrUnknownOption reports an option id not present in the question.
	// This is a caller contract violation, not user input to tolerate.
	ErrUnknownOption = errors.New("option id not in question catalog")

	// ErrKindMismatch reports an answer value whose type does not match
	// the question kind.
	ErrKindMismatch = errors.New("answer type does not match question kind")

	// ErrMixedSelection reports an either_or value carrying both a base
	// option and a modifier token.
	ErrMixedSelection = errors.New("either_or mixes base option and modifier")

	// ErrWriteInNotAllowed reports a write-in value for a question none of
	// whose options accept one. Same contract violation as ErrUnknownOption.
	ErrWriteInNotAllowed = errors.New("question has no write-in option")
)

// RawInput is the UI-level state of one question: what the respondent has
// currently selected or typed. Exactly the fields relevant to the question
// kind are used.
type RawInput struct {
	Text      string         `json:"text,omitempty"`
	OptionIDs []string       `json:"optionIds,omitempty"`
	WriteIn   string         `json:"writeIn,omitempty"`
	Modifier  model.Modifier `json:"modifier,omitempty"`
	PhotoURL  string         `json:"photoUrl,omitempty"`
}

// Codec converts one question kind between raw input, the typed answer,
// and the stored wire string. Decode(Encode(x)) == x for all valid x.
type Codec interface {
	Kind() model.QuestionKind
	Encode(raw RawInput, q *model.Question) (model.Answer, error)
	Decode(ans model.Answer, q *model.Question) (RawInput, error)
	EncodeWire(ans model.Answer) string
	DecodeWire(value string, q *model.Question) (model.Answer, error)
}

var codecs = map[model.QuestionKind]Codec{
	model.KindShortText:    textCodec{kind: model.KindShortText},
	model.KindDropdown:     textCodec{kind: model.KindDropdown},
	model.KindSingleChoice: choiceCodec{},
	model.KindEitherOr:     eitherOrCodec{},
	model.KindPhotoUpload:  photoCodec{},
}

// For returns the codec for a question kind.
func For(kind model.QuestionKind) (Codec, error) {
	c, ok := codecs[kind]
	if !ok {
		return nil, fmt.Errorf("no codec for question kind %q", kind)
	}
	return c, nil
}

// EncodeWire encodes raw input straight to its wire string using the
// question's kind.
func EncodeWire(raw RawInput, q *model.Question) (string, error) {
	c, err := For(q.Kind)
	if err != nil {
		return "", err
	}
	ans, err := c.Encode(raw, q)
	if err != nil {
		return "", err
	}
	return c.EncodeWire(ans), nil
}

// DecodeWire decodes a stored wire string back to raw input for pre-filling
// a revisited question.
func DecodeWire(value string, q *model.Question) (RawInput, error) {
	c, err := For(q.Kind)
	if err != nil {
		return RawInput{}, err
	}
	ans, err := c.DecodeWire(value, q)
	if err != nil {
		return RawInput{}, err
	}
	return c.Decode(ans, q)
}
