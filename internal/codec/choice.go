package codec

import (
	"strings"

	"partyline/internal/model"
)

// writeInPrefix tags a stored single_choice value as free text rather than
// an option id. Kept for byte-compatibility with existing stored profiles.
const writeInPrefix = "OTHER::"

// choiceCodec serves single_choice: one catalog option, or a free-text
// write-in when the chosen option allows it.
type choiceCodec struct{}

func (choiceCodec) Kind() model.QuestionKind { return model.KindSingleChoice }

func (choiceCodec) Encode(raw RawInput, q *model.Question) (model.Answer, error) {
	if raw.WriteIn != "" {
		if !hasWriteInOption(q) {
			return nil, ErrWriteInNotAllowed
		}
		return model.ChoiceAnswer{WriteIn: raw.WriteIn}, nil
	}
	if len(raw.OptionIDs) == 0 {
		return model.ChoiceAnswer{}, nil
	}
	id := raw.OptionIDs[0]
	if _, ok := q.Option(id); !ok {
		return nil, ErrUnknownOption
	}
	return model.ChoiceAnswer{OptionID: id}, nil
}

func hasWriteInOption(q *model.Question) bool {
	for i := range q.Options {
		if q.Options[i].WriteIn {
			return true
		}
	}
	return false
}

func (choiceCodec) Decode(ans model.Answer, q *model.Question) (RawInput, error) {
	c, ok := ans.(model.ChoiceAnswer)
	if !ok {
		return RawInput{}, ErrKindMismatch
	}
	if c.IsWriteIn() {
		return RawInput{WriteIn: c.WriteIn}, nil
	}
	if c.OptionID == "" {
		return RawInput{}, nil
	}
	return RawInput{OptionIDs: []string{c.OptionID}}, nil
}

func (choiceCodec) EncodeWire(ans model.Answer) string {
	c, ok := ans.(model.ChoiceAnswer)
	if !ok {
		return ""
	}
	if c.IsWriteIn() {
		return writeInPrefix + c.WriteIn
	}
	return c.OptionID
}

func (choiceCodec) DecodeWire(value string, q *model.Question) (model.Answer, error) {
	if text, ok := strings.CutPrefix(value, writeInPrefix); ok {
		return model.ChoiceAnswer{WriteIn: text}, nil
	}
	return model.ChoiceAnswer{OptionID: value}, nil
}
