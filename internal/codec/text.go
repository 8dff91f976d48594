package codec

import "partyline/internal/model"

// textCodec serves short_text and dropdown: the wire value is the plain
// string itself.
type textCodec struct {
	kind model.QuestionKind
}

func (c textCodec) Kind() model.QuestionKind { return c.kind }

func (c textCodec) Encode(raw RawInput, q *model.Question) (model.Answer, error) {
	if c.kind == model.KindDropdown && len(q.Options) > 0 && raw.Text != "" {
		if _, ok := q.Option(raw.Text); !ok {
			return nil, ErrUnknownOption
		}
	}
	return model.TextAnswer{Text: raw.Text}, nil
}

func (c textCodec) Decode(ans model.Answer, q *model.Question) (RawInput, error) {
	t, ok := ans.(model.TextAnswer)
	if !ok {
		return RawInput{}, ErrKindMismatch
	}
	return RawInput{Text: t.Text}, nil
}

func (c textCodec) EncodeWire(ans model.Answer) string {
	t, ok := ans.(model.TextAnswer)
	if !ok {
		return ""
	}
	return t.Text
}

func (c textCodec) DecodeWire(value string, q *model.Question) (model.Answer, error) {
	return model.TextAnswer{Text: value}, nil
}
