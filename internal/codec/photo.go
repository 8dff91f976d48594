package codec

import "partyline/internal/model"

// photoCodec serves photo_upload: the wire value is the file store URL
// returned by the uploader; a non-empty value is the "has photo" sentinel.
type photoCodec struct{}

func (photoCodec) Kind() model.QuestionKind { return model.KindPhotoUpload }

func (photoCodec) Encode(raw RawInput, q *model.Question) (model.Answer, error) {
	return model.PhotoAnswer{URL: raw.PhotoURL}, nil
}

func (photoCodec) Decode(ans model.Answer, q *model.Question) (RawInput, error) {
	p, ok := ans.(model.PhotoAnswer)
	if !ok {
		return RawInput{}, ErrKindMismatch
	}
	return RawInput{PhotoURL: p.URL}, nil
}

func (photoCodec) EncodeWire(ans model.Answer) string {
	p, ok := ans.(model.PhotoAnswer)
	if !ok {
		return ""
	}
	return p.URL
}

func (photoCodec) DecodeWire(value string, q *model.Question) (model.Answer, error) {
	return model.PhotoAnswer{URL: value}, nil
}
