package codec

import (
	"strings"

	"partyline/internal/model"
)

// eitherOrCodec serves either_or: base option ids or a single modifier
// token, serialized as an ordered comma-joined list. A stored value never
// mixes base options and modifiers.
type eitherOrCodec struct{}

func (eitherOrCodec) Kind() model.QuestionKind { return model.KindEitherOr }

func (eitherOrCodec) Encode(raw RawInput, q *model.Question) (model.Answer, error) {
	if raw.Modifier != model.ModifierNone {
		if len(raw.OptionIDs) > 0 {
			return nil, ErrMixedSelection
		}
		if !modifierAllowed(raw.Modifier, q) {
			return nil, ErrUnknownOption
		}
		return model.EitherOrAnswer{Modifier: raw.Modifier}, nil
	}
	ids := canonicalOptionOrder(raw.OptionIDs, q)
	for _, id := range ids {
		if _, ok := q.Option(id); !ok {
			return nil, ErrUnknownOption
		}
	}
	if len(ids) > 1 && !q.Flags.AllowBoth {
		// Without allowBoth a second selection replaces the first; a raw
		// state carrying two options is a caller bug here.
		return nil, ErrMixedSelection
	}
	return model.EitherOrAnswer{OptionIDs: ids}, nil
}

func (eitherOrCodec) Decode(ans model.Answer, q *model.Question) (RawInput, error) {
	e, ok := ans.(model.EitherOrAnswer)
	if !ok {
		return RawInput{}, ErrKindMismatch
	}
	if e.Modifier != model.ModifierNone {
		return RawInput{Modifier: e.Modifier}, nil
	}
	return RawInput{OptionIDs: canonicalOptionOrder(e.OptionIDs, q)}, nil
}

func (eitherOrCodec) EncodeWire(ans model.Answer) string {
	e, ok := ans.(model.EitherOrAnswer)
	if !ok {
		return ""
	}
	if e.Modifier != model.ModifierNone {
		return string(e.Modifier)
	}
	return strings.Join(e.OptionIDs, ",")
}

func (eitherOrCodec) DecodeWire(value string, q *model.Question) (model.Answer, error) {
	if value == "" {
		return model.EitherOrAnswer{}, nil
	}
	if m := model.Modifier(value); m == model.ModifierBoth || m == model.ModifierNeither || m == model.ModifierDontKnow {
		return model.EitherOrAnswer{Modifier: m}, nil
	}
	var ids []string
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return model.EitherOrAnswer{OptionIDs: canonicalOptionOrder(ids, q)}, nil
}

// Select applies one tap to an either_or selection and returns the next
// state. Picking a modifier clears base options and vice versa; a second
// base option replaces the first unless allowBoth; tapping the current
// selection again clears it.
func Select(prev model.EitherOrAnswer, token string, q *model.Question) (model.EitherOrAnswer, error) {
	if m := model.Modifier(token); m == model.ModifierBoth || m == model.ModifierNeither || m == model.ModifierDontKnow {
		if !modifierAllowed(m, q) {
			return prev, ErrUnknownOption
		}
		if prev.Modifier == m {
			return model.EitherOrAnswer{}, nil
		}
		return model.EitherOrAnswer{Modifier: m}, nil
	}

	if _, ok := q.Option(token); !ok {
		return prev, ErrUnknownOption
	}
	for i, id := range prev.OptionIDs {
		if id == token {
			next := append([]string{}, prev.OptionIDs[:i]...)
			next = append(next, prev.OptionIDs[i+1:]...)
			return model.EitherOrAnswer{OptionIDs: next}, nil
		}
	}
	if q.Flags.AllowBoth {
		ids := canonicalOptionOrder(append(append([]string{}, prev.OptionIDs...), token), q)
		return model.EitherOrAnswer{OptionIDs: ids}, nil
	}
	return model.EitherOrAnswer{OptionIDs: []string{token}}, nil
}

func modifierAllowed(m model.Modifier, q *model.Question) bool {
	switch m {
	case model.ModifierBoth:
		return q.Flags.AllowBoth
	case model.ModifierNeither:
		return q.Flags.AllowNeither
	case model.ModifierDontKnow:
		return q.Flags.AllowDontKnow
	default:
		return false
	}
}

// canonicalOptionOrder sorts selected ids into catalog option order and
// drops duplicates, so wire values are stable regardless of tap order.
func canonicalOptionOrder(ids []string, q *model.Question) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	var out []string
	for _, opt := range q.Options {
		if seen[opt.ID] {
			out = append(out, opt.ID)
			delete(seen, opt.ID)
		}
	}
	// Ids not in the catalog keep their original order; Encode rejects them.
	for _, id := range ids {
		if seen[id] {
			out = append(out, id)
			delete(seen, id)
		}
	}
	return out
}
