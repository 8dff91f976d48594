package model

// QuestionKind defines the type of question
type QuestionKind string

const (
	KindEitherOr     QuestionKind = "either_or"     // Two primary options plus optional modifier tokens
	KindSingleChoice QuestionKind = "single_choice" // One option, possibly a free-text write-in
	KindDropdown     QuestionKind = "dropdown"      // One value from a fixed list
	KindShortText    QuestionKind = "short_text"    // Free text
	KindPhotoUpload  QuestionKind = "photo_upload"  // Blob reference from the file store
)

// Option is one selectable choice of a question
type Option struct {
	ID      string `json:"id" bson:"id"`
	Label   string `json:"label" bson:"label"`
	WriteIn bool   `json:"writeIn,omitempty" bson:"writeIn,omitempty"` // Selecting it substitutes a free-text answer
}

// EitherOrFlags switch which modifier tokens an either_or question accepts
type EitherOrFlags struct {
	AllowBoth     bool `json:"allowBoth,omitempty" bson:"allowBoth,omitempty"`
	AllowNeither  bool `json:"allowNeither,omitempty" bson:"allowNeither,omitempty"`
	AllowDontKnow bool `json:"allowDontKnow,omitempty" bson:"allowDontKnow,omitempty"`
}

// Question is one item a respondent answers. IDs are unique across the
// whole catalog: answers from every batch land in one flat map.
type Question struct {
	ID       string        `json:"id" bson:"id"`
	Kind     QuestionKind  `json:"kind" bson:"kind"`
	Prompt   string        `json:"prompt" bson:"prompt"`
	Required bool          `json:"required" bson:"required"`
	Options  []Option      `json:"options,omitempty" bson:"options,omitempty"`
	Flags    EitherOrFlags `json:"flags,omitempty" bson:"flags,omitempty"`

	// Location marks a question whose answer is a place name resolvable
	// to coordinates for the map view.
	Location bool `json:"location,omitempty" bson:"location,omitempty"`

	// OrderedOptions keeps the catalog option order in aggregation
	// instead of sorting buckets by count (e.g. birth month).
	OrderedOptions bool `json:"orderedOptions,omitempty" bson:"orderedOptions,omitempty"`
}

// Option returns the option with the given id, if present.
func (q *Question) Option(id string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// Batch is an ordered group of questions unlocked as a unit
type Batch struct {
	ID        string     `json:"id" bson:"id"`
	Title     string     `json:"title" bson:"title"`
	Questions []Question `json:"questions" bson:"questions"`
}

// Question returns the batch question with the given id, if present.
func (b *Batch) Question(id string) (*Question, bool) {
	for i := range b.Questions {
		if b.Questions[i].ID == id {
			return &b.Questions[i], true
		}
	}
	return nil, false
}
