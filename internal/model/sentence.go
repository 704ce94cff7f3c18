package model

// Sentence is an immutable unit of source text supplied by the
// text-segmentation collaborator. The engine never mutates it.
type Sentence struct {
	ID            string `json:"sentence_id"`           // Stable identifier
	Text          string `json:"text"`                  // Sentence text
	WorkID        string `json:"work_id,omitempty"`     // Source work
	AuthorID      string `json:"author_id,omitempty"`   // Source author
	Order         int    `json:"order,omitempty"`       // Ordinal position within the work
	ContextBefore string `json:"context_before,omitempty"` // Up to two preceding sentences
	ContextAfter  string `json:"context_after,omitempty"`  // Up to two following sentences
}
