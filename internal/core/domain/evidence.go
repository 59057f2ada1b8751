package domain

// EvidenceKind discriminates the two evidence variants.
type EvidenceKind string

const (
	// EvidenceDocument is a scored chunk from the organization's documents.
	EvidenceDocument EvidenceKind = "document"

	// EvidenceWeb is a result from the external web search provider.
	EvidenceWeb EvidenceKind = "web"
)

// EvidenceItem is a normalised union of a document chunk and a web result.
// Document items populate Text, Source and Score; web items populate
// Title, URL and Snippet.
type EvidenceItem struct {
	Kind EvidenceKind `json:"kind"`

	// Document fields.
	Text   string  `json:"text,omitempty"`
	Source string  `json:"source,omitempty"`
	Score  float64 `json:"score,omitempty"`

	// Web fields.
	Title   string `json:"title,omitempty"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// EvidenceBundle is the ordered evidence handed to the language model for
// one query. Document items precede web items.
type EvidenceBundle struct {
	Documents []EvidenceItem
	Web       []EvidenceItem
}

// Items returns all evidence in bundle order: documents first, then web.
func (b *EvidenceBundle) Items() []EvidenceItem {
	items := make([]EvidenceItem, 0, len(b.Documents)+len(b.Web))
	items = append(items, b.Documents...)
	items = append(items, b.Web...)
	return items
}

// Empty reports whether the bundle holds no evidence at all.
func (b *EvidenceBundle) Empty() bool {
	return len(b.Documents) == 0 && len(b.Web) == 0
}
