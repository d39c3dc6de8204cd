package knowledge

import "context"

// Document is one knowledge-base file loaded from disk.
type Document struct {
	ID   string
	Path string
	Text string
}

// Chunk is a piece of a document prepared for vector indexing.
type Chunk struct {
	ID        string
	Source    string
	Text      string
	Embedding []float32
}

// Snippet is a single retrieval hit. Distance is the vector distance to the
// query (lower is more similar); Index is the snippet's 1-based position in
// the result list, in the order the index returned it.
type Snippet struct {
	Text     string  `json:"text"`
	Source   string  `json:"source"`
	Distance float64 `json:"distance"`
	Index    int     `json:"index"`
}

// Index stores chunk vectors and answers nearest-neighbor queries.
type Index interface {
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, chunks []Chunk) error
	Search(ctx context.Context, embedding []float32, k int) ([]Snippet, error)
	Close() error
}

// Embedder maps text into the index's vector space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
