package knowledge

import (
	"context"
	"math"
	"sort"
	"sync"
)

// InMemoryIndex is a brute-force vector index for local/dev use and tests.
type InMemoryIndex struct {
	mu     sync.RWMutex
	chunks []Chunk
}

func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{}
}

func (idx *InMemoryIndex) Count(_ context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks), nil
}

func (idx *InMemoryIndex) Add(_ context.Context, chunks []Chunk) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.chunks = append(idx.chunks, chunks...)
	return nil
}

func (idx *InMemoryIndex) Search(_ context.Context, embedding []float32, k int) ([]Snippet, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.chunks) == 0 || k <= 0 {
		return nil, nil
	}

	hits := make([]Snippet, 0, len(idx.chunks))
	for _, c := range idx.chunks {
		hits = append(hits, Snippet{
			Text:     c.Text,
			Source:   c.Source,
			Distance: cosineDistance(embedding, c.Embedding),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })

	if k > len(hits) {
		k = len(hits)
	}
	hits = hits[:k]
	for i := range hits {
		hits[i].Index = i + 1
	}
	return hits, nil
}

func (idx *InMemoryIndex) Close() error { return nil }

func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
