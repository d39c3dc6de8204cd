package knowledge

import (
	"context"
	"log"
)

// Retriever answers nearest-neighbor queries over the KB index. It never
// surfaces an error to the caller: an empty index, an embedding failure or a
// search failure all come back as an empty snippet list, which downstream
// prompt composition treats as "no relevant context".
type Retriever struct {
	index    Index
	embedder Embedder
}

func NewRetriever(index Index, embedder Embedder) *Retriever {
	return &Retriever{index: index, embedder: embedder}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int) []Snippet {
	n, err := r.index.Count(ctx)
	if err != nil || n == 0 {
		return nil
	}

	emb, err := r.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("retrieval embedding failed, continuing without context: %v", err)
		return nil
	}

	hits, err := r.index.Search(ctx, emb, k)
	if err != nil {
		log.Printf("knowledge search failed, continuing without context: %v", err)
		return nil
	}
	return hits
}
