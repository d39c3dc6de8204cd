package knowledge

import (
	"context"
	"fmt"
	"log"
)

// Indexer embeds KB documents into the vector index at startup.
type Indexer struct {
	index    Index
	embedder Embedder
}

func NewIndexer(index Index, embedder Embedder) *Indexer {
	return &Indexer{index: index, embedder: embedder}
}

// EnsureIndexed chunks and embeds every document under dir, unless the index
// already holds vectors. A non-empty index is treated as fully indexed; there
// is deliberately no staleness check or incremental re-indexing, so changed KB
// files require wiping the index to take effect.
func (ix *Indexer) EnsureIndexed(ctx context.Context, dir string) error {
	n, err := ix.index.Count(ctx)
	if err == nil && n > 0 {
		log.Printf("knowledge index already holds %d chunks, skipping indexing", n)
		return nil
	}

	docs := LoadDir(dir)
	if len(docs) == 0 {
		log.Printf("no knowledge base documents found under %s", dir)
		return nil
	}

	var chunks []Chunk
	for _, doc := range docs {
		for i, text := range SplitChunks(doc.Text, defaultChunkChars) {
			emb, err := ix.embedder.Embed(ctx, text)
			if err != nil {
				return fmt.Errorf("embed chunk %s::chunk%d: %w", doc.ID, i, err)
			}
			chunks = append(chunks, Chunk{
				ID:        fmt.Sprintf("%s::chunk%d", doc.ID, i),
				Source:    doc.Path,
				Text:      text,
				Embedding: emb,
			})
		}
	}

	if err := ix.index.Add(ctx, chunks); err != nil {
		return fmt.Errorf("index knowledge base: %w", err)
	}
	log.Printf("indexed %d chunks from %d knowledge base documents", len(chunks), len(docs))
	return nil
}
