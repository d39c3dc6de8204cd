package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type staticEmbedder struct {
	vec []float32
	err error
}

func (e staticEmbedder) Embed(context.Context, string) ([]float32, error) {
	return e.vec, e.err
}

func TestRetrieverReturnsOrderedHits(t *testing.T) {
	idx := seedIndex(t)
	r := NewRetriever(idx, staticEmbedder{vec: []float32{1, 0, 0}})

	hits := r.Retrieve(context.Background(), "anything", 2)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Text != "alpha" {
		t.Fatalf("best hit = %q, want alpha", hits[0].Text)
	}
}

func TestRetrieverEmptyIndexIsEmptyResult(t *testing.T) {
	r := NewRetriever(NewInMemoryIndex(), staticEmbedder{vec: []float32{1, 0, 0}})
	if hits := r.Retrieve(context.Background(), "anything", 3); len(hits) != 0 {
		t.Fatalf("got %d hits from empty index", len(hits))
	}
}

func TestRetrieverEmbedFailureIsEmptyResult(t *testing.T) {
	idx := seedIndex(t)
	r := NewRetriever(idx, staticEmbedder{err: errors.New("backend down")})
	if hits := r.Retrieve(context.Background(), "anything", 3); len(hits) != 0 {
		t.Fatalf("got %d hits despite embed failure", len(hits))
	}
}

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) Embed(context.Context, string) ([]float32, error) {
	e.calls++
	return []float32{float32(e.calls), 1}, nil
}

func TestEnsureIndexedSkipsNonEmptyIndex(t *testing.T) {
	idx := seedIndex(t)
	emb := &countingEmbedder{}
	ix := NewIndexer(idx, emb)

	dir := t.TempDir()
	writeKBFile(t, dir, "returns.md", "Returns are accepted within 30 days.")

	if err := ix.EnsureIndexed(context.Background(), dir); err != nil {
		t.Fatalf("EnsureIndexed failed: %v", err)
	}
	if emb.calls != 0 {
		t.Fatalf("embedder called %d times on a non-empty index", emb.calls)
	}
}

func TestEnsureIndexedIndexesDocuments(t *testing.T) {
	idx := NewInMemoryIndex()
	emb := &countingEmbedder{}
	ix := NewIndexer(idx, emb)

	dir := t.TempDir()
	writeKBFile(t, dir, "returns.md", "Returns are accepted within 30 days.")
	writeKBFile(t, dir, "shipping.txt", "We ship worldwide.")
	writeKBFile(t, dir, "ignored.json", `{"not": "kb"}`)

	if err := ix.EnsureIndexed(context.Background(), dir); err != nil {
		t.Fatalf("EnsureIndexed failed: %v", err)
	}
	n, err := idx.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("indexed %d chunks, want 2 (json file must be skipped)", n)
	}
}

func writeKBFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}
