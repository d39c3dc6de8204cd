package llm

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

const mockEmbeddingDim = 64

// MockClient provides deterministic local completions and embeddings when no
// real backend is configured.
type MockClient struct {
	dim int
}

func NewMockClient(dim int) *MockClient {
	if dim <= 0 {
		dim = mockEmbeddingDim
	}
	return &MockClient{dim: dim}
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" && !strings.HasSuffix(l, ":") {
			last = l
			break
		}
	}
	if last == "" {
		return "I am not sure, please contact a human agent.", nil
	}
	return fmt.Sprintf("(mock reply to: %s)", last), nil
}

// Embed hashes overlapping trigrams into a fixed-size vector. Not a real
// embedding, but stable across calls and similar for similar text, which is
// enough for local retrieval to behave sensibly.
func (m *MockClient) Embed(_ context.Context, text string) ([]float32, error) {
	out := make([]float32, m.dim)
	s := strings.ToLower(text)
	for i := 0; i+3 <= len(s); i++ {
		h := fnv.New32a()
		_, _ = h.Write([]byte(s[i : i+3]))
		out[h.Sum32()%uint32(m.dim)]++
	}
	return out, nil
}
