package knowledge

import "strings"

const defaultChunkChars = 800

// SplitChunks splits text into chunks of at most maxChars characters, packing
// whole paragraphs greedily. A paragraph longer than maxChars becomes its own
// chunk rather than being split mid-sentence. A non-empty text always yields
// at least one chunk.
func SplitChunks(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = defaultChunkChars
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []string
	current := ""
	for _, para := range paragraphs {
		if len(current)+len(para)+2 <= maxChars {
			current = strings.TrimSpace(current + "\n\n" + para)
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		current = para
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	if len(chunks) == 0 && strings.TrimSpace(text) != "" {
		chunks = append(chunks, strings.TrimSpace(text))
	}
	return chunks
}
