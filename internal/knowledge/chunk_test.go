package knowledge

import (
	"strings"
	"testing"
)

func TestSplitChunksPacksParagraphs(t *testing.T) {
	text := "first paragraph\n\nsecond paragraph\n\nthird paragraph"
	chunks := SplitChunks(text, 40)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %#v", len(chunks), chunks)
	}
	if chunks[0] != "first paragraph\n\nsecond paragraph" {
		t.Fatalf("first chunk = %q", chunks[0])
	}
	if chunks[1] != "third paragraph" {
		t.Fatalf("second chunk = %q", chunks[1])
	}
}

func TestSplitChunksTinyTextYieldsOneChunk(t *testing.T) {
	chunks := SplitChunks("short note", 800)
	if len(chunks) != 1 || chunks[0] != "short note" {
		t.Fatalf("chunks = %#v, want single chunk", chunks)
	}
}

func TestSplitChunksOversizedParagraphKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 100)
	chunks := SplitChunks("intro\n\n"+long, 40)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[1] != long {
		t.Fatalf("long paragraph was split")
	}
}

func TestSplitChunksEmptyText(t *testing.T) {
	if chunks := SplitChunks("   \n\n  ", 800); len(chunks) != 0 {
		t.Fatalf("chunks = %#v, want none", chunks)
	}
}
