package calllog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileSink appends records as JSON lines, one file for customer-chat calls
// and one for copilot calls. A single mutex serializes writes so records from
// concurrent requests never interleave.
type FileSink struct {
	mu  sync.Mutex
	dir string
}

func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create call log directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) Append(_ context.Context, record Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal call record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(s.dir, fileFor(record.UseCase)), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open call log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append call record: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error { return nil }

func fileFor(useCase string) string {
	switch useCase {
	case UseCaseChat, UseCaseChatBaseline:
		return "chatbot_logs.jsonl"
	default:
		return "copilot_logs.jsonl"
	}
}
