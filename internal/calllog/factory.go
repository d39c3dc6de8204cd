package calllog

import "strings"

// NewSink creates a sqlite-backed sink when a database path is configured,
// otherwise a JSONL file sink under dir.
func NewSink(dir, dbPath string) (Sink, error) {
	if strings.TrimSpace(dbPath) != "" {
		return NewSQLiteSink(dbPath)
	}
	return NewFileSink(dir)
}
