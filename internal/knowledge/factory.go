package knowledge

import (
	"context"
	"strings"
)

// NewIndex creates a postgres-backed index when configured, otherwise in-memory.
func NewIndex(ctx context.Context, databaseURL string, dim int) (Index, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewInMemoryIndex(), nil
	}
	return NewPostgresIndex(ctx, databaseURL, dim)
}
