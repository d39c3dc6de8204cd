package knowledge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresIndex stores KB chunk vectors in PostgreSQL with the pgvector
// extension.
type PostgresIndex struct {
	pool *pgxpool.Pool
	dim  int
}

func NewPostgresIndex(ctx context.Context, databaseURL string, dim int) (*PostgresIndex, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool, dim); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresIndex{pool: pool, dim: dim}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool, dim int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector;`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS kb_chunks (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`, dim),
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (idx *PostgresIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := idx.pool.QueryRow(ctx, `SELECT count(*) FROM kb_chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count kb chunks: %w", err)
	}
	return n, nil
}

func (idx *PostgresIndex) Add(ctx context.Context, chunks []Chunk) error {
	for _, c := range chunks {
		_, err := idx.pool.Exec(ctx,
			`INSERT INTO kb_chunks (id, source, content, embedding)
			 VALUES ($1, $2, $3, $4::vector)
			 ON CONFLICT (id) DO NOTHING`,
			c.ID,
			c.Source,
			c.Text,
			vectorLiteral(c.Embedding),
		)
		if err != nil {
			return fmt.Errorf("insert kb chunk %s: %w", c.ID, err)
		}
	}
	return nil
}

func (idx *PostgresIndex) Search(ctx context.Context, embedding []float32, k int) ([]Snippet, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := idx.pool.Query(ctx,
		`SELECT content, source, embedding <=> $1::vector AS distance
		 FROM kb_chunks
		 ORDER BY distance
		 LIMIT $2`,
		vectorLiteral(embedding),
		k,
	)
	if err != nil {
		return nil, fmt.Errorf("query kb chunks: %w", err)
	}
	defer rows.Close()

	hits := make([]Snippet, 0, k)
	for rows.Next() {
		var s Snippet
		if err := rows.Scan(&s.Text, &s.Source, &s.Distance); err != nil {
			return nil, fmt.Errorf("scan kb chunk row: %w", err)
		}
		s.Index = len(hits) + 1
		hits = append(hits, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kb chunk rows: %w", err)
	}
	return hits, nil
}

func (idx *PostgresIndex) Close() error {
	idx.pool.Close()
	return nil
}

// vectorLiteral renders a float slice in pgvector's input format, e.g. [1,2,3].
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
