package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/psyquest/internal/catalog"
	"github.com/abhisek/psyquest/internal/quiz"
)

const (
	testsTable   = "tests"
	importsTable = "catalog_imports"
)

// Import records one catalog import.
type Import struct {
	ID         int
	Source     string
	TestCount  int
	ImportedAt time.Time
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// ImportTests replaces the stored catalog with tests in a single transaction
// and records the import. Declared order is kept in the position column.
func (s *Store) ImportTests(ctx context.Context, source string, tests []*quiz.Test) (*Import, error) {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}

	imp, err := importTests(ctx, tx, source, tests)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return imp, nil
}

func importTests(ctx context.Context, tx dialect.Tx, source string, tests []*quiz.Test) (*Import, error) {
	query, args := builder().Delete(testsTable).Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("clear tests: %w", err)
	}

	for i, t := range tests {
		doc, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("marshal test %q: %w", t.ID, err)
		}
		query, args := builder().Insert(testsTable).
			Columns("id", "position", "doc").
			Values(t.ID, i, string(doc)).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return nil, fmt.Errorf("insert test %q: %w", t.ID, err)
		}
	}

	imp := &Import{
		Source:     source,
		TestCount:  len(tests),
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}
	query, args = builder().Insert(importsTable).
		Columns("source", "test_count", "imported_at").
		Values(imp.Source, imp.TestCount, imp.ImportedAt.Unix()).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("record import: %w", err)
	}
	return imp, nil
}

// LoadTests returns the stored tests in declared order.
func (s *Store) LoadTests(ctx context.Context) ([]*quiz.Test, error) {
	query, args := builder().
		Select("id", "doc").
		From(entsql.Table(testsTable)).
		OrderBy(entsql.Asc("position")).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query tests: %w", err)
	}
	defer rows.Close()

	var tests []*quiz.Test
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scan test: %w", err)
		}
		var t quiz.Test
		if err := json.Unmarshal([]byte(doc), &t); err != nil {
			return nil, fmt.Errorf("decode test %q: %w", id, err)
		}
		tests = append(tests, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tests: %w", err)
	}
	return tests, nil
}

// Catalog builds a validated catalog from the stored tests.
func (s *Store) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	tests, err := s.LoadTests(ctx)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		return nil, fmt.Errorf("catalog store is empty; run 'psyquest catalog import' first")
	}
	return catalog.New(tests)
}

// LatestImport returns the most recent import, or nil if none exist.
func (s *Store) LatestImport(ctx context.Context) (*Import, error) {
	query, args := builder().
		Select("id", "source", "test_count", "imported_at").
		From(entsql.Table(importsTable)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query latest import: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var imp Import
	var ts int64
	if err := rows.Scan(&imp.ID, &imp.Source, &imp.TestCount, &ts); err != nil {
		return nil, fmt.Errorf("scan import: %w", err)
	}
	imp.ImportedAt = time.Unix(ts, 0).UTC()
	return &imp, nil
}
