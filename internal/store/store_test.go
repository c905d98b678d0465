package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/psyquest/internal/catalog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tests, err := s.LoadTests(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tests) != 0 {
		t.Errorf("expected no tests, got %d", len(tests))
	}

	imp, err := s.LatestImport(ctx)
	if err != nil {
		t.Fatalf("latest import: %v", err)
	}
	if imp != nil {
		t.Fatal("expected nil import when none exist")
	}

	if _, err := s.Catalog(ctx); err == nil {
		t.Fatal("expected error building a catalog from an empty store")
	}
}

func TestImportRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	imp, err := s.ImportTests(ctx, "embedded", def.Tests())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imp.TestCount != len(def.Tests()) {
		t.Errorf("test count = %d, want %d", imp.TestCount, len(def.Tests()))
	}

	cat, err := s.Catalog(ctx)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	want := def.Tests()
	got := cat.Tests()
	if len(got) != len(want) {
		t.Fatalf("got %d tests, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("test %d: id %q, want %q", i, got[i].ID, want[i].ID)
		}
		if got[i].Scoring.Type != want[i].Scoring.Type {
			t.Errorf("test %q: scoring %q, want %q", want[i].ID, got[i].Scoring.Type, want[i].Scoring.Type)
		}
		if got[i].QuestionCount() != want[i].QuestionCount() {
			t.Errorf("test %q: %d questions, want %d", want[i].ID, got[i].QuestionCount(), want[i].QuestionCount())
		}
	}

	bucketed, err := cat.Test("2")
	if err != nil {
		t.Fatalf("test 2: %v", err)
	}
	if bucketed.Scoring.Bucket == nil || bucketed.Scoring.Bucket.KeyFor(7) != "high" {
		t.Error("expected bucket rule to survive the round trip")
	}

	latest, err := s.LatestImport(ctx)
	if err != nil {
		t.Fatalf("latest import: %v", err)
	}
	if latest == nil || latest.Source != "embedded" {
		t.Fatalf("latest import = %+v, want source embedded", latest)
	}
}

func TestImportReplacesPrevious(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	all := def.Tests()

	if _, err := s.ImportTests(ctx, "first", all); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := s.ImportTests(ctx, "second", all[:2]); err != nil {
		t.Fatalf("second import: %v", err)
	}

	tests, err := s.LoadTests(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tests) != 2 {
		t.Errorf("expected 2 tests after re-import, got %d", len(tests))
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM catalog_imports").Scan(&count); err != nil {
		t.Fatalf("count imports: %v", err)
	}
	if count != 2 {
		t.Errorf("imports = %d, want 2", count)
	}

	latest, err := s.LatestImport(ctx)
	if err != nil {
		t.Fatalf("latest import: %v", err)
	}
	if latest.Source != "second" {
		t.Errorf("latest source = %q, want second", latest.Source)
	}
}
