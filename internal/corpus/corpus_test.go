// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

const createAuthors = `CREATE TABLE authors (
	author_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	topics TEXT NOT NULL DEFAULT '[]',
	institution TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	affiliations TEXT NOT NULL DEFAULT '[]',
	orcid TEXT,
	h_index INTEGER NOT NULL DEFAULT 0,
	citation_count INTEGER NOT NULL DEFAULT 0,
	works_count INTEGER NOT NULL DEFAULT 0,
	last_publication_date TEXT,
	co_author_ids TEXT NOT NULL DEFAULT '[]',
	research_summary TEXT NOT NULL DEFAULT '',
	email TEXT,
	homepage TEXT,
	google_scholar TEXT
)`

func writeCorpus(t *testing.T, path string, rows [][]any) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(createAuthors); err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		_, err := db.Exec(`INSERT INTO authors
			(author_id, name, topics, institution, country, affiliations, orcid,
			 h_index, citation_count, works_count, last_publication_date,
			 co_author_ids, research_summary, email, homepage, google_scholar)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, row...)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func testRow() []any {
	return []any{
		"https://openalex.org/A100", "Ada Example",
		`["machine learning", "optimization"]`, "MIT", "US",
		`[{"institution": "MIT", "country": "US"}]`,
		"0000-0002-1825-0097", 42, 9000, 120, "2025-11-02",
		`["https://openalex.org/A200"]`, "Recent work on optimization.",
		"ada@mit.edu", "https://ada.example.org", nil,
	}
}

func TestStoreLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.db")
	writeCorpus(t, path, [][]any{testRow()})

	s := NewStore(types.ContactConfig{CorpusPath: path})
	rec, ok, err := s.Lookup(context.Background(), "https://openalex.org/A100")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}

	p := rec.Profile
	if p.Name != "Ada Example" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Topics) != 2 || p.Topics[0] != "machine learning" {
		t.Errorf("Topics = %v", p.Topics)
	}
	if len(p.Affiliations) != 1 || p.Affiliations[0].Institution != "MIT" {
		t.Errorf("Affiliations = %v", p.Affiliations)
	}
	if p.HIndex != 42 || p.WorksCount != 120 {
		t.Errorf("HIndex = %d, WorksCount = %d", p.HIndex, p.WorksCount)
	}
	if len(p.CoAuthorIDs) != 1 || p.CoAuthorIDs[0] != "https://openalex.org/A200" {
		t.Errorf("CoAuthorIDs = %v", p.CoAuthorIDs)
	}
	if rec.Contact.Email != "ada@mit.edu" {
		t.Errorf("Contact.Email = %q", rec.Contact.Email)
	}
	if rec.Contact.Homepage != "https://ada.example.org" {
		t.Errorf("Contact.Homepage = %q", rec.Contact.Homepage)
	}
	if rec.Contact.GoogleScholar != "" {
		t.Errorf("Contact.GoogleScholar = %q, want empty for NULL column", rec.Contact.GoogleScholar)
	}
}

func TestStoreMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.db")
	writeCorpus(t, path, [][]any{testRow()})

	s := NewStore(types.ContactConfig{CorpusPath: path})
	_, ok, err := s.Lookup(context.Background(), "https://openalex.org/A999")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestStoreMissingFile(t *testing.T) {
	s := NewStore(types.ContactConfig{CorpusPath: filepath.Join(t.TempDir(), "nope.db")})
	_, ok, err := s.Lookup(context.Background(), "https://openalex.org/A100")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatal("missing corpus must behave as empty, not error")
	}

	count, _, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestStoreReloadsOnModTimeChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.db")
	writeCorpus(t, path, [][]any{testRow()})

	s := NewStore(types.ContactConfig{CorpusPath: path})
	count, _, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	// Rebuild the corpus with a second author and force a distinct mtime.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second := testRow()
	second[0] = "https://openalex.org/A200"
	second[1] = "Grace Example"
	writeCorpus(t, path, [][]any{testRow(), second})
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	count, _, err = s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats after rebuild: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 after reload", count)
	}
}

func TestStoreSnapshotIsStableBetweenReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.db")
	writeCorpus(t, path, [][]any{testRow()})

	s := NewStore(types.ContactConfig{CorpusPath: path})
	_, first, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	_, second, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("snapshot reloaded without an mtime change: %v vs %v", first, second)
	}
}
