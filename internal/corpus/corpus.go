// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus reads the author corpus SQLite database. The corpus is
// built offline; this package only consumes it.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/reviewer-engine/pkg/types"
)

// Record is one stored author row with its contact fields.
type Record struct {
	Profile types.CandidateProfile
	Contact types.ContactInfo
}

// snapshot is an immutable whole-table read, keyed by author identifier.
type snapshot struct {
	authors map[string]Record
	modTime time.Time
	loaded  time.Time
}

// Store serves author lookups from an in-memory snapshot of the database.
// The snapshot reloads when the database file's mtime changes, so an offline
// rebuild is picked up without restarting the process.
type Store struct {
	path string

	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// NewStore points a store at the corpus database. The file may not exist
// yet; lookups against a missing corpus simply miss.
func NewStore(cfg types.ContactConfig) *Store {
	return &Store{path: cfg.CorpusPath}
}

// Lookup returns the stored record for an author identifier.
func (s *Store) Lookup(ctx context.Context, authorID string) (Record, bool, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return Record{}, false, err
	}
	rec, ok := snap.authors[authorID]
	return rec, ok, nil
}

// Stats reports the snapshot size and load time for the stats subcommand.
func (s *Store) Stats(ctx context.Context) (count int, loaded time.Time, err error) {
	snap, err := s.current(ctx)
	if err != nil {
		return 0, time.Time{}, err
	}
	return len(snap.authors), snap.loaded, nil
}

func (s *Store) current(ctx context.Context) (*snapshot, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &snapshot{authors: map[string]Record{}}, nil
		}
		return nil, fmt.Errorf("statting corpus database: %w", err)
	}

	if snap := s.snap.Load(); snap != nil && snap.modTime.Equal(info.ModTime()) {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have reloaded while we waited on the lock.
	if snap := s.snap.Load(); snap != nil && snap.modTime.Equal(info.ModTime()) {
		return snap, nil
	}

	authors, err := loadAuthors(ctx, s.path)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{authors: authors, modTime: info.ModTime(), loaded: time.Now().UTC()}
	s.snap.Store(snap)
	return snap, nil
}

func loadAuthors(ctx context.Context, path string) (map[string]Record, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT author_id, name, topics, institution, country, affiliations,
		        orcid, h_index, citation_count, works_count,
		        last_publication_date, co_author_ids, research_summary,
		        email, homepage, google_scholar
		 FROM authors`)
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()

	authors := make(map[string]Record)
	for rows.Next() {
		var (
			rec              Record
			topicsJSON       string
			affiliationsJSON string
			coAuthorsJSON    string
			orcid            sql.NullString
			lastPub          sql.NullString
			email            sql.NullString
			homepage         sql.NullString
			scholar          sql.NullString
		)
		p := &rec.Profile
		if err := rows.Scan(&p.AuthorID, &p.Name, &topicsJSON, &p.Institution,
			&p.Country, &affiliationsJSON, &orcid, &p.HIndex, &p.CitationCount,
			&p.WorksCount, &lastPub, &coAuthorsJSON, &p.ResearchSummary,
			&email, &homepage, &scholar); err != nil {
			return nil, fmt.Errorf("scanning author row: %w", err)
		}

		// List columns are stored as JSON text. A row with garbage in one
		// keeps its scalar fields; the list stays empty.
		json.Unmarshal([]byte(topicsJSON), &p.Topics)
		json.Unmarshal([]byte(affiliationsJSON), &p.Affiliations)
		json.Unmarshal([]byte(coAuthorsJSON), &p.CoAuthorIDs)

		p.ORCID = orcid.String
		p.LastPublicationDate = lastPub.String
		p.Email = email.String

		rec.Contact = types.ContactInfo{
			Email:         email.String,
			Homepage:      homepage.String,
			GoogleScholar: scholar.String,
		}

		authors[p.AuthorID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating author rows: %w", err)
	}
	return authors, nil
}
