package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samerh/leadline/internal/models"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection holding search history and
// the contacts each search produced
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createSearchesTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create searches schema: %w", err)
	}
	if _, err := conn.Exec(createContactsTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create contacts schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// ListProjectFiles returns a list of .db files in the given directory
func ListProjectFiles(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".db" {
			projects = append(projects, name)
		}
	}
	return projects, nil
}

// SaveBatch stores one admitted search and all its contacts in a single
// transaction, returning the new search id
func (db *DB) SaveBatch(userID string, batch *models.SearchBatch) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(insertSearch,
		userID,
		batch.Query.Location,
		batch.Query.Category,
		batch.Query.RadiusMeters,
		batch.Size(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert search: %w", err)
	}
	searchID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get search id: %w", err)
	}

	stmt, err := tx.Prepare(insertContact)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, b := range batch.Businesses {
		_, err := stmt.Exec(
			searchID,
			b.PlaceID,
			b.Name,
			b.Address,
			b.Phone,
			b.Website,
			b.WebsiteState.String(),
			b.Rating,
			b.RatingCount,
			strings.Join(b.Categories, ";"),
			b.MapURL,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert contact %s: %w", b.PlaceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return searchID, nil
}

// RecentSearches returns the most recent searches, newest first
func (db *DB) RecentSearches(limit int) ([]models.SearchSummary, error) {
	rows, err := db.conn.Query(selectRecentSearches, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query searches: %w", err)
	}
	defer rows.Close()

	var searches []models.SearchSummary
	for rows.Next() {
		var s models.SearchSummary
		var searchedAt string
		if err := rows.Scan(&s.ID, &s.Location, &s.Category, &s.RadiusMeters, &s.ResultCount, &searchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		s.SearchedAt, _ = parseTimestamp(searchedAt)
		searches = append(searches, s)
	}
	return searches, nil
}

// ContactsForSearch returns the contacts of one stored search in their
// original order
func (db *DB) ContactsForSearch(searchID int64) ([]models.Business, error) {
	rows, err := db.conn.Query(selectContactsForSearch, searchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

// AllContacts returns every stored contact across all searches
func (db *DB) AllContacts() ([]models.Business, error) {
	rows, err := db.conn.Query(selectAllContacts)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

func scanContacts(rows *sql.Rows) ([]models.Business, error) {
	var contacts []models.Business
	for rows.Next() {
		var b models.Business
		var liveness, categories string
		if err := rows.Scan(&b.PlaceID, &b.Name, &b.Address, &b.Phone, &b.Website,
			&liveness, &b.Rating, &b.RatingCount, &categories, &b.MapURL); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		b.WebsiteState = models.ParseLiveness(liveness)
		if categories != "" {
			b.Categories = strings.Split(categories, ";")
		}
		contacts = append(contacts, b)
	}
	return contacts, nil
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
