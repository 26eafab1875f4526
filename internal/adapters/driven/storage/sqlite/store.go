package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/recruitr/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// DatabaseFile is the catalogue file name inside the data directory.
const DatabaseFile = "records.db"

// Store is the SQLite-based résumé catalogue.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.recruitr/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recruitr", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets list and search queries run alongside ingestion writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordStore returns a RecordStore interface backed by this store.
func (s *Store) RecordStore() driven.RecordStore {
	return &recordStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_records.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return v, nil
}

// ==================== Record Store ====================

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

const recordColumns = `id, filename, raw_text, sections, skills, experience_years,
	education, certifications, languages, contact_info, created_at`

const upsertRecord = `
	INSERT INTO records (` + recordColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		filename = excluded.filename,
		raw_text = excluded.raw_text,
		sections = excluded.sections,
		skills = excluded.skills,
		experience_years = excluded.experience_years,
		education = excluded.education,
		certifications = excluded.certifications,
		languages = excluded.languages,
		contact_info = excluded.contact_info,
		created_at = excluded.created_at
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Save stores a record.
func (s *recordStore) Save(ctx context.Context, record *domain.StructuredRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("%w: record must have an ID", domain.ErrInvalidInput)
	}
	if err := saveRecord(ctx, s.store.db, record); err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// SaveBatch stores many records in one transaction.
func (s *recordStore) SaveBatch(ctx context.Context, records []*domain.StructuredRecord) error {
	for _, r := range records {
		if r == nil || r.ID == "" {
			return fmt.Errorf("%w: record must have an ID", domain.ErrInvalidInput)
		}
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, r := range records {
		if err := saveRecord(ctx, tx, r); err != nil {
			return fmt.Errorf("saving record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func saveRecord(ctx context.Context, db execer, r *domain.StructuredRecord) error {
	fields, err := marshalFields(r)
	if err != nil {
		return err
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var years sql.NullInt64
	if r.ExperienceYears != nil {
		years = sql.NullInt64{Int64: int64(*r.ExperienceYears), Valid: true}
	}

	_, err = db.ExecContext(ctx, upsertRecord,
		r.ID, r.Filename, r.RawText,
		fields.sections, fields.skills, years,
		fields.education, fields.certifications, fields.languages, fields.contactInfo,
		createdAt.UTC())
	return err
}

// Get retrieves a record by ID.
func (s *recordStore) Get(ctx context.Context, id string) (*domain.StructuredRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)

	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	return r, nil
}

// List returns records newest first.
func (s *recordStore) List(ctx context.Context, limit, offset int) ([]*domain.StructuredRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM records
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	records := []*domain.StructuredRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *recordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Clear removes every record.
func (s *recordStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

type encodedFields struct {
	sections       string
	skills         string
	education      string
	certifications string
	languages      string
	contactInfo    string
}

func marshalFields(r *domain.StructuredRecord) (encodedFields, error) {
	var out encodedFields
	var err error

	if out.sections, err = marshalJSON(r.Sections, "{}"); err != nil {
		return out, fmt.Errorf("marshalling sections: %w", err)
	}
	if out.skills, err = marshalJSON(r.Skills, "[]"); err != nil {
		return out, fmt.Errorf("marshalling skills: %w", err)
	}
	if out.education, err = marshalJSON(r.Education, "[]"); err != nil {
		return out, fmt.Errorf("marshalling education: %w", err)
	}
	if out.certifications, err = marshalJSON(r.Certifications, "[]"); err != nil {
		return out, fmt.Errorf("marshalling certifications: %w", err)
	}
	if out.languages, err = marshalJSON(r.Languages, "[]"); err != nil {
		return out, fmt.Errorf("marshalling languages: %w", err)
	}
	if out.contactInfo, err = marshalJSON(r.ContactInfo, "{}"); err != nil {
		return out, fmt.Errorf("marshalling contact info: %w", err)
	}
	return out, nil
}

// marshalJSON encodes v, substituting empty for a JSON null.
func marshalJSON(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.StructuredRecord, error) {
	var r domain.StructuredRecord
	var sections, skills, education, certifications, languages, contactInfo string
	var years sql.NullInt64
	var createdAt time.Time

	if err := row.Scan(&r.ID, &r.Filename, &r.RawText, &sections, &skills, &years,
		&education, &certifications, &languages, &contactInfo, &createdAt); err != nil {
		return nil, err
	}

	targets := []struct {
		name string
		data string
		dst  any
	}{
		{"sections", sections, &r.Sections},
		{"skills", skills, &r.Skills},
		{"education", education, &r.Education},
		{"certifications", certifications, &r.Certifications},
		{"languages", languages, &r.Languages},
		{"contact info", contactInfo, &r.ContactInfo},
	}
	for _, t := range targets {
		if err := json.Unmarshal([]byte(t.data), t.dst); err != nil {
			return nil, fmt.Errorf("unmarshaling %s: %w", t.name, err)
		}
	}

	if years.Valid {
		n := int(years.Int64)
		r.ExperienceYears = &n
	}
	r.CreatedAt = createdAt.UTC()

	return &r, nil
}
