// Package catalog implements the case file catalog over SQLite. It is the
// bulk side of the search engine: the compiled predicate runs here as one
// WHERE clause over the files table.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/casevault/filesift/internal/domain/casefile"
)

// Store is a SQLite-backed case catalog.
type Store struct {
	db *sql.DB
}

// New opens or creates the catalog database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize catalog schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS data_sources (
		obj_id INTEGER PRIMARY KEY AUTOINCREMENT,
		device_id TEXT NOT NULL,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS files (
		obj_id INTEGER PRIMARY KEY AUTOINCREMENT,
		data_source_obj_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		parent_path TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		mime_type TEXT,
		md5_hash TEXT,
		FOREIGN KEY (data_source_obj_id) REFERENCES data_sources(obj_id)
	);

	CREATE INDEX IF NOT EXISTS idx_files_data_source ON files(data_source_obj_id);
	CREATE INDEX IF NOT EXISTS idx_files_size ON files(size);
	CREATE INDEX IF NOT EXISTS idx_files_mime_type ON files(mime_type);

	CREATE TABLE IF NOT EXISTS keyword_hits (
		file_obj_id INTEGER NOT NULL,
		list_name TEXT NOT NULL,
		keyword TEXT NOT NULL,
		FOREIGN KEY (file_obj_id) REFERENCES files(obj_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_keyword_hits_list ON keyword_hits(list_name);
	`
	_, err := db.Exec(schema)
	return err
}

// FindMatching evaluates the compiled predicate and returns the matching
// files in obj_id order. The predicate is assembled by the query compiler
// from validated filter values, never from raw caller input.
func (s *Store) FindMatching(ctx context.Context, whereClause string) ([]*casefile.CaseFile, error) {
	if whereClause == "" {
		return nil, fmt.Errorf("empty predicate")
	}

	query := `SELECT obj_id, data_source_obj_id, name, parent_path, size,
		COALESCE(mime_type, ''), COALESCE(md5_hash, '')
		FROM files WHERE ` + whereClause + ` ORDER BY obj_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var files []*casefile.CaseFile
	for rows.Next() {
		var f casefile.CaseFile
		if err := rows.Scan(&f.ObjID, &f.DataSourceObjID, &f.Name, &f.ParentPath,
			&f.Size, &f.MimeType, &f.MD5Hash); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}

// InsertDataSource registers a new evidence source and returns it.
func (s *Store) InsertDataSource(ctx context.Context, name string) (casefile.DataSource, error) {
	if name == "" {
		return casefile.DataSource{}, fmt.Errorf("data source name is required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO data_sources (device_id, name) VALUES (?, ?)`,
		uuid.NewString(), name,
	)
	if err != nil {
		return casefile.DataSource{}, fmt.Errorf("insert data source: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return casefile.DataSource{}, fmt.Errorf("data source id: %w", err)
	}
	return casefile.NewDataSource(id, name)
}

// ListDataSources returns all registered evidence sources.
func (s *Store) ListDataSources(ctx context.Context) ([]casefile.DataSource, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT obj_id, name FROM data_sources ORDER BY obj_id`)
	if err != nil {
		return nil, fmt.Errorf("query data sources: %w", err)
	}
	defer rows.Close()

	var sources []casefile.DataSource
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan data source row: %w", err)
		}
		ds, err := casefile.NewDataSource(id, name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, ds)
	}
	return sources, rows.Err()
}

// InsertFile catalogs a file and assigns its ObjID.
func (s *Store) InsertFile(ctx context.Context, f *casefile.CaseFile) error {
	if f.Name == "" {
		return fmt.Errorf("file name is required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO files (data_source_obj_id, name, parent_path, size, mime_type, md5_hash)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		f.DataSourceObjID, f.Name, f.ParentPath, f.Size, f.MimeType, f.MD5Hash,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	f.ObjID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("file id: %w", err)
	}
	return nil
}

// InsertKeywordHit records that a keyword from the named list was found in
// the file.
func (s *Store) InsertKeywordHit(ctx context.Context, fileObjID int64, listName, keyword string) error {
	if listName == "" {
		return fmt.Errorf("keyword list name is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO keyword_hits (file_obj_id, list_name, keyword) VALUES (?, ?, ?)`,
		fileObjID, listName, keyword,
	)
	if err != nil {
		return fmt.Errorf("insert keyword hit: %w", err)
	}
	return nil
}

// CountFiles returns the total number of catalogued files.
func (s *Store) CountFiles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&count)
	return count, err
}

// Ping checks catalog availability.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
