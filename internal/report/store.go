// Package report persists per-build resolution decisions so duplicate-copy
// regressions can be diagnosed across builds: when an instanceof-style
// failure appears after a dependency upgrade, the stored decisions show
// which build first resolved a specifier somewhere new.
package report

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/flightglobe/threeshim/pkg/resolve"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("report store is closed")

// dbFileName under the store's data directory.
const dbFileName = "reports.db"

// Build is one recorded build invocation.
type Build struct {
	BuildID     string
	CreatedAt   time.Time
	ProjectRoot string
	Client      bool
}

// Decision is one resolution override recorded for a build.
type Decision struct {
	Specifier string
	Kind      string
	Path      string
}

// Store is the SQLite-backed resolution report store.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates the data directory if needed, opens the store database, and
// ensures the schema exists.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening report store: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing report schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores one build invocation with every alias and fallback decision
// from its configuration. Returns the stored build row with its generated
// UUID v7 identifier.
func (s *Store) Record(projectRoot string, client bool, cfg resolve.Config) (Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return Build{}, ErrStoreClosed
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Build{}, fmt.Errorf("generating build ID: %w", err)
	}
	build := Build{
		BuildID:     id.String(),
		CreatedAt:   time.Now().UTC(),
		ProjectRoot: projectRoot,
		Client:      client,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Build{}, fmt.Errorf("starting report transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO builds (build_id, created_at, project_root, client) VALUES (?, ?, ?, ?)`,
		build.BuildID, build.CreatedAt.Format(time.RFC3339Nano), build.ProjectRoot, boolToInt(build.Client),
	)
	if err != nil {
		return Build{}, fmt.Errorf("inserting build: %w", err)
	}

	for _, r := range cfg.Aliases {
		_, err = tx.Exec(
			`INSERT INTO decisions (build_id, specifier, kind, path) VALUES (?, ?, ?, ?)`,
			build.BuildID, r.Specifier, string(r.Target.Kind), r.Target.Path,
		)
		if err != nil {
			return Build{}, fmt.Errorf("inserting decision %q: %w", r.Specifier, err)
		}
	}
	for name, enabled := range cfg.Fallbacks {
		if enabled {
			continue
		}
		_, err = tx.Exec(
			`INSERT INTO decisions (build_id, specifier, kind, path) VALUES (?, ?, ?, ?)`,
			build.BuildID, name, string(resolve.TargetDisabled), "",
		)
		if err != nil {
			return Build{}, fmt.Errorf("inserting fallback decision %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Build{}, fmt.Errorf("committing report: %w", err)
	}
	return build, nil
}

// List returns recorded builds, newest first.
func (s *Store) List() ([]Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(
		`SELECT build_id, created_at, project_root, client FROM builds ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var b Build
		var createdAt string
		var client int
		if err := rows.Scan(&b.BuildID, &createdAt, &b.ProjectRoot, &client); err != nil {
			return nil, fmt.Errorf("scanning build row: %w", err)
		}
		b.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing build timestamp: %w", err)
		}
		b.Client = client != 0
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

// Decisions returns the resolution decisions recorded for a build, ordered
// by specifier for stable output.
func (s *Store) Decisions(buildID string) ([]Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(
		`SELECT specifier, kind, path FROM decisions WHERE build_id = ? ORDER BY specifier`, buildID)
	if err != nil {
		return nil, fmt.Errorf("listing decisions: %w", err)
	}
	defer rows.Close()

	var decisions []Decision
	for rows.Next() {
		var d Decision
		if err := rows.Scan(&d.Specifier, &d.Kind, &d.Path); err != nil {
			return nil, fmt.Errorf("scanning decision row: %w", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
