package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// DefaultCategory is the category assigned to entities created without one.
const DefaultCategory = "music"

// DefaultSchedule is the check schedule used until the operator changes it.
const DefaultSchedule = "09:00, 21:00"

// Entity is one tracked artist/performer.
type Entity struct {
	ID              string
	Name            string
	Locations       string // comma-separated city names or 2-letter region codes
	URLs            string // comma-separated source page URLs
	UseTicketmaster bool
	UseWebScrape    bool
	OnHold          bool
	Category        string
	LastChecked     time.Time // zero when never checked
}

// Settings is the single persisted configuration record.
type Settings struct {
	Schedule string // comma-separated HH:MM times
}

// Store wraps the sqlite database.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// New opens (and if needed creates) the database under dataDir.
func New(dataDir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, "tourwatch.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)

	s := &Store{
		db:  db,
		log: log.With().Str("component", "store").Logger(),
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			locations TEXT NOT NULL DEFAULT '',
			urls TEXT NOT NULL DEFAULT '',
			use_ticketmaster INTEGER NOT NULL DEFAULT 1,
			use_web_scrape INTEGER NOT NULL DEFAULT 1,
			on_hold INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT 'music',
			last_checked TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			schedule TEXT NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT OR IGNORE INTO settings (id, schedule) VALUES (1, ?)`,
		DefaultSchedule,
	)
	return err
}

// AddEntity inserts a new entity and returns it with its generated ID.
func (s *Store) AddEntity(e Entity) (Entity, error) {
	if e.Name == "" {
		return Entity{}, fmt.Errorf("entity name is required")
	}
	if e.Category == "" {
		e.Category = DefaultCategory
	}
	e.ID = uuid.New().String()

	_, err := s.db.Exec(`
		INSERT INTO entities (id, name, locations, urls, use_ticketmaster, use_web_scrape, on_hold, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Locations, e.URLs, e.UseTicketmaster, e.UseWebScrape, e.OnHold, e.Category,
	)
	if err != nil {
		return Entity{}, fmt.Errorf("inserting entity: %w", err)
	}

	s.log.Info().Str("id", e.ID).Str("name", e.Name).Msg("entity added")
	return e, nil
}

const entityColumns = `id, name, locations, urls, use_ticketmaster, use_web_scrape, on_hold, category, last_checked`

func scanEntity(row interface{ Scan(...interface{}) error }) (Entity, error) {
	var e Entity
	var lastChecked sql.NullTime
	err := row.Scan(
		&e.ID, &e.Name, &e.Locations, &e.URLs,
		&e.UseTicketmaster, &e.UseWebScrape, &e.OnHold, &e.Category,
		&lastChecked,
	)
	if err != nil {
		return Entity{}, err
	}
	if lastChecked.Valid {
		e.LastChecked = lastChecked.Time
	}
	return e, nil
}

// ListEntities returns all entities, optionally filtered to those not on
// hold. Results are ordered by name for stable output.
func (s *Store) ListEntities(activeOnly bool) ([]Entity, error) {
	query := fmt.Sprintf(`SELECT %s FROM entities`, entityColumns)
	if activeOnly {
		query += ` WHERE on_hold = 0`
	}
	query += ` ORDER BY name COLLATE NOCASE`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// GetEntity fetches one entity by ID.
func (s *Store) GetEntity(id string) (Entity, error) {
	row := s.db.QueryRow(fmt.Sprintf(`SELECT %s FROM entities WHERE id = ?`, entityColumns), id)
	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return Entity{}, fmt.Errorf("entity not found: %s", id)
	}
	if err != nil {
		return Entity{}, fmt.Errorf("fetching entity: %w", err)
	}
	return e, nil
}

// FindEntityByName fetches one entity by exact name (case-insensitive).
func (s *Store) FindEntityByName(name string) (Entity, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM entities WHERE name = ? COLLATE NOCASE`, entityColumns),
		name,
	)
	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return Entity{}, fmt.Errorf("entity not found: %s", name)
	}
	if err != nil {
		return Entity{}, fmt.Errorf("fetching entity: %w", err)
	}
	return e, nil
}

// SetOnHold pauses or resumes an entity.
func (s *Store) SetOnHold(id string, onHold bool) error {
	result, err := s.db.Exec(`UPDATE entities SET on_hold = ? WHERE id = ?`, onHold, id)
	if err != nil {
		return fmt.Errorf("updating on_hold: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("entity not found: %s", id)
	}
	return nil
}

// DeleteEntity removes an entity.
func (s *Store) DeleteEntity(id string) error {
	result, err := s.db.Exec(`DELETE FROM entities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("entity not found: %s", id)
	}
	return nil
}

// UpdateLastChecked records when an entity was last checked.
func (s *Store) UpdateLastChecked(id string, checkedAt time.Time) error {
	_, err := s.db.Exec(`UPDATE entities SET last_checked = ? WHERE id = ?`, checkedAt.UTC(), id)
	if err != nil {
		return fmt.Errorf("updating last_checked: %w", err)
	}
	return nil
}

// Settings returns the persisted settings record.
func (s *Store) Settings() (Settings, error) {
	var cfg Settings
	err := s.db.QueryRow(`SELECT schedule FROM settings WHERE id = 1`).Scan(&cfg.Schedule)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	return cfg, nil
}

// SaveSettings replaces the persisted settings record.
func (s *Store) SaveSettings(cfg Settings) error {
	_, err := s.db.Exec(`UPDATE settings SET schedule = ? WHERE id = 1`, cfg.Schedule)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
