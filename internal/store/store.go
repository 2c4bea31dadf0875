// Package store persists avatars in a single SQLite table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no avatar has the requested id.
var ErrNotFound = errors.New("avatar not found")

type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used to bump updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open creates or opens the avatar database at path.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS avatars (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		user_id TEXT,
		business_info TEXT NOT NULL,
		avatar_data TEXT NOT NULL,
		industry TEXT NOT NULL,
		tags TEXT NOT NULL,
		is_template INTEGER NOT NULL DEFAULT 0,
		generation_mode TEXT NOT NULL,
		overall_confidence REAL NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_avatars_industry ON avatars(industry);
	CREATE INDEX IF NOT EXISTS idx_avatars_created_at ON avatars(created_at);
	`)
	return err
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Save inserts the avatar or replaces the stored one with the same id.
func (s *Store) Save(ctx context.Context, a *models.Avatar) error {
	if err := save(ctx, s.db, a); err != nil {
		return fmt.Errorf("failed to save avatar %s: %w", a.ID, err)
	}
	return nil
}

func save(ctx context.Context, q queryer, a *models.Avatar) error {
	info, err := json.Marshal(a.BusinessInfo)
	if err != nil {
		return err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return err
	}

	var userID sql.NullString
	if a.UserID != "" {
		userID = sql.NullString{String: a.UserID, Valid: true}
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO avatars (id, name, user_id, business_info, avatar_data, industry,
			tags, is_template, generation_mode, overall_confidence, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			user_id = excluded.user_id,
			business_info = excluded.business_info,
			avatar_data = excluded.avatar_data,
			industry = excluded.industry,
			tags = excluded.tags,
			is_template = excluded.is_template,
			generation_mode = excluded.generation_mode,
			overall_confidence = excluded.overall_confidence,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, a.ID, a.Name, userID, string(info), string(data), a.Industry, string(tags),
		a.IsTemplate, string(a.GenerationMode), a.OverallConfidence, a.CreatedAt, a.UpdatedAt)
	return err
}

const selectAvatar = `SELECT id, name, user_id, business_info, avatar_data, industry,
	tags, is_template, generation_mode, overall_confidence, created_at, updated_at
	FROM avatars`

type scanner interface {
	Scan(dest ...any) error
}

// scanAvatar rebuilds an avatar from the facet blob, then lets the indexed
// columns win.
func scanAvatar(row scanner) (*models.Avatar, error) {
	var (
		a                models.Avatar
		userID           sql.NullString
		info, data, tags string
		mode             string
	)
	if err := row.Scan(&a.ID, &a.Name, &userID, &info, &data, &a.Industry, &tags,
		&a.IsTemplate, &mode, &a.OverallConfidence, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	id, name, industry := a.ID, a.Name, a.Industry
	isTemplate, confidence := a.IsTemplate, a.OverallConfidence
	createdAt, updatedAt := a.CreatedAt, a.UpdatedAt

	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, fmt.Errorf("decode avatar_data: %w", err)
	}
	a.BusinessInfo = models.BusinessInfo{}
	if err := json.Unmarshal([]byte(info), &a.BusinessInfo); err != nil {
		return nil, fmt.Errorf("decode business_info: %w", err)
	}
	a.Tags = nil
	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	a.ID, a.Name, a.Industry = id, name, industry
	a.IsTemplate, a.OverallConfidence = isTemplate, confidence
	a.CreatedAt, a.UpdatedAt = createdAt, updatedAt
	a.UserID = userID.String
	a.GenerationMode = models.GenerationMode(mode)
	return &a, nil
}

func get(ctx context.Context, q queryer, id string) (*models.Avatar, error) {
	a, err := scanAvatar(q.QueryRowContext(ctx, selectAvatar+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// Get loads one avatar. It returns ErrNotFound when the id is unknown.
func (s *Store) Get(ctx context.Context, id string) (*models.Avatar, error) {
	a, err := get(ctx, s.db, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to load avatar %s: %w", id, err)
	}
	return a, err
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Industry   string
	IsTemplate *bool
	// Search matches name or industry, case-insensitively.
	Search string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns the matching avatars, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Avatar, error) {
	var (
		where []string
		args  []any
	)
	if f.Industry != "" {
		where = append(where, "industry = ?")
		args = append(args, f.Industry)
	}
	if f.IsTemplate != nil {
		where = append(where, "is_template = ?")
		args = append(args, *f.IsTemplate)
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		where = append(where, `(name LIKE ? ESCAPE '\' OR industry LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	query := selectAvatar
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list avatars: %w", err)
	}
	defer rows.Close()

	avatars := []models.Avatar{}
	for rows.Next() {
		a, err := scanAvatar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list avatars: %w", err)
		}
		avatars = append(avatars, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list avatars: %w", err)
	}
	return avatars, nil
}

// Update applies a partial update and bumps updatedAt.
func (s *Store) Update(ctx context.Context, id string, u models.AvatarUpdate) (*models.Avatar, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar %s: %w", id, err)
	}
	defer tx.Rollback()

	a, err := get(ctx, tx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar %s: %w", id, err)
	}

	u.Apply(a)
	a.UpdatedAt = models.Timestamp(s.now())

	if err := save(ctx, tx, a); err != nil {
		return nil, fmt.Errorf("failed to update avatar %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to update avatar %s: %w", id, err)
	}
	return a, nil
}

// Delete removes the avatar. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM avatars WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete avatar %s: %w", id, err)
	}
	return nil
}
