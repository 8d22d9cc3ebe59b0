// Package sqlstore persists extra fields records in a SQL table. CSS class and
// inline style configuration are stored as JSON text columns.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/goliatone/go-cascade/pkg/extrafields"
)

// DriverSQLite is the driver name registered by go-sqlite3.
const DriverSQLite = "sqlite3"

const schema = `CREATE TABLE IF NOT EXISTS plugin_extra_fields (
	plugin_type TEXT NOT NULL,
	site_id TEXT NOT NULL,
	allow_id_tag BOOLEAN NOT NULL DEFAULT 0,
	css_classes TEXT NOT NULL DEFAULT '{}',
	inline_styles TEXT NOT NULL DEFAULT '{}',
	PRIMARY KEY (plugin_type, site_id)
)`

type row struct {
	PluginType   string `db:"plugin_type"`
	SiteID       string `db:"site_id"`
	AllowIDTag   bool   `db:"allow_id_tag"`
	CSSClasses   string `db:"css_classes"`
	InlineStyles string `db:"inline_styles"`
}

// Store implements extrafields.WritableStore over sqlx.
type Store struct {
	db     *sqlx.DB
	groups []extrafields.StyleGroup
}

var _ extrafields.WritableStore = (*Store)(nil)

// Open connects to a SQLite database at dsn and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: connect: %w", err)
	}
	store, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing connection and ensures the schema exists.
func New(ctx context.Context, db *sqlx.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: db is required")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("sqlstore: create schema: %w", err)
	}
	return &Store{db: db, groups: extrafields.DefaultStyleGroups()}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, pluginType, siteID string) (extrafields.Record, error) {
	var r row
	err := s.db.GetContext(ctx, &r, s.db.Rebind(
		`SELECT plugin_type, site_id, allow_id_tag, css_classes, inline_styles
		FROM plugin_extra_fields WHERE plugin_type = ? AND site_id = ?`),
		pluginType, siteID)
	if errors.Is(err, sql.ErrNoRows) {
		return extrafields.Record{}, fmt.Errorf("%w: %s@%s", extrafields.ErrNotFound, pluginType, siteID)
	}
	if err != nil {
		return extrafields.Record{}, fmt.Errorf("sqlstore: get %s@%s: %w", pluginType, siteID, err)
	}
	return r.record()
}

func (s *Store) List(ctx context.Context) ([]extrafields.Record, error) {
	var rows []row
	err := s.db.SelectContext(ctx, &rows,
		`SELECT plugin_type, site_id, allow_id_tag, css_classes, inline_styles
		FROM plugin_extra_fields ORDER BY plugin_type, site_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list: %w", err)
	}
	out := make([]extrafields.Record, 0, len(rows))
	for _, r := range rows {
		record, err := r.record()
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *Store) Put(ctx context.Context, record extrafields.Record) error {
	if err := record.Validate(s.groups); err != nil {
		return err
	}
	r, err := toRow(record)
	if err != nil {
		return err
	}
	_, err = s.db.NamedExecContext(ctx,
		`INSERT INTO plugin_extra_fields (plugin_type, site_id, allow_id_tag, css_classes, inline_styles)
		VALUES (:plugin_type, :site_id, :allow_id_tag, :css_classes, :inline_styles)
		ON CONFLICT (plugin_type, site_id) DO UPDATE SET
			allow_id_tag = excluded.allow_id_tag,
			css_classes = excluded.css_classes,
			inline_styles = excluded.inline_styles`, r)
	if err != nil {
		return fmt.Errorf("sqlstore: put %s: %w", record.Key(), err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, pluginType, siteID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`DELETE FROM plugin_extra_fields WHERE plugin_type = ? AND site_id = ?`),
		pluginType, siteID)
	if err != nil {
		return fmt.Errorf("sqlstore: delete %s@%s: %w", pluginType, siteID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: delete %s@%s: %w", pluginType, siteID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s@%s", extrafields.ErrNotFound, pluginType, siteID)
	}
	return nil
}

func toRow(record extrafields.Record) (row, error) {
	classes, err := json.Marshal(record.CSSClasses)
	if err != nil {
		return row{}, fmt.Errorf("sqlstore: encode css classes: %w", err)
	}
	styles := record.InlineStyles
	if styles == nil {
		styles = extrafields.InlineStyles{}
	}
	inline, err := json.Marshal(styles)
	if err != nil {
		return row{}, fmt.Errorf("sqlstore: encode inline styles: %w", err)
	}
	return row{
		PluginType:   record.PluginType,
		SiteID:       record.SiteID,
		AllowIDTag:   record.AllowIDTag,
		CSSClasses:   string(classes),
		InlineStyles: string(inline),
	}, nil
}

func (r row) record() (extrafields.Record, error) {
	record := extrafields.Record{
		PluginType: r.PluginType,
		SiteID:     r.SiteID,
		AllowIDTag: r.AllowIDTag,
	}
	if err := json.Unmarshal([]byte(r.CSSClasses), &record.CSSClasses); err != nil {
		return extrafields.Record{}, fmt.Errorf("sqlstore: decode css classes for %s: %w", record.Key(), err)
	}
	if err := json.Unmarshal([]byte(r.InlineStyles), &record.InlineStyles); err != nil {
		return extrafields.Record{}, fmt.Errorf("sqlstore: decode inline styles for %s: %w", record.Key(), err)
	}
	if len(record.InlineStyles) == 0 {
		record.InlineStyles = nil
	}
	return record, nil
}
