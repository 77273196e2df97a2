// Package storage keeps a local sqlite index of scraped menu items so runs
// can be compared without re-reading every JSON document.
package storage

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS menu_items (
  id              INTEGER PRIMARY KEY,
  store_slug      TEXT NOT NULL,
  category        TEXT NOT NULL,
  item_id         INTEGER NOT NULL,
  name            TEXT NOT NULL,
  slug            TEXT NOT NULL,
  description     TEXT,
  price           REAL,
  image           TEXT,
  is_available    INTEGER NOT NULL CHECK (is_available IN (0,1)),
  subcategory_ids TEXT NOT NULL DEFAULT '',
  run_id          INTEGER NOT NULL DEFAULT 0,
  first_seen_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(store_slug, category, item_id)
);
CREATE INDEX IF NOT EXISTS idx_items_store ON menu_items(store_slug);
CREATE TABLE IF NOT EXISTS menu_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  store_slug  TEXT NOT NULL,
  category    TEXT NOT NULL,
  item_id     INTEGER NOT NULL,
  name        TEXT NOT NULL,
  change_type TEXT NOT NULL CHECK (change_type IN ('added','updated','removed'))
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON menu_changes(occurred_at);
CREATE INDEX IF NOT EXISTS idx_changes_store ON menu_changes(store_slug, occurred_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// UpsertStoreItems replaces the indexed view of one store with entries,
// recording added/updated/removed change rows. Entries absent from this run
// are swept out.
func (d *DB) UpsertStoreItems(ctx context.Context, storeSlug string, entries []Entry) ([]Change, error) {
	now := time.Now().UTC()
	// Nanosecond granularity so back-to-back imports never share a run id.
	runID := time.Now().UnixNano()

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, "SELECT category, item_id, name, description, price, is_available, subcategory_ids FROM menu_items WHERE store_slug = ?", storeSlug)
	if err != nil {
		return nil, err
	}

	type existing struct {
		Name, Desc, SubIDs string
		Price              sql.NullFloat64
		Available          int
	}
	existingMap := make(map[string]existing)
	for rows.Next() {
		var (
			cat, name    string
			itemID       int64
			desc, subIDs sql.NullString
			price        sql.NullFloat64
			available    int
		)
		if err = rows.Scan(&cat, &itemID, &name, &desc, &price, &available, &subIDs); err != nil {
			rows.Close()
			return nil, err
		}
		existingMap[identityKey(cat, itemID)] = existing{Name: name, Desc: desc.String, SubIDs: subIDs.String, Price: price, Available: available}
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}

	var changes []Change
	for _, e := range entries {
		key := identityKey(e.Category, e.ItemID)
		ex, existed := existingMap[key]

		if !existed {
			_, err = tx.ExecContext(ctx, `INSERT INTO menu_items(store_slug, category, item_id, name, slug, description, price, image, is_available, subcategory_ids, run_id, first_seen_at, last_seen_at) VALUES(?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)`, e.StoreSlug, e.Category, e.ItemID, e.Name, e.Slug, nullIfEmpty(e.Description), nullFloat(e.Price), nullIfEmpty(e.Image), boolToInt(e.IsAvailable), e.SubcategoryIDs, runID)
			if err != nil {
				return nil, err
			}
			changes = append(changes, Change{OccurredAt: now, StoreSlug: storeSlug, Category: e.Category, ItemID: e.ItemID, Name: e.Name, ChangeType: "added"})
			existingMap[key] = existing{Name: e.Name, Desc: e.Description, SubIDs: e.SubcategoryIDs, Price: nullFloat(e.Price), Available: boolToInt(e.IsAvailable)}
		} else {
			changed := ex.Name != e.Name || ex.Desc != e.Description || ex.SubIDs != e.SubcategoryIDs ||
				ex.Available != boolToInt(e.IsAvailable) || !floatEqual(ex.Price, e.Price)
			if changed {
				_, err = tx.ExecContext(ctx, `UPDATE menu_items SET name = ?, slug = ?, description = ?, price = ?, image = ?, is_available = ?, subcategory_ids = ?, run_id = ?, last_seen_at = CURRENT_TIMESTAMP WHERE store_slug = ? AND category = ? AND item_id = ?`, e.Name, e.Slug, nullIfEmpty(e.Description), nullFloat(e.Price), nullIfEmpty(e.Image), boolToInt(e.IsAvailable), e.SubcategoryIDs, runID, storeSlug, e.Category, e.ItemID)
				if err != nil {
					return nil, err
				}
				changes = append(changes, Change{OccurredAt: now, StoreSlug: storeSlug, Category: e.Category, ItemID: e.ItemID, Name: e.Name, ChangeType: "updated"})
			} else {
				_, err = tx.ExecContext(ctx, `UPDATE menu_items SET run_id = ?, last_seen_at = CURRENT_TIMESTAMP WHERE store_slug = ? AND category = ? AND item_id = ?`, runID, storeSlug, e.Category, e.ItemID)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	// Sweep: entries not touched in this run are gone from the menu.
	staleRows, err := tx.QueryContext(ctx, "SELECT category, item_id, name FROM menu_items WHERE store_slug = ? AND run_id != ?", storeSlug, runID)
	if err != nil {
		return nil, err
	}
	for staleRows.Next() {
		var (
			cat, name string
			itemID    int64
		)
		if err = staleRows.Scan(&cat, &itemID, &name); err != nil {
			staleRows.Close()
			return nil, err
		}
		changes = append(changes, Change{OccurredAt: now, StoreSlug: storeSlug, Category: cat, ItemID: itemID, Name: name, ChangeType: "removed"})
	}
	if err = staleRows.Close(); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM menu_items WHERE store_slug = ? AND run_id != ?", storeSlug, runID); err != nil {
		return nil, err
	}

	for _, c := range changes {
		if _, err = tx.ExecContext(ctx, `INSERT INTO menu_changes(occurred_at, store_slug, category, item_id, name, change_type) VALUES(?,?,?,?,?,?)`, c.OccurredAt, c.StoreSlug, c.Category, c.ItemID, c.Name, c.ChangeType); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return changes, nil
}

// ListOptions filters ListItems.
type ListOptions struct {
	StoreSlug     string
	AvailableOnly bool
}

func (d *DB) ListItems(ctx context.Context, opts ListOptions) ([]Entry, error) {
	query := "SELECT store_slug, category, item_id, name, slug, description, price, image, is_available, subcategory_ids FROM menu_items"
	var (
		conds []string
		args  []any
	)
	if opts.StoreSlug != "" {
		conds = append(conds, "store_slug = ?")
		args = append(args, opts.StoreSlug)
	}
	if opts.AvailableOnly {
		conds = append(conds, "is_available = 1")
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY store_slug, category, name"

	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			desc, image sql.NullString
			subIDs      sql.NullString
			price       sql.NullFloat64
			available   int
		)
		if err := rows.Scan(&e.StoreSlug, &e.Category, &e.ItemID, &e.Name, &e.Slug, &desc, &price, &image, &available, &subIDs); err != nil {
			return nil, err
		}
		e.Description = desc.String
		e.Image = image.String
		e.SubcategoryIDs = subIDs.String
		e.IsAvailable = available == 1
		if price.Valid {
			v := price.Float64
			e.Price = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func identityKey(category string, itemID int64) string {
	return category + "\x00" + strconv.FormatInt(itemID, 10)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatEqual(stored sql.NullFloat64, v *float64) bool {
	if v == nil {
		return !stored.Valid
	}
	return stored.Valid && stored.Float64 == *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
