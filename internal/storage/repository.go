// Package storage is the SQLite adapter behind the store ports. One file
// on disk holds purchases and categories; schema changes go through
// embedded migrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pedidos/internal/core"
	"pedidos/internal/store"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreatePurchase(ctx context.Context, p core.Purchase) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (id, dish, restaurant, paid_cents, total_cents, date, time, category_id, is_event, is_alone, created_at, sync_status, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', 1)`,
		p.ID, p.Dish, p.Restaurant, p.Paid.Cents, p.Total.Cents,
		p.Date.Format(dateLayout), string(p.Time), p.CategoryID,
		boolToInt(p.IsEvent), boolToInt(p.IsAlone), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	slog.InfoContext(ctx, "Purchase saved",
		"id", p.ID,
		"dish", p.Dish,
		"paid_cents", p.Paid.Cents,
		"date", p.Date.Format(dateLayout))

	return nil
}

// UpdatePurchase rewrites the record, bumps its version and re-queues it
// for backup.
func (r *SQLiteRepository) UpdatePurchase(ctx context.Context, p core.Purchase) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE purchases
		SET dish = ?, restaurant = ?, paid_cents = ?, total_cents = ?, date = ?, time = ?,
		    category_id = ?, is_event = ?, is_alone = ?, sync_status = 'pending', version = version + 1
		WHERE id = ?`,
		p.Dish, p.Restaurant, p.Paid.Cents, p.Total.Cents,
		p.Date.Format(dateLayout), string(p.Time), p.CategoryID,
		boolToInt(p.IsEvent), boolToInt(p.IsAlone), p.ID)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeletePurchase(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetPurchase(ctx context.Context, id string) (core.Purchase, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, dish, restaurant, paid_cents, total_cents, date, time, category_id, is_event, is_alone, created_at
		FROM purchases WHERE id = ?`, id)
	p, err := scanPurchase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Purchase{}, store.ErrNotFound
	}
	if err != nil {
		return core.Purchase{}, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) ListPurchases(ctx context.Context) ([]core.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dish, restaurant, paid_cents, total_cents, date, time, category_id, is_event, is_alone, created_at
		FROM purchases ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []core.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, label, emoji, color, sort_order, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Label, c.Emoji, c.Color, c.Order, boolToInt(c.IsDefault), c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET label = ?, emoji = ?, color = ?, sort_order = ? WHERE id = ?`,
		c.Label, c.Emoji, c.Color, c.Order, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res)
}

// DeleteCategory refuses to remove seeded defaults.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	var isDefault int
	err := r.db.QueryRowContext(ctx, `SELECT is_default FROM categories WHERE id = ?`, id).Scan(&isDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if isDefault != 0 {
		return store.ErrDefaultCategory
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, label, emoji, color, sort_order, is_default, created_at
		FROM categories ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		var isDefault int
		if err := rows.Scan(&c.ID, &c.Label, &c.Emoji, &c.Color, &c.Order, &isDefault, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.IsDefault = isDefault != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

// EnsureDefaultCategories seeds the defaults inside a transaction so two
// concurrent startups cannot double-insert.
func (r *SQLiteRepository) EnsureDefaultCategories(ctx context.Context, nowMillis int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range core.DefaultCategories(nowMillis) {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, label, emoji, color, sort_order, is_default, created_at)
			VALUES (?, ?, ?, ?, ?, 1, ?)`,
			c.ID, c.Label, c.Emoji, c.Color, c.Order, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.InfoContext(ctx, "Default categories seeded")
	return nil
}

// PendingSyncPurchase is the minimal payload for backup queue messages.
type PendingSyncPurchase struct {
	ID        string
	Version   int64
	CreatedAt time.Time
}

// GetPendingSyncPurchases returns purchases waiting for backup, oldest
// first.
func (r *SQLiteRepository) GetPendingSyncPurchases(ctx context.Context, limit int) ([]PendingSyncPurchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, version, created_at FROM purchases
		WHERE sync_status IN ('pending', 'error')
		ORDER BY created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync purchases: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncPurchase
	for rows.Next() {
		var p PendingSyncPurchase
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Version, &createdAt); err != nil {
			return nil, fmt.Errorf("scan pending purchase: %w", err)
		}
		p.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced records a successful backup of the given version. A purchase
// updated after the message was published stays pending.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, version int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE purchases SET sync_status = 'synced' WHERE id = ? AND version = ?`, id, version)
	if err != nil {
		return fmt.Errorf("mark purchase synced: %w", err)
	}

	slog.InfoContext(ctx, "Purchase marked as synced", "id", id, "version", version)
	return nil
}

// MarkSyncError flags a purchase whose backup failed so the reconciler
// retries it.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE purchases SET sync_status = 'error' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark purchase sync error: %w", err)
	}

	slog.WarnContext(ctx, "Purchase marked with sync error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPurchase(row rowScanner) (core.Purchase, error) {
	var p core.Purchase
	var date, clock string
	var isEvent, isAlone int
	err := row.Scan(&p.ID, &p.Dish, &p.Restaurant, &p.Paid.Cents, &p.Total.Cents,
		&date, &clock, &p.CategoryID, &isEvent, &isAlone, &p.CreatedAt)
	if err != nil {
		return core.Purchase{}, err
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Purchase{}, fmt.Errorf("parse purchase date %q: %w", date, err)
	}
	p.Date = core.Date{Time: t}
	p.Time = core.ClockTime(clock)
	p.IsEvent = isEvent != 0
	p.IsAlone = isAlone != 0
	return p, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
