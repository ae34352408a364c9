package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Houeta/price-refresh/internal/models"
	"github.com/Houeta/price-refresh/internal/repository"
)

const itemColumns = `id, owner_id, COALESCE(product_id, ''), name, url, price_native, price_base, currency, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, item *models.TrackedItem) error {
	return row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.ProductID,
		&item.Name,
		&item.URL,
		&item.LastKnownPriceNative,
		&item.LastKnownPriceBase,
		&item.CurrencyCode,
		&item.UpdatedAt,
	)
}

// ListTrackedWithURL returns all tracked items that have a non-blank URL.
func (r *Repository) ListTrackedWithURL(ctx context.Context) ([]models.TrackedItem, error) {
	const opn = "repository.sqlite.ListTrackedWithURL"

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM tracked_items WHERE TRIM(url) <> '' ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get tracked items: %w", opn, err)
	}
	defer rows.Close()

	var items []models.TrackedItem
	for rows.Next() {
		var item models.TrackedItem
		if err = scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%s: failed to scan tracked item: %w", opn, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return items, nil
}

// RecordPrice appends a history entry and updates the item's price fields in one transaction,
// so a history row never exists without the matching item update.
func (r *Repository) RecordPrice(ctx context.Context, entry models.PriceHistoryEntry) error {
	const opn = "repository.sqlite.RecordPrice"

	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // returns sql.ErrTxDone after a successful commit

	_, err = tx.ExecContext(ctx,
		"INSERT INTO price_history (tracked_item_id, price_native, currency, price_base, recorded_at) VALUES (?, ?, ?, ?, ?)",
		entry.TrackedItemID, entry.PriceNative, entry.CurrencyCode, entry.PriceBase, entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to append price history: %w", opn, err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE tracked_items SET price_native = ?, price_base = ?, currency = ?, updated_at = ? WHERE id = ?",
		entry.PriceNative, entry.PriceBase, entry.CurrencyCode, entry.RecordedAt, entry.TrackedItemID,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update tracked item: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %s: %w", opn, entry.TrackedItemID, repository.ErrItemNotFound)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// AddTrackedItem stores a new product grouping with its tracked item and charges one quota slot.
// The slot is only taken while quota_used is below quota_limit, so concurrent admissions
// cannot overshoot the limit.
func (r *Repository) AddTrackedItem(ctx context.Context, item models.TrackedItem) error {
	const opn = "repository.sqlite.AddTrackedItem"

	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // returns sql.ErrTxDone after a successful commit

	res, err := tx.ExecContext(ctx,
		"UPDATE owners SET quota_used = quota_used + 1 WHERE id = ? AND quota_used < quota_limit", item.OwnerID)
	if err != nil {
		return fmt.Errorf("%s: failed to charge quota: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		var exists int
		err = tx.QueryRowContext(ctx, "SELECT 1 FROM owners WHERE id = ?", item.OwnerID).Scan(&exists)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("%s: %s: %w", opn, item.OwnerID, repository.ErrOwnerNotFound)
		case err != nil:
			return fmt.Errorf("%s: failed to look up owner: %w", opn, err)
		}
		return fmt.Errorf("%s: %s: %w", opn, item.OwnerID, repository.ErrQuotaExceeded)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO products (id, owner_id, name) VALUES (?, ?, ?)",
		item.ProductID, item.OwnerID, item.Name,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to insert product: %w", opn, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tracked_items (id, owner_id, product_id, name, url, price_native, price_base, currency, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.ProductID, item.Name, item.URL,
		item.LastKnownPriceNative, item.LastKnownPriceBase, item.CurrencyCode, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to insert tracked item: %w", opn, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// ListOwnerItems returns the owner's tracked items in the order they were added.
func (r *Repository) ListOwnerItems(ctx context.Context, ownerID string) ([]models.TrackedItem, error) {
	const opn = "repository.sqlite.ListOwnerItems"

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM tracked_items WHERE owner_id = ? ORDER BY rowid", ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get tracked items: %w", opn, err)
	}
	defer rows.Close()

	var items []models.TrackedItem
	for rows.Next() {
		var item models.TrackedItem
		if err = scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%s: failed to scan tracked item: %w", opn, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return items, nil
}

// ListHistory returns up to limit history entries of an item, newest first.
func (r *Repository) ListHistory(ctx context.Context, itemID string, limit int) ([]models.PriceHistoryEntry, error) {
	const opn = "repository.sqlite.ListHistory"

	rows, err := r.db.QueryContext(ctx,
		`SELECT tracked_item_id, price_native, currency, price_base, recorded_at
		FROM price_history WHERE tracked_item_id = ? ORDER BY recorded_at DESC, id DESC LIMIT ?`,
		itemID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get price history: %w", opn, err)
	}
	defer rows.Close()

	var entries []models.PriceHistoryEntry
	for rows.Next() {
		var e models.PriceHistoryEntry
		if err = rows.Scan(&e.TrackedItemID, &e.PriceNative, &e.CurrencyCode, &e.PriceBase, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan history entry: %w", opn, err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return entries, nil
}
