package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Houeta/price-refresh/internal/models"
	"github.com/Houeta/price-refresh/internal/repository"
)

// EnsureOwner creates the owner with the given quota limit unless it already exists.
func (r *Repository) EnsureOwner(ctx context.Context, ownerID string, quotaLimit int) error {
	const opn = "repository.sqlite.EnsureOwner"
	_, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO owners (id, quota_limit) VALUES (?, ?)", ownerID, quotaLimit)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// CountGroupedItems counts the owner's items that have joined a product grouping.
func (r *Repository) CountGroupedItems(ctx context.Context, ownerID string) (int, error) {
	const opn = "repository.sqlite.CountGroupedItems"

	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tracked_items WHERE owner_id = ? AND COALESCE(product_id, '') <> ''",
		ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	return count, nil
}

// GetQuota returns the stored quota limit and usage counter of the owner.
func (r *Repository) GetQuota(ctx context.Context, ownerID string) (models.Quota, error) {
	const opn = "repository.sqlite.GetQuota"

	var q models.Quota
	err := r.db.QueryRowContext(ctx, "SELECT quota_limit, quota_used FROM owners WHERE id = ?", ownerID).
		Scan(&q.Limit, &q.Used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quota{}, repository.ErrOwnerNotFound
		}
		return models.Quota{}, fmt.Errorf("%s: %w", opn, err)
	}

	return q, nil
}

// SetQuotaUsed raises the stored usage counter to used. A lower value leaves the row untouched,
// which keeps the counter monotonic even when two reconciliations race.
func (r *Repository) SetQuotaUsed(ctx context.Context, ownerID string, used int) error {
	const opn = "repository.sqlite.SetQuotaUsed"
	_, err := r.db.ExecContext(ctx,
		"UPDATE owners SET quota_used = ? WHERE id = ? AND quota_used < ?",
		used, ownerID, used,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}
