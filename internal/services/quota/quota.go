package quota

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Houeta/price-refresh/internal/models"
	"github.com/Houeta/price-refresh/internal/repository/sqlite"
)

// Reconciler answers quota queries, correcting the stored usage counter upward when it
// has drifted below the number of slots actually in use.
type Reconciler struct {
	log  *slog.Logger
	repo sqlite.QuotaRepository
}

// NewReconciler creates a new Reconciler instance.
func NewReconciler(log *slog.Logger, repo sqlite.QuotaRepository) *Reconciler {
	return &Reconciler{log: log, repo: repo}
}

// GetQuota returns the owner's quota report. The stored counter is raised to the ground
// truth when it is lower and left untouched otherwise: freeing a slot never refunds quota.
func (r *Reconciler) GetQuota(ctx context.Context, ownerID string) (models.QuotaReport, error) {
	const opn = "quota.GetQuota"
	log := r.log.With("op", opn, "owner", ownerID)

	stored, err := r.repo.GetQuota(ctx, ownerID)
	if err != nil {
		return models.QuotaReport{}, fmt.Errorf("%s: failed to get stored quota: %w", opn, err)
	}

	groundTruth, err := r.repo.CountGroupedItems(ctx, ownerID)
	if err != nil {
		return models.QuotaReport{}, fmt.Errorf("%s: failed to count grouped items: %w", opn, err)
	}

	used := stored.Used
	if groundTruth > used {
		log.InfoContext(ctx, "Correcting quota drift", "stored", used, "ground_truth", groundTruth)
		if err = r.repo.SetQuotaUsed(ctx, ownerID, groundTruth); err != nil {
			// The read still reports the corrected value; the next read retries the write.
			log.WarnContext(ctx, "Failed to persist corrected quota", "error", err)
		}
		used = groundTruth
	}

	return report(stored.Limit, used), nil
}

func report(limit, used int) models.QuotaReport {
	used = max(used, 0)
	return models.QuotaReport{
		Limit:     limit,
		Used:      used,
		Remaining: max(limit-used, 0),
		Exceeded:  used >= limit,
	}
}
