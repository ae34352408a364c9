package sqlite

import (
	"context"

	"github.com/Houeta/price-refresh/internal/models"
)

// ItemRepository is the storage the refresh pipeline reads from and writes to.
type ItemRepository interface {
	// ListTrackedWithURL returns every tracked item with a non-blank URL in insertion order.
	ListTrackedWithURL(ctx context.Context) ([]models.TrackedItem, error)
	// RecordPrice appends entry to the price history and updates the item's price fields atomically.
	RecordPrice(ctx context.Context, entry models.PriceHistoryEntry) error
}

// QuotaRepository stores per-owner quota counters.
type QuotaRepository interface {
	CountGroupedItems(ctx context.Context, ownerID string) (int, error)
	GetQuota(ctx context.Context, ownerID string) (models.Quota, error)
	// SetQuotaUsed raises the stored counter to used. It never lowers it.
	SetQuotaUsed(ctx context.Context, ownerID string, used int) error
}

// TrackingRepository admits new tracked items and lists an owner's items.
type TrackingRepository interface {
	EnsureOwner(ctx context.Context, ownerID string, quotaLimit int) error
	AddTrackedItem(ctx context.Context, item models.TrackedItem) error
	ListOwnerItems(ctx context.Context, ownerID string) ([]models.TrackedItem, error)
	ListHistory(ctx context.Context, itemID string, limit int) ([]models.PriceHistoryEntry, error)
}

// SubscriberRepository keeps the chats that receive run summaries.
type SubscriberRepository interface {
	SubscribeChat(ctx context.Context, chatID int64) error
	UnsubscribeChat(ctx context.Context, chatID int64) error
	GetSubscribedChats(ctx context.Context) ([]int64, error)
}
