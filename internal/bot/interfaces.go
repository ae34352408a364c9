package bot

import (
	"context"

	"github.com/Houeta/price-refresh/internal/models"
	"gopkg.in/telebot.v4"
)

type API interface {
	// Handle lets you set the handler for some command name or one of the supported endpoints. It also applies middleware if such passed to the function.
	Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc)
	// Start brings bot into motion by consuming incoming updates (see Bot.Updates channel).
	Start()
	// Stop gracefully shuts the poller down.
	Stop()

	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Tracker manages an owner's tracked items.
type Tracker interface {
	Register(ctx context.Context, ownerID string) error
	Track(ctx context.Context, ownerID, rawURL, name string) (models.TrackedItem, error)
	List(ctx context.Context, ownerID string) ([]models.TrackedItem, error)
	History(ctx context.Context, ownerID string, position, limit int) (models.TrackedItem, []models.PriceHistoryEntry, error)
}

type QuotaReader interface {
	GetQuota(ctx context.Context, ownerID string) (models.QuotaReport, error)
}
