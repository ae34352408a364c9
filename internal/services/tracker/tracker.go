package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/price-refresh/internal/models"
	"github.com/Houeta/price-refresh/internal/repository"
	"github.com/Houeta/price-refresh/internal/repository/sqlite"
	"github.com/Houeta/price-refresh/internal/urlkey"
	"github.com/google/uuid"
)

var (
	// ErrEmptyURL is returned when a blank URL is submitted for tracking.
	ErrEmptyURL = errors.New("url must not be empty")
	// ErrQuotaExceeded is returned when the owner has no free tracking slot.
	ErrQuotaExceeded = repository.ErrQuotaExceeded
)

// QuotaReader reports an owner's reconciled quota.
type QuotaReader interface {
	GetQuota(ctx context.Context, ownerID string) (models.QuotaReport, error)
}

// Service admits new tracked items and lists existing ones.
type Service struct {
	log          *slog.Logger
	repo         sqlite.TrackingRepository
	quota        QuotaReader
	defaultLimit int
	now          func() time.Time
}

// NewService creates a new Service. defaultLimit is the quota given to owners on first contact.
func NewService(log *slog.Logger, repo sqlite.TrackingRepository, quota QuotaReader, defaultLimit int) *Service {
	return &Service{
		log:          log,
		repo:         repo,
		quota:        quota,
		defaultLimit: defaultLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Register makes sure the owner exists so quota queries can be answered.
func (s *Service) Register(ctx context.Context, ownerID string) error {
	const opn = "tracker.Register"
	if err := s.repo.EnsureOwner(ctx, ownerID, s.defaultLimit); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}
	return nil
}

// Track starts monitoring rawURL for the owner as a new product grouping.
func (s *Service) Track(ctx context.Context, ownerID, rawURL, name string) (models.TrackedItem, error) {
	const opn = "tracker.Track"
	log := s.log.With("op", opn, "owner", ownerID)

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return models.TrackedItem{}, ErrEmptyURL
	}

	if err := s.Register(ctx, ownerID); err != nil {
		return models.TrackedItem{}, fmt.Errorf("%s: %w", opn, err)
	}

	report, err := s.quota.GetQuota(ctx, ownerID)
	if err != nil {
		return models.TrackedItem{}, fmt.Errorf("%s: failed to get quota: %w", opn, err)
	}
	if report.Exceeded {
		return models.TrackedItem{}, fmt.Errorf("%w: %d of %d slots used", ErrQuotaExceeded, report.Used, report.Limit)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = urlkey.Canonicalize(rawURL)
	}

	item := models.TrackedItem{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ProductID: uuid.NewString(),
		Name:      name,
		URL:       rawURL,
		UpdatedAt: s.now(),
	}
	if err = s.repo.AddTrackedItem(ctx, item); err != nil {
		return models.TrackedItem{}, fmt.Errorf("%s: failed to add tracked item: %w", opn, err)
	}

	log.InfoContext(ctx, "Tracking new item", "item", item.ID, "url", rawURL)

	return item, nil
}

// List returns the owner's tracked items in the order they were added.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.TrackedItem, error) {
	const opn = "tracker.List"
	items, err := s.repo.ListOwnerItems(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	return items, nil
}

// History returns the item at the 1-based position of List together with its latest
// history entries.
func (s *Service) History(
	ctx context.Context,
	ownerID string,
	position, limit int,
) (models.TrackedItem, []models.PriceHistoryEntry, error) {
	const opn = "tracker.History"

	items, err := s.List(ctx, ownerID)
	if err != nil {
		return models.TrackedItem{}, nil, fmt.Errorf("%s: %w", opn, err)
	}
	if position < 1 || position > len(items) {
		return models.TrackedItem{}, nil, fmt.Errorf("%s: position %d: %w", opn, position, repository.ErrItemNotFound)
	}

	item := items[position-1]
	entries, err := s.repo.ListHistory(ctx, item.ID, limit)
	if err != nil {
		return models.TrackedItem{}, nil, fmt.Errorf("%s: %w", opn, err)
	}

	return item, entries, nil
}
