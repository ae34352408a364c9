package refresher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Houeta/price-refresh/internal/extractor"
	"github.com/Houeta/price-refresh/internal/models"
	"github.com/Houeta/price-refresh/internal/repository/sqlite"
	"github.com/Houeta/price-refresh/internal/urlkey"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// ErrRunInProgress is returned when a refresh is requested while another one is still running.
// The rejected call performs no work.
var ErrRunInProgress = errors.New("refresh run already in progress")

const (
	defaultConcurrency    = 4
	defaultExtractTimeout = 30 * time.Second
	defaultFallback       = "INR"
)

// Normalizer converts an amount in the given currency to the base currency.
type Normalizer interface {
	ToBase(amount decimal.Decimal, code string) (decimal.Decimal, error)
}

// Interface is implemented by Refresher; callers that trigger runs depend on it.
type Interface interface {
	// Run performs one complete refresh pass.
	Run(ctx context.Context) (*models.RunSummary, error)
}

// Options tune a Refresher. Zero values fall back to defaults.
type Options struct {
	Concurrency      int              // Concurrency is the number of URL groups refreshed at once.
	ExtractTimeout   time.Duration    // ExtractTimeout bounds every single extraction call.
	RunTimeout       time.Duration    // RunTimeout bounds a whole run; zero disables it.
	FallbackCurrency string           // FallbackCurrency is used when a page states no currency.
	Now              func() time.Time // Now stamps history entries and summaries.
}

// Refresher is an orchestrator that re-extracts prices of all tracked items, deduplicating
// extraction across items that share a canonical URL.
type Refresher struct {
	log        *slog.Logger
	extractor  extractor.Extractor
	normalizer Normalizer
	repo       sqlite.ItemRepository
	opts       Options
	now        func() time.Time
	running    atomic.Bool // running is the run-state token: false idle, true running.
}

// NewRefresher creates a new Refresher instance.
func NewRefresher(
	log *slog.Logger,
	ext extractor.Extractor,
	normalizer Normalizer,
	repo sqlite.ItemRepository,
	opts Options,
) *Refresher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = defaultExtractTimeout
	}
	if strings.TrimSpace(opts.FallbackCurrency) == "" {
		opts.FallbackCurrency = defaultFallback
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Refresher{
		log:        log,
		extractor:  ext,
		normalizer: normalizer,
		repo:       repo,
		opts:       opts,
		now:        opts.Now,
	}
}

// Running reports whether a run is currently active.
func (r *Refresher) Running() bool {
	return r.running.Load()
}

// Run performs one refresh pass. Extraction, normalization and persistence failures are
// recorded in the returned summary; an error is returned only when the run was rejected
// (ErrRunInProgress) or the tracked items could not be listed.
func (r *Refresher) Run(ctx context.Context) (*models.RunSummary, error) {
	const opn = "refresher.Run"
	log := r.log.With("op", opn)

	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	if r.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.RunTimeout)
		defer cancel()
	}

	// 1. Collect every item that has something to refresh.
	items, err := r.repo.ListTrackedWithURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list tracked items: %w", opn, err)
	}
	items = withURL(items)

	// 2. One group per canonical URL.
	groups := urlkey.Group(items)
	log.InfoContext(ctx, "Starting refresh run", "items", len(items), "unique_urls", len(groups))

	// 3. Refresh groups concurrently; the collector is the only shared state.
	acc := newCollector(len(items), len(groups), r.now())
	workers := pool.New().WithMaxGoroutines(r.opts.Concurrency)
	for _, group := range groups {
		workers.Go(func() {
			r.refreshGroup(ctx, log, group, acc)
		})
	}
	workers.Wait()

	summary := acc.summary(r.now())
	log.InfoContext(
		ctx,
		"Refresh run complete",
		"total",
		summary.TotalItems,
		"updated",
		summary.Updated,
		"skipped",
		summary.Skipped,
		"failed",
		summary.Failed,
		"duration",
		summary.FinishedAt.Sub(summary.StartedAt),
	)

	return summary, nil
}

// refreshGroup extracts the price once for the group and fans the result out to every member.
func (r *Refresher) refreshGroup(ctx context.Context, log *slog.Logger, group models.CanonicalURLGroup, acc *collector) {
	quote, err := r.extract(ctx, group.Representative().URL)
	if err != nil {
		log.WarnContext(ctx, "Extraction failed", "url", group.Key, "items", len(group.Members), "error", err)
		acc.groupFailed(fmt.Sprintf("extraction failed for %s (%d items): %v", group.Key, len(group.Members), err),
			len(group.Members))
		return
	}

	code := strings.ToUpper(strings.TrimSpace(quote.CurrencyOr(r.opts.FallbackCurrency)))
	priceBase, err := r.normalizer.ToBase(quote.Price, code)
	if err != nil {
		log.WarnContext(ctx, "Normalization failed", "url", group.Key, "currency", code, "error", err)
		acc.groupFailed(fmt.Sprintf("price normalization failed for %s (%d items): %v", group.Key, len(group.Members), err),
			len(group.Members))
		return
	}

	for _, member := range group.Members {
		if priceBase.Equal(member.LastKnownPriceBase) {
			acc.skipped()
			continue
		}

		entry := models.PriceHistoryEntry{
			TrackedItemID: member.ID,
			PriceNative:   quote.Price,
			CurrencyCode:  code,
			PriceBase:     priceBase,
			RecordedAt:    r.now(),
		}
		if err = r.repo.RecordPrice(ctx, entry); err != nil {
			log.ErrorContext(ctx, "Failed to record price", "item", member.ID, "error", err)
			acc.memberFailed(fmt.Sprintf("failed to record price for item %s: %v", member.ID, err))
			continue
		}

		log.DebugContext(ctx, "Price changed", "item", member.ID,
			"old", member.LastKnownPriceBase.String(), "new", priceBase.String())
		acc.updated()
	}
}

// extract calls the extractor bounded by the per-call timeout. The timeout holds even when
// the extractor ignores its context.
func (r *Refresher) extract(ctx context.Context, rawURL string) (models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.ExtractTimeout)
	defer cancel()

	type result struct {
		quote models.Quote
		err   error
	}
	done := make(chan result, 1)
	go func() {
		quote, err := r.extractor.Extract(ctx, rawURL)
		done <- result{quote: quote, err: err}
	}()

	select {
	case res := <-done:
		return res.quote, res.err
	case <-ctx.Done():
		return models.Quote{}, fmt.Errorf("extraction aborted: %w", ctx.Err())
	}
}

// withURL drops items whose URL is blank.
func withURL(items []models.TrackedItem) []models.TrackedItem {
	kept := items[:0:0]
	for _, item := range items {
		if strings.TrimSpace(item.URL) != "" {
			kept = append(kept, item)
		}
	}
	return kept
}
