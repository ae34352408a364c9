package sqlite_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Houeta/price-refresh/internal/models"
	"github.com/Houeta/price-refresh/internal/repository"
	"github.com/Houeta/price-refresh/internal/repository/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Integration Tests (using a real temporary database)
// =============================================================================

// newTestDB is a helper function that creates a temporary database for a test.
func newTestDB(t *testing.T) *sqlite.Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := sqlite.NewRepository(t.Context(), logger, dbPath)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		if err = repo.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return repo
}

// newMockedRepo creates a repository with a mocked database connection for testing failures.
func newMockedRepo(t *testing.T) (*sqlite.Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := sqlite.NewForTest(mockDB)

	t.Cleanup(func() { mockDB.Close() })

	return repo, mock
}

func newItem(id, owner, url string) models.TrackedItem {
	return models.TrackedItem{
		ID:        id,
		OwnerID:   owner,
		ProductID: "product-" + id,
		Name:      "Item " + id,
		URL:       url,
		UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// TestRepository_Integration_RefreshLifecycle walks the repository through the
// operations a refresh run performs against a real SQLite database.
func TestRepository_Integration_RefreshLifecycle(t *testing.T) {
	repo := newTestDB(t)
	ctx := t.Context()

	require.NoError(t, repo.EnsureOwner(ctx, "owner-1", 5))
	require.NoError(t, repo.AddTrackedItem(ctx, newItem("a", "owner-1", "https://a.com/p")))
	require.NoError(t, repo.AddTrackedItem(ctx, newItem("b", "owner-1", "http://www.a.com/p/")))

	// An item without a URL and without a product grouping.
	_, err := repo.DB().ExecContext(ctx,
		"INSERT INTO tracked_items (id, owner_id, url) VALUES ('blank', 'owner-1', '   ')")
	require.NoError(t, err)

	t.Run("list_excludes_blank_urls", func(t *testing.T) {
		items, err := repo.ListTrackedWithURL(ctx)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].ID)
		assert.Equal(t, "b", items[1].ID)
		assert.Equal(t, "product-a", items[0].ProductID)
		assert.True(t, items[0].LastKnownPriceBase.IsZero())
	})

	recordedAt := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	entry := models.PriceHistoryEntry{
		TrackedItemID: "a",
		PriceNative:   decimal.RequireFromString("12.50"),
		CurrencyCode:  "USD",
		PriceBase:     decimal.RequireFromString("1040.63"),
		RecordedAt:    recordedAt,
	}

	t.Run("record_price_updates_item_and_history", func(t *testing.T) {
		require.NoError(t, repo.RecordPrice(ctx, entry))

		items, err := repo.ListOwnerItems(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.True(t, entry.PriceNative.Equal(items[0].LastKnownPriceNative))
		assert.True(t, entry.PriceBase.Equal(items[0].LastKnownPriceBase))
		assert.Equal(t, "USD", items[0].CurrencyCode)
		assert.WithinDuration(t, recordedAt, items[0].UpdatedAt, time.Second)

		history, err := repo.ListHistory(ctx, "a", 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.True(t, entry.PriceBase.Equal(history[0].PriceBase))
		assert.Equal(t, "USD", history[0].CurrencyCode)
	})

	t.Run("record_price_for_missing_item_leaves_no_history", func(t *testing.T) {
		missing := entry
		missing.TrackedItemID = "ghost"

		err := repo.RecordPrice(ctx, missing)
		require.ErrorIs(t, err, repository.ErrItemNotFound)

		history, err := repo.ListHistory(ctx, "ghost", 10)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("history_is_newest_first_and_limited", func(t *testing.T) {
		later := entry
		later.PriceBase = decimal.RequireFromString("999")
		later.RecordedAt = recordedAt.Add(24 * time.Hour)
		require.NoError(t, repo.RecordPrice(ctx, later))

		history, err := repo.ListHistory(ctx, "a", 1)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.True(t, later.PriceBase.Equal(history[0].PriceBase))
	})

	t.Run("subscriptions", func(t *testing.T) {
		require.NoError(t, repo.SubscribeChat(ctx, 42))
		require.NoError(t, repo.SubscribeChat(ctx, 42))
		require.NoError(t, repo.SubscribeChat(ctx, 7))
		require.NoError(t, repo.UnsubscribeChat(ctx, 42))

		chats, err := repo.GetSubscribedChats(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{7}, chats)
	})
}

func TestRepository_AddTrackedItem_UnknownOwner(t *testing.T) {
	repo := newTestDB(t)

	err := repo.AddTrackedItem(t.Context(), newItem("a", "nobody", "https://a.com"))

	require.ErrorIs(t, err, repository.ErrOwnerNotFound)

	items, err := repo.ListTrackedWithURL(t.Context())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepository_AddTrackedItem_QuotaLimit(t *testing.T) {
	repo := newTestDB(t)
	ctx := t.Context()

	require.NoError(t, repo.EnsureOwner(ctx, "owner-1", 1))
	require.NoError(t, repo.AddTrackedItem(ctx, newItem("a", "owner-1", "https://a.com/p")))

	err := repo.AddTrackedItem(ctx, newItem("b", "owner-1", "https://b.com/p"))
	require.ErrorIs(t, err, repository.ErrQuotaExceeded)

	items, err := repo.ListOwnerItems(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	quota, err := repo.GetQuota(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, quota.Used)
}

func TestRepository_AddTrackedItem_ConcurrentAdmissionsRespectLimit(t *testing.T) {
	repo := newTestDB(t)
	ctx := t.Context()

	const limit = 3
	const attempts = 10
	require.NoError(t, repo.EnsureOwner(ctx, "owner-1", limit))

	var (
		wg       sync.WaitGroup
		admitted atomic.Int32
		rejected atomic.Int32
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("item-%d", i)
			err := repo.AddTrackedItem(ctx, newItem(id, "owner-1", "https://a.com/"+id))
			switch {
			case err == nil:
				admitted.Add(1)
			case errors.Is(err, repository.ErrQuotaExceeded):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, limit, admitted.Load())
	assert.EqualValues(t, attempts-limit, rejected.Load())

	items, err := repo.ListOwnerItems(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, items, limit)

	quota, err := repo.GetQuota(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, limit, quota.Used)
}

// =============================================================================
// Unit Tests (using sqlmock for failure scenarios)
// =============================================================================

func TestRepository_ListTrackedWithURL_Failures(t *testing.T) {
	ctx := t.Context()
	columns := []string{"id", "owner_id", "product_id", "name", "url", "price_native", "price_base", "currency", "updated_at"}

	t.Run("error_on_query", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM tracked_items").WillReturnError(assert.AnError)

		_, err := repo.ListTrackedWithURL(ctx)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "repository.sqlite.ListTrackedWithURL")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_scan", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		rows := sqlmock.NewRows(columns).AddRow("a", "o", "", "n", "u", "not-a-number", "0", "INR", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM tracked_items").WillReturnRows(rows)

		_, err := repo.ListTrackedWithURL(ctx)

		require.ErrorContains(t, err, "failed to scan tracked item")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_rows", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		rows := sqlmock.NewRows(columns).
			AddRow("a", "o", "", "n", "u", "1", "1", "INR", time.Now()).
			RowError(0, assert.AnError)
		mock.ExpectQuery("SELECT (.+) FROM tracked_items").WillReturnRows(rows)

		_, err := repo.ListTrackedWithURL(ctx)

		require.ErrorContains(t, err, "rows iteration error")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_RecordPrice_Failures(t *testing.T) {
	ctx := t.Context()
	entry := models.PriceHistoryEntry{
		TrackedItemID: "a",
		PriceNative:   decimal.NewFromInt(999),
		CurrencyCode:  "INR",
		PriceBase:     decimal.NewFromInt(999),
		RecordedAt:    time.Now().UTC(),
	}

	t.Run("error_on_begin_transaction", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		expectedErr := errors.New("cannot start transaction")
		mock.ExpectBegin().WillReturnError(expectedErr)

		err := repo.RecordPrice(ctx, entry)

		require.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_history_insert", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO price_history").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.RecordPrice(ctx, entry)

		require.ErrorContains(t, err, "failed to append price history")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_item_update", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO price_history").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE tracked_items SET").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.RecordPrice(ctx, entry)

		require.ErrorContains(t, err, "failed to update tracked item")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_missing_item", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO price_history").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE tracked_items SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.RecordPrice(ctx, entry)

		require.ErrorIs(t, err, repository.ErrItemNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_commit", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO price_history").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE tracked_items SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		err := repo.RecordPrice(ctx, entry)

		require.ErrorContains(t, err, "failed to commit transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_AddTrackedItem_Failures(t *testing.T) {
	ctx := t.Context()
	item := newItem("a", "owner-1", "https://a.com")

	t.Run("error_on_quota_charge", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE owners SET quota_used").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.AddTrackedItem(ctx, item)

		require.ErrorContains(t, err, "failed to charge quota")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_missing_owner", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE owners SET quota_used").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT 1 FROM owners").WithArgs("owner-1").WillReturnRows(sqlmock.NewRows([]string{"1"}))
		mock.ExpectRollback()

		err := repo.AddTrackedItem(ctx, item)

		require.ErrorIs(t, err, repository.ErrOwnerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_full_quota", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE owners SET quota_used").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT 1 FROM owners").WithArgs("owner-1").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.AddTrackedItem(ctx, item)

		require.ErrorIs(t, err, repository.ErrQuotaExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_owner_lookup", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE owners SET quota_used").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT 1 FROM owners").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.AddTrackedItem(ctx, item)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to look up owner")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_product_insert", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE owners SET quota_used").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO products").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.AddTrackedItem(ctx, item)

		require.ErrorContains(t, err, "failed to insert product")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error_on_item_insert", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE owners SET quota_used").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO products").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO tracked_items").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.AddTrackedItem(ctx, item)

		require.ErrorContains(t, err, "failed to insert tracked item")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
