package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/Houeta/price-refresh/internal/models"
)

const maxReportedErrors = 5

func formatPrice(item models.TrackedItem) string {
	if item.CurrencyCode == "" {
		return "no price yet"
	}
	return fmt.Sprintf("%s %s", item.LastKnownPriceNative.StringFixed(2), item.CurrencyCode)
}

func formatItems(items []models.TrackedItem) string {
	if len(items) == 0 {
		return "You are not tracking anything yet. Use /track <url> [name]."
	}

	var sb strings.Builder
	sb.WriteString("Your tracked items:\n")
	for i, item := range items {
		fmt.Fprintf(&sb, "\n%d. %s - %s", i+1, item.Name, formatPrice(item))
	}

	return sb.String()
}

func formatHistory(item models.TrackedItem, entries []models.PriceHistoryEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("%s has no recorded prices yet.", item.Name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Price history of %s:\n", item.Name)
	for _, e := range entries {
		fmt.Fprintf(&sb, "\n%s  %s %s",
			e.RecordedAt.UTC().Format("2006-01-02 15:04"), e.PriceNative.StringFixed(2), e.CurrencyCode)
	}

	return sb.String()
}

func formatQuota(report models.QuotaReport) string {
	text := fmt.Sprintf("Used %d of %d tracking slots, %d remaining.", report.Used, report.Limit, report.Remaining)
	if report.Exceeded {
		text += "\nYour quota is exhausted."
	}
	return text
}

func formatSummary(s *models.RunSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Price refresh finished in %s\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Second))
	fmt.Fprintf(&sb, "Items: %d (%d unique URLs)\n", s.TotalItems, s.UniqueURLs)
	fmt.Fprintf(&sb, "Updated: %d, unchanged: %d, failed: %d", s.Updated, s.Skipped, s.Failed)

	if len(s.Errors) > 0 {
		sb.WriteString("\n\nErrors:")
		for i, msg := range s.Errors {
			if i == maxReportedErrors {
				fmt.Fprintf(&sb, "\n...and %d more", len(s.Errors)-maxReportedErrors)
				break
			}
			fmt.Fprintf(&sb, "\n- %s", msg)
		}
	}

	return sb.String()
}
