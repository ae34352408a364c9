package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Houeta/price-refresh/internal/repository"
	"github.com/Houeta/price-refresh/internal/services/refresher"
	"github.com/Houeta/price-refresh/internal/services/tracker"
	"gopkg.in/telebot.v4"
)

const (
	handlerTimeout = 30 * time.Second
	historyLimit   = 10
)

const helpText = `Hello! I keep an eye on product prices for you.

/track <url> [name] - start tracking a product page
/list - show your tracked items
/history <n> - price history of item n from /list
/quota - show how many tracking slots you have left
/refresh - refresh all prices now
/subscribe - get a report after every refresh
/unsubscribe - stop the reports`

func ownerID(ctx telebot.Context) string {
	return strconv.FormatInt(ctx.Sender().ID, 10)
}

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if err := b.tracker.Register(reqCtx, ownerID(ctx)); err != nil {
		b.log.Error("Failed to register owner", "error", err)
	}

	if err := ctx.Send(helpText); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// trackHandler process command /track <url> [name].
func (b *Bot) trackHandler(ctx telebot.Context) error {
	args := ctx.Args()
	if len(args) == 0 {
		return ctx.Send("Usage: /track <url> [name]")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	item, err := b.tracker.Track(reqCtx, ownerID(ctx), args[0], strings.Join(args[1:], " "))
	switch {
	case errors.Is(err, tracker.ErrEmptyURL):
		return ctx.Send("Usage: /track <url> [name]")
	case errors.Is(err, tracker.ErrQuotaExceeded):
		return ctx.Send("You have used all your tracking slots. Check /quota.")
	case err != nil:
		b.log.Error("Failed to track item", "error", err)
		return ctx.Send("Failed to track the item, please try again later.")
	}

	return ctx.Send(fmt.Sprintf("Now tracking %q. The price will be fetched on the next refresh.", item.Name))
}

// listHandler process command /list.
func (b *Bot) listHandler(ctx telebot.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	items, err := b.tracker.List(reqCtx, ownerID(ctx))
	if err != nil {
		b.log.Error("Failed to list items", "error", err)
		return ctx.Send("Failed to load your items, please try again later.")
	}

	return ctx.Send(formatItems(items))
}

// historyHandler process command /history <n>.
func (b *Bot) historyHandler(ctx telebot.Context) error {
	args := ctx.Args()
	if len(args) != 1 {
		return ctx.Send("Usage: /history <n>, where n is the item number from /list")
	}

	position, err := strconv.Atoi(args[0])
	if err != nil {
		return ctx.Send("Usage: /history <n>, where n is the item number from /list")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	item, entries, err := b.tracker.History(reqCtx, ownerID(ctx), position, historyLimit)
	switch {
	case errors.Is(err, repository.ErrItemNotFound):
		return ctx.Send(fmt.Sprintf("There is no item number %d. Check /list.", position))
	case err != nil:
		b.log.Error("Failed to load history", "error", err)
		return ctx.Send("Failed to load the price history, please try again later.")
	}

	return ctx.Send(formatHistory(item, entries))
}

// quotaHandler process command /quota.
func (b *Bot) quotaHandler(ctx telebot.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	owner := ownerID(ctx)
	if err := b.tracker.Register(reqCtx, owner); err != nil {
		b.log.Error("Failed to register owner", "error", err)
		return ctx.Send("Failed to load your quota, please try again later.")
	}

	report, err := b.quota.GetQuota(reqCtx, owner)
	if err != nil {
		b.log.Error("Failed to get quota", "error", err)
		return ctx.Send("Failed to load your quota, please try again later.")
	}

	return ctx.Send(formatQuota(report))
}

// refreshHandler process command /refresh.
func (b *Bot) refreshHandler(ctx telebot.Context) error {
	if err := ctx.Send("Refreshing prices, this may take a while..."); err != nil {
		return fmt.Errorf("failed to send refresh notice: %w", err)
	}

	summary, err := b.refresher.Run(context.Background())
	switch {
	case errors.Is(err, refresher.ErrRunInProgress):
		return ctx.Send("A refresh is already running, try again when it finishes.")
	case err != nil:
		b.log.Error("Manual refresh failed", "error", err)
		return ctx.Send("Refresh failed, please try again later.")
	}

	return ctx.Send(formatSummary(summary))
}

// subscribeHandler process command /subscribe.
func (b *Bot) subscribeHandler(ctx telebot.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if err := b.subs.SubscribeChat(reqCtx, ctx.Chat().ID); err != nil {
		b.log.Error("Failed to subscribe chat", "chat", ctx.Chat().ID, "error", err)
		return ctx.Send("Failed to subscribe, please try again later.")
	}

	return ctx.Send("Subscribed. You will get a report after every refresh.")
}

// unsubscribeHandler process command /unsubscribe.
func (b *Bot) unsubscribeHandler(ctx telebot.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if err := b.subs.UnsubscribeChat(reqCtx, ctx.Chat().ID); err != nil {
		b.log.Error("Failed to unsubscribe chat", "chat", ctx.Chat().ID, "error", err)
		return ctx.Send("Failed to unsubscribe, please try again later.")
	}

	return ctx.Send("Unsubscribed.")
}
