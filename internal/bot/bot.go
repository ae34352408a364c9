package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/price-refresh/internal/models"
	"github.com/Houeta/price-refresh/internal/repository/sqlite"
	"github.com/Houeta/price-refresh/internal/services/refresher"
	"gopkg.in/telebot.v4"
)

// Bot contains the bot API instance and other information.
type Bot struct {
	bot       API
	log       *slog.Logger
	tracker   Tracker
	quota     QuotaReader
	refresher refresher.Interface
	subs      sqlite.SubscriberRepository
	admins    map[int64]struct{}
}

// Services are the application components the bot commands talk to.
type Services struct {
	Tracker     Tracker
	Quota       QuotaReader
	Refresher   refresher.Interface
	Subscribers sqlite.SubscriberRepository
	// AdminIDs are the Telegram users allowed to run global commands: /refresh and /subscribe.
	AdminIDs []int64
}

func NewBot(log *slog.Logger, token string, poller time.Duration, services Services) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on acount", "account", bot.Me.Username)

	botInstance := newBot(bot, log, services)

	botInstance.registerRoutes()

	return botInstance, nil
}

func newBot(api API, log *slog.Logger, services Services) *Bot {
	admins := make(map[int64]struct{}, len(services.AdminIDs))
	for _, id := range services.AdminIDs {
		admins[id] = struct{}{}
	}
	if len(admins) == 0 {
		log.Warn("No bot administrators configured, /refresh and /subscribe are disabled")
	}

	return &Bot{
		bot:       api,
		log:       log,
		tracker:   services.Tracker,
		quota:     services.Quota,
		refresher: services.Refresher,
		subs:      services.Subscribers,
		admins:    admins,
	}
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// NotifyRunSummary sends the summary of a finished refresh run to every subscribed chat.
// Delivery keeps going past a failed chat; all failures are returned joined.
func (b *Bot) NotifyRunSummary(ctx context.Context, summary *models.RunSummary) error {
	const opn = "bot.NotifyRunSummary"
	log := b.log.With("op", opn)

	chats, err := b.subs.GetSubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribers: %w", opn, err)
	}

	text := formatSummary(summary)

	var errs []error
	for _, chatID := range chats {
		if _, err = b.bot.Send(&telebot.Chat{ID: chatID}, text); err != nil {
			log.WarnContext(ctx, "Failed to deliver run summary", "chat", chatID, "error", err)
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", opn, errors.Join(errs...))
	}

	log.DebugContext(ctx, "Run summary delivered", "chats", len(chats))

	return nil
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	// Public routes.
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/help", b.startHandler)
	b.bot.Handle("/track", b.trackHandler)
	b.bot.Handle("/list", b.listHandler)
	b.bot.Handle("/history", b.historyHandler)
	b.bot.Handle("/quota", b.quotaHandler)
	b.bot.Handle("/unsubscribe", b.unsubscribeHandler)

	// Run summaries span every owner's items.
	b.bot.Handle("/refresh", b.refreshHandler, b.adminOnly)
	b.bot.Handle("/subscribe", b.subscribeHandler, b.adminOnly)
}

// adminOnly rejects senders that are not configured administrators.
func (b *Bot) adminOnly(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(ctx telebot.Context) error {
		sender := ctx.Sender()
		if sender != nil {
			if _, ok := b.admins[sender.ID]; ok {
				return next(ctx)
			}
		}

		b.log.Warn("Rejected admin command", "sender", senderID(sender), "text", ctx.Text())

		return ctx.Send("This command is available to administrators only.")
	}
}

func senderID(u *telebot.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
