package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cloud-storage-bot/internal/files"
	"cloud-storage-bot/internal/relay"
	"cloud-storage-bot/internal/shared/telemetry"
)

const (
	defaultWorkers         = 8
	defaultShutdownTimeout = 15 * time.Second
	defaultUpdateTimeout   = 2 * time.Minute
)

// Messenger sends and edits chat messages.
type Messenger interface {
	Reply(ctx context.Context, chatID int64, html string) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, html string) error
	SetMenuButton(ctx context.Context, chatID int64, text, url string) error
}

// Ingester persists inbound file payloads.
type Ingester interface {
	Ingest(ctx context.Context, chatID string, p files.Payload) (files.FileRecord, error)
}

// Relayer re-sends a stored file into a chat.
type Relayer interface {
	Relay(ctx context.Context, originID string, chatID int64) (relay.Kind, error)
}

// Bot handles inbound updates with a bounded pool of workers.
type Bot struct {
	Messenger       Messenger
	Ingester        Ingester
	Relayer         Relayer
	WebAppURL       string
	Workers         int
	ShutdownTimeout time.Duration
	// UpdateTimeout bounds the handling of a single update.
	UpdateTimeout time.Duration

	running atomic.Bool
}

// Running reports whether the update loop is active.
func (b *Bot) Running() bool {
	return b != nil && b.running.Load()
}

// Run long-polls the client until ctx is cancelled.
func (b *Bot) Run(ctx context.Context, c *Client) error {
	updates := c.Updates()
	stop := context.AfterFunc(ctx, c.Stop)
	defer stop()
	return b.Serve(ctx, updates)
}

// Serve dispatches updates to workers until ctx is cancelled or updates is
// closed, then waits up to ShutdownTimeout for in-flight handlers.
func (b *Bot) Serve(ctx context.Context, updates <-chan tgbotapi.Update) error {
	b.running.Store(true)
	defer b.running.Store(false)

	workers := b.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	telemetry.Info("bot.started", map[string]any{"workers": workers})

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case update, ok := <-updates:
			if !ok {
				break loop
			}
			select {
			case <-ctx.Done():
				break loop
			case sem <- struct{}{}:
			}
			wg.Add(1)
			go func(u tgbotapi.Update) {
				defer wg.Done()
				defer func() { <-sem }()
				b.handleUpdate(ctx, u)
			}(update)
		}
	}

	timeout := b.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(timeout):
		telemetry.Warn("bot.shutdown.timeout", map[string]any{"timeout": timeout.String()})
	}
	telemetry.Info("bot.stopped", nil)
	return nil
}

func (b *Bot) handleUpdate(parent context.Context, u tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("bot.update.panic", map[string]any{
				"update_id": u.UpdateID,
				"panic":     rec,
			})
		}
	}()

	msg := u.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	timeout := b.UpdateTimeout
	if timeout <= 0 {
		timeout = defaultUpdateTimeout
	}
	// In-flight handlers finish their replies even after shutdown starts.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), timeout)
	defer cancel()

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		b.handleStart(ctx, msg)
	case msg.WebAppData != nil:
		b.handleWebAppData(ctx, msg)
	default:
		if p, ok := PayloadFromMessage(msg); ok {
			b.handleFile(ctx, msg, p)
		}
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.WebAppURL != "" {
		if err := b.Messenger.SetMenuButton(ctx, chatID, menuButtonText, b.WebAppURL); err != nil {
			telemetry.Warn("bot.menu_button.failed", map[string]any{"chat_id": chatID, "err": err})
		}
	}
	b.reply(ctx, chatID, msgWelcome)
}

func (b *Bot) handleFile(ctx context.Context, msg *tgbotapi.Message, p files.Payload) {
	chatID := msg.Chat.ID
	progressID, err := b.Messenger.Reply(ctx, chatID, msgSaving)
	if err != nil {
		telemetry.Warn("bot.reply.failed", map[string]any{"chat_id": chatID, "err": err})
	}

	rec, err := b.Ingester.Ingest(ctx, strconv.FormatInt(chatID, 10), p)
	var text string
	switch {
	case err == nil:
		text = savedMessage(rec)
	case errors.Is(err, files.ErrUnrecognizedPayload):
		text = msgUnprocessed
	default:
		text = saveFailedMessage(err)
	}
	b.editOrReply(ctx, chatID, progressID, text)
}

func (b *Bot) handleWebAppData(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	data := strings.TrimSpace(msg.WebAppData.Data)
	switch data {
	case "":
		b.reply(ctx, chatID, msgNoData)
	case uploadMarker:
		b.reply(ctx, chatID, msgUploadHint)
	default:
		if _, err := b.Relayer.Relay(ctx, data, chatID); err != nil {
			b.reply(ctx, chatID, msgRelayFailed)
		}
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.Messenger.Reply(ctx, chatID, text); err != nil {
		telemetry.Warn("bot.reply.failed", map[string]any{"chat_id": chatID, "err": err})
	}
}

// editOrReply edits the progress message, or sends a fresh one when the
// progress message could not be posted.
func (b *Bot) editOrReply(ctx context.Context, chatID int64, messageID int, text string) {
	if messageID == 0 {
		b.reply(ctx, chatID, text)
		return
	}
	if err := b.Messenger.Edit(ctx, chatID, messageID, text); err != nil {
		telemetry.Warn("bot.edit.failed", map[string]any{"chat_id": chatID, "message_id": messageID, "err": err})
	}
}
