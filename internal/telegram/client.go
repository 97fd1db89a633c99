package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cloud-storage-bot/internal/relay"
)

// API is the subset of *tgbotapi.BotAPI the service uses.
type API interface {
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Client adapts the Bot API to relay.Origin and to the bot's messaging needs.
type Client struct {
	api          API
	token        string
	fileEndpoint string
}

// NewClient wraps api. Resolved file URLs are built from token and
// tgbotapi.FileEndpoint.
func NewClient(api API, token string) *Client {
	return &Client{api: api, token: token, fileEndpoint: tgbotapi.FileEndpoint}
}

var (
	_ relay.Origin = (*Client)(nil)
	_ API          = (*tgbotapi.BotAPI)(nil)
)

// ResolveFile returns the direct download URL of fileID. The URL embeds the
// bot token and expires on the platform side after about an hour.
func (c *Client) ResolveFile(ctx context.Context, fileID string) (string, error) {
	f, err := call(ctx, func() (tgbotapi.File, error) {
		return c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	})
	if err != nil {
		return "", c.redact(err)
	}
	if f.FilePath == "" {
		return "", errors.New("telegram: empty file path")
	}
	return fmt.Sprintf(c.fileEndpoint, c.token, f.FilePath), nil
}

// Dispatch re-sends fileID into chatID with the method for kind.
func (c *Client) Dispatch(ctx context.Context, kind relay.Kind, chatID int64, fileID string) error {
	ref := tgbotapi.FileID(fileID)
	var msg tgbotapi.Chattable
	switch kind {
	case relay.KindDocument:
		msg = tgbotapi.NewDocument(chatID, ref)
	case relay.KindPhoto:
		msg = tgbotapi.NewPhoto(chatID, ref)
	case relay.KindVideo:
		msg = tgbotapi.NewVideo(chatID, ref)
	case relay.KindAudio:
		msg = tgbotapi.NewAudio(chatID, ref)
	default:
		return fmt.Errorf("telegram: unsupported dispatch kind %q", kind)
	}
	_, err := call(ctx, func() (tgbotapi.Message, error) {
		return c.api.Send(msg)
	})
	return c.redact(err)
}

// Reply sends an HTML message into chatID and returns its message id.
func (c *Client) Reply(ctx context.Context, chatID int64, html string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	sent, err := call(ctx, func() (tgbotapi.Message, error) {
		return c.api.Send(msg)
	})
	if err != nil {
		return 0, c.redact(err)
	}
	return sent.MessageID, nil
}

// Edit replaces the text of an earlier message.
func (c *Client) Edit(ctx context.Context, chatID int64, messageID int, html string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, html)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := call(ctx, func() (*tgbotapi.APIResponse, error) {
		return c.api.Request(edit)
	})
	return c.redact(err)
}

type menuButton struct {
	Type   string     `json:"type"`
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

// SetMenuButton points the chat's menu button at the web app.
func (c *Client) SetMenuButton(ctx context.Context, chatID int64, text, url string) error {
	params := tgbotapi.Params{}
	params.AddNonZero64("chat_id", chatID)
	if err := params.AddInterface("menu_button", menuButton{
		Type:   "web_app",
		Text:   text,
		WebApp: webAppInfo{URL: url},
	}); err != nil {
		return err
	}
	_, err := call(ctx, func() (*tgbotapi.APIResponse, error) {
		return c.api.MakeRequest("setChatMenuButton", params)
	})
	return c.redact(err)
}

// Updates starts long polling. Stop releases it.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60
	return c.api.GetUpdatesChan(cfg)
}

// Stop ends long polling started by Updates.
func (c *Client) Stop() {
	c.api.StopReceivingUpdates()
}

// redact strips the bot token from an API error. Transport errors carry the
// request URL, which embeds the token.
func (c *Client) redact(err error) error {
	if err == nil || c.token == "" || !strings.Contains(err.Error(), c.token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), c.token, "<redacted>"))
}

// call runs a blocking Bot API request and returns early when ctx ends.
// The request itself is bounded by the HTTP client timeout.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v: v, err: err}
	}()
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
