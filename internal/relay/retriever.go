package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud-storage-bot/internal/shared/metrics"
	"cloud-storage-bot/internal/shared/telemetry"
)

const (
	defaultDownloadTimeout = 60 * time.Second
	defaultRelayTimeout    = 30 * time.Second
	defaultContentType     = "application/octet-stream"
)

// Retriever serves stored files back through the origin channel, either by
// proxying bytes (Download) or by re-sending them into a chat (Relay).
type Retriever struct {
	Origin          Origin
	HTTP            *http.Client
	Cache           *ResolveCache
	DownloadTimeout time.Duration
	RelayTimeout    time.Duration
}

// Download is an open upstream body. The caller must Close it.
type Download struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	FileName      string
}

// Download resolves originID and opens the upstream byte stream. Cancelling
// ctx aborts the fetch; the whole transfer is bounded by DownloadTimeout.
func (r *Retriever) Download(ctx context.Context, originID, displayName string) (*Download, error) {
	originID = strings.TrimSpace(originID)
	if originID == "" {
		return nil, fmt.Errorf("%w: file_id required", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, durationOr(r.DownloadTimeout, defaultDownloadTimeout))
	dl, err := r.download(ctx, originID, displayName)
	if err != nil {
		cancel()
		metrics.IncDownload(downloadResult(err))
		return nil, err
	}
	dl.Body = &cancelOnClose{ReadCloser: dl.Body, cancel: cancel}
	metrics.IncDownload(metrics.ResultOK)
	return dl, nil
}

func (r *Retriever) download(ctx context.Context, originID, displayName string) (*Download, error) {
	fileURL, cached := r.Cache.get(originID)
	if !cached {
		var err error
		fileURL, err = r.Origin.ResolveFile(ctx, originID)
		if err != nil {
			if isTooLarge(err) {
				return nil, fmt.Errorf("%w: %v", ErrFileTooLarge, err)
			}
			return nil, fmt.Errorf("resolve file: %v", redactURL(err))
		}
		r.Cache.add(originID, fileURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		r.Cache.forget(originID)
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstreamFetchFailed, err)
	}
	resp, err := r.httpClient().Do(req)
	if err != nil {
		r.Cache.forget(originID)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetchFailed, redactURL(err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		r.Cache.forget(originID)
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamFetchFailed, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	return &Download{
		Body:          resp.Body,
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		FileName:      displayName,
	}, nil
}

// Relay delivers originID into chatID, probing DispatchOrder until one method
// succeeds. Per-method failures are logged and skipped; once issued, a
// dispatch is not cancelled by the caller going away. A dispatch cut off by
// RelayTimeout may still be delivered by the origin afterwards.
func (r *Retriever) Relay(ctx context.Context, originID string, chatID int64) (Kind, error) {
	originID = strings.TrimSpace(originID)
	if originID == "" || chatID == 0 {
		return "", fmt.Errorf("%w: file_id and chat_id required", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), durationOr(r.RelayTimeout, defaultRelayTimeout))
	defer cancel()

	var lastErr error
	for _, kind := range DispatchOrder {
		if ctx.Err() != nil {
			break
		}
		err := r.Origin.Dispatch(ctx, kind, chatID, originID)
		if err == nil {
			metrics.IncDispatchAttempt(string(kind), metrics.ResultOK)
			telemetry.Info("relay.sent", map[string]any{
				"file_id": originID,
				"chat_id": chatID,
				"kind":    kind,
			})
			return kind, nil
		}
		lastErr = err
		metrics.IncDispatchAttempt(string(kind), metrics.ResultError)
		telemetry.Warn("relay.attempt.failed", map[string]any{
			"file_id": originID,
			"chat_id": chatID,
			"kind":    kind,
			"err":     redactURL(err),
		})
	}

	if lastErr == nil {
		lastErr = ctx.Err()
	}
	return "", fmt.Errorf("%w: %v", ErrRelayFailed, redactURL(lastErr))
}

func (r *Retriever) httpClient() *http.Client {
	if r.HTTP != nil {
		return r.HTTP
	}
	return http.DefaultClient
}

func isTooLarge(err error) bool {
	if errors.Is(err, ErrFileTooLarge) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "file is too big")
}

func downloadResult(err error) string {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return metrics.ResultTooBig
	case errors.Is(err, ErrInvalidInput):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

// redactURL drops the request URL from transport errors; origin file URLs embed credentials.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
