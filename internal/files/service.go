package files

import (
	"context"
	"errors"
	"fmt"

	"cloud-storage-bot/internal/shared/metrics"
	"cloud-storage-bot/internal/shared/telemetry"
)

// Service contains business logic for file records.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Ingest classifies an inbound payload and persists its metadata record.
// It fails with ErrUnrecognizedPayload when the payload has no file
// reference and with ErrPersistence when the store write fails.
func (s *Service) Ingest(ctx context.Context, chatID string, p Payload) (FileRecord, error) {
	desc, err := Describe(p)
	if err != nil {
		metrics.IncIngest("", metrics.ResultInvalid)
		return FileRecord{}, err
	}

	rec := FileRecord{
		OriginID:    desc.OriginID,
		FileName:    desc.FileName,
		FileSize:    desc.FileSize,
		MimeType:    desc.MimeType,
		Category:    Classify(desc.MimeType, desc.FileName),
		OwnerChatID: chatID,
	}

	saved, err := s.Repo.Save(ctx, rec)
	if err != nil {
		metrics.IncIngest(string(rec.Category), metrics.ResultError)
		telemetry.Error("ingest.save.failed", map[string]any{
			"chat_id":   chatID,
			"file_name": rec.FileName,
			"err":       err,
		})
		return FileRecord{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	metrics.IncIngest(string(saved.Category), metrics.ResultOK)
	telemetry.Info("ingest.saved", map[string]any{
		"id":        saved.ID,
		"chat_id":   chatID,
		"file_name": saved.FileName,
		"category":  saved.Category,
	})
	return saved, nil
}

// List returns all records, newest first.
func (s *Service) List(ctx context.Context) ([]FileRecord, error) {
	if s.Repo == nil {
		return nil, errors.New("files repo not configured")
	}
	return s.Repo.ListAll(ctx)
}
