package files

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSaveReturnsDatabaseTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)
	fileSize := int64(1536)

	mock.ExpectQuery("INSERT INTO files").
		WithArgs(
			sqlmock.AnyArg(), // id
			"BQACAgIAAxkB",
			"report.pdf",
			fileSize,
			"application/pdf",
			"document",
			"100500",
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	rec, err := repo.Save(context.Background(), FileRecord{
		OriginID:    "BQACAgIAAxkB",
		FileName:    "report.pdf",
		FileSize:    &fileSize,
		MimeType:    "application/pdf",
		Category:    CategoryDocument,
		OwnerChatID: "100500",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !rec.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at from database, got %s", rec.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveNullsOptionalColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("INSERT INTO files").
		WithArgs(sqlmock.AnyArg(), "AgAD", "document", nil, nil, "document", "1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	repo := &PGRepo{DB: db}
	if _, err := repo.Save(context.Background(), FileRecord{
		OriginID:    "AgAD",
		FileName:    "document",
		Category:    CategoryDocument,
		OwnerChatID: "1",
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSavePropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("connection reset")
	mock.ExpectQuery("INSERT INTO files").WillReturnError(boom)

	repo := &PGRepo{DB: db}
	if _, err := repo.Save(context.Background(), FileRecord{OriginID: "x", Category: CategoryImage}); !errors.Is(err, boom) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestPGRepoListAllOrdersNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	newer := time.Date(2026, time.April, 2, 10, 0, 1, 0, time.UTC)
	older := time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "origin_id", "file_name", "file_size", "mime_type", "category", "owner_chat_id", "created_at"}).
		AddRow("id-2", "f2", "clip.mp4", int64(2048), "video/mp4", "media", "7", newer).
		AddRow("id-1", "f1", "document", nil, nil, "document", "7", older)
	mock.ExpectQuery("SELECT id, origin_id.*ORDER BY created_at DESC, seq DESC").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	list, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ID != "id-2" || list[0].Category != CategoryMedia || list[0].FileSize == nil || *list[0].FileSize != 2048 {
		t.Fatalf("unexpected first record: %+v", list[0])
	}
	if list[1].FileSize != nil || list[1].MimeType != "" {
		t.Fatalf("expected null columns to stay empty, got %+v", list[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
