package files

import "time"

// FileRecord is the persisted metadata for one inbound file.
// ID and CreatedAt are assigned by the Repo on Save.
type FileRecord struct {
	ID          string
	OriginID    string
	FileName    string
	FileSize    *int64
	MimeType    string
	Category    Category
	OwnerChatID string
	CreatedAt   time.Time
}
