package files

// Timestamp mirrors the document-store timestamp shape the web client reads.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
}

// FileResponse is the outward-facing representation of a file record.
type FileResponse struct {
	ID        string     `json:"id"`
	FileID    string     `json:"file_id"`
	FileName  string     `json:"file_name"`
	FileSize  *int64     `json:"file_size"`
	MimeType  *string    `json:"mime_type"`
	Category  Category   `json:"category"`
	ChatID    string     `json:"chat_id"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
}

func toResponse(rec FileRecord) FileResponse {
	resp := FileResponse{
		ID:       rec.ID,
		FileID:   rec.OriginID,
		FileName: rec.FileName,
		FileSize: rec.FileSize,
		Category: rec.Category,
		ChatID:   rec.OwnerChatID,
	}
	if rec.MimeType != "" {
		mimeType := rec.MimeType
		resp.MimeType = &mimeType
	}
	if !rec.CreatedAt.IsZero() {
		resp.Timestamp = &Timestamp{Seconds: rec.CreatedAt.Unix()}
	}
	return resp
}
