package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cloud-storage-bot/internal/files"
)

// PayloadFromMessage extracts the file payload of msg. ok is false for
// messages that carry no file at all (plain text, commands, service messages).
// File-like content the store cannot describe comes back as files.Unrecognized.
func PayloadFromMessage(msg *tgbotapi.Message) (p files.Payload, ok bool) {
	if msg == nil {
		return nil, false
	}
	switch {
	case msg.Document != nil:
		d := msg.Document
		return files.Document{FileID: d.FileID, FileName: d.FileName, MimeType: d.MimeType, FileSize: sizeOf(d.FileSize)}, true
	case len(msg.Photo) > 0:
		largest := msg.Photo[len(msg.Photo)-1]
		return files.Photo{FileID: largest.FileID, FileUniqueID: largest.FileUniqueID, FileSize: sizeOf(largest.FileSize)}, true
	case msg.Video != nil:
		v := msg.Video
		return files.Video{FileID: v.FileID, FileName: v.FileName, MimeType: v.MimeType, FileSize: sizeOf(v.FileSize)}, true
	case msg.Audio != nil:
		a := msg.Audio
		return files.Audio{FileID: a.FileID, FileName: a.FileName, MimeType: a.MimeType, FileSize: sizeOf(a.FileSize)}, true
	case msg.Voice != nil:
		return files.Voice{FileID: msg.Voice.FileID, MessageID: msg.MessageID, FileSize: sizeOf(msg.Voice.FileSize)}, true
	case msg.VideoNote != nil:
		return files.VideoNote{FileID: msg.VideoNote.FileID, MessageID: msg.MessageID, FileSize: sizeOf(msg.VideoNote.FileSize)}, true
	case msg.Animation != nil:
		a := msg.Animation
		return files.Animation{FileID: a.FileID, FileName: a.FileName, MimeType: a.MimeType, FileSize: sizeOf(a.FileSize)}, true
	case msg.Sticker != nil:
		return files.Unrecognized{Kind: "sticker"}, true
	}
	return nil, false
}

// sizeOf maps the platform's "unknown" zero size to nil.
func sizeOf[T ~int | ~int64](n T) *int64 {
	if n <= 0 {
		return nil
	}
	v := int64(n)
	return &v
}
