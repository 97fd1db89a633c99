package telegram

import (
	"fmt"
	"html"

	"cloud-storage-bot/internal/files"
)

const (
	menuButtonText = "☁️ My Files"
	uploadMarker   = "__UPLOAD__"

	msgWelcome = "👋 <b>Welcome to Cloud Storage!</b>\n\n" +
		"📤 Send me any file and I'll keep it safe.\n" +
		"📂 Tap <b>☁️ My Files</b> to browse your storage."
	msgSaving      = "⏳ <b>Saving to cloud...</b>"
	msgUnprocessed = "❌ Could not process this file."
	msgNoData      = "⚠️ No data received."
	msgUploadHint  = "📤 <b>Upload a file</b>\n\nSend me any file right here!"
	msgRelayFailed = "❌ Could not send the file. It may have expired."
)

func savedMessage(rec files.FileRecord) string {
	return fmt.Sprintf("✅ <b>Saved to cloud!</b>\n\n📄 <b>%s</b>\n📦 %s · %s\n\nOpen <b>%s</b> to see it.",
		html.EscapeString(rec.FileName),
		files.FormatSize(rec.FileSize),
		rec.Category.Title(),
		menuButtonText,
	)
}

func saveFailedMessage(err error) string {
	return "❌ <b>Failed to save</b>\n\n" + html.EscapeString(err.Error())
}
