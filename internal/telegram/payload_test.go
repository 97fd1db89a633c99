package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"cloud-storage-bot/internal/files"
)

func TestPayloadFromMessage(t *testing.T) {
	size := int64(2048)

	cases := []struct {
		name string
		msg  *tgbotapi.Message
		want files.Payload
	}{
		{
			name: "document",
			msg:  &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "D", FileName: "a.pdf", MimeType: "application/pdf", FileSize: 2048}},
			want: files.Document{FileID: "D", FileName: "a.pdf", MimeType: "application/pdf", FileSize: &size},
		},
		{
			name: "largest photo",
			msg: &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{
				{FileID: "small", FileUniqueID: "s", FileSize: 10},
				{FileID: "big", FileUniqueID: "b", FileSize: 2048},
			}},
			want: files.Photo{FileID: "big", FileUniqueID: "b", FileSize: &size},
		},
		{
			name: "voice without size",
			msg:  &tgbotapi.Message{MessageID: 77, Voice: &tgbotapi.Voice{FileID: "V"}},
			want: files.Voice{FileID: "V", MessageID: 77},
		},
		{
			name: "video note",
			msg:  &tgbotapi.Message{MessageID: 3, VideoNote: &tgbotapi.VideoNote{FileID: "N"}},
			want: files.VideoNote{FileID: "N", MessageID: 3},
		},
		{
			name: "animation",
			msg:  &tgbotapi.Message{Animation: &tgbotapi.Animation{FileID: "G"}},
			want: files.Animation{FileID: "G"},
		},
		{
			name: "sticker",
			msg:  &tgbotapi.Message{Sticker: &tgbotapi.Sticker{FileID: "S"}},
			want: files.Unrecognized{Kind: "sticker"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PayloadFromMessage(tc.msg)
			require.True(t, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPayloadFromTextMessage(t *testing.T) {
	_, ok := PayloadFromMessage(&tgbotapi.Message{Text: "hello"})
	require.False(t, ok)
	_, ok = PayloadFromMessage(nil)
	require.False(t, ok)
}
