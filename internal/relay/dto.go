package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SendRequest is the body of POST /api/send.
type SendRequest struct {
	FileID string `json:"file_id"`
	ChatID ChatID `json:"chat_id"`
}

// ChatID accepts a JSON number or a numeric string. Zero means absent.
type ChatID int64

func (id *ChatID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("chat_id: %w", err)
	}
	*id = ChatID(n)
	return nil
}

// SendResponse acknowledges a successful relay.
type SendResponse struct {
	OK bool `json:"ok"`
}
