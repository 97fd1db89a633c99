package relay

import "context"

// Kind is a content-specific delivery method of the origin channel.
type Kind string

const (
	KindDocument Kind = "document"
	KindPhoto    Kind = "photo"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
)

// DispatchOrder is the fixed order in which delivery methods are probed.
var DispatchOrder = []Kind{KindDocument, KindPhoto, KindVideo, KindAudio}

// Origin is the messaging platform the files live in.
type Origin interface {
	// ResolveFile turns a file reference into a short-lived direct URL.
	ResolveFile(ctx context.Context, originID string) (string, error)
	// Dispatch delivers the referenced file into chatID using one method.
	Dispatch(ctx context.Context, kind Kind, chatID int64, originID string) error
}
