package files

import "fmt"

// Payload is one of the inbound file shapes the chat platform delivers.
// The set is closed: Document, Photo, Video, Audio, Voice, VideoNote,
// Animation and Unrecognized.
type Payload interface {
	payload()
}

type Document struct {
	FileID   string
	FileName string
	MimeType string
	FileSize *int64
}

// Photo is the largest available size of a photo message.
type Photo struct {
	FileID       string
	FileUniqueID string
	FileSize     *int64
}

type Video struct {
	FileID   string
	FileName string
	MimeType string
	FileSize *int64
}

type Audio struct {
	FileID   string
	FileName string
	MimeType string
	FileSize *int64
}

type Voice struct {
	FileID    string
	MessageID int
	FileSize  *int64
}

type VideoNote struct {
	FileID    string
	MessageID int
	FileSize  *int64
}

type Animation struct {
	FileID   string
	FileName string
	MimeType string
	FileSize *int64
}

// Unrecognized stands for any message shape without a usable file reference.
type Unrecognized struct {
	Kind string
}

func (Document) payload()     {}
func (Photo) payload()        {}
func (Video) payload()        {}
func (Audio) payload()        {}
func (Voice) payload()        {}
func (VideoNote) payload()    {}
func (Animation) payload()    {}
func (Unrecognized) payload() {}

// Descriptor is the normalized view of a payload.
type Descriptor struct {
	OriginID string
	FileName string
	FileSize *int64
	MimeType string
}

// Describe normalizes a payload, filling per-kind default names and mime types.
func Describe(p Payload) (Descriptor, error) {
	var d Descriptor
	switch v := p.(type) {
	case Document:
		d = Descriptor{v.FileID, orDefault(v.FileName, "document"), v.FileSize, v.MimeType}
	case Photo:
		d = Descriptor{v.FileID, fmt.Sprintf("photo_%s.jpg", v.FileUniqueID), v.FileSize, "image/jpeg"}
	case Video:
		d = Descriptor{v.FileID, orDefault(v.FileName, "video.mp4"), v.FileSize, orDefault(v.MimeType, "video/mp4")}
	case Audio:
		d = Descriptor{v.FileID, orDefault(v.FileName, "audio.mp3"), v.FileSize, orDefault(v.MimeType, "audio/mpeg")}
	case Voice:
		d = Descriptor{v.FileID, fmt.Sprintf("voice_%d.ogg", v.MessageID), v.FileSize, "audio/ogg"}
	case VideoNote:
		d = Descriptor{v.FileID, fmt.Sprintf("videonote_%d.mp4", v.MessageID), v.FileSize, "video/mp4"}
	case Animation:
		d = Descriptor{v.FileID, orDefault(v.FileName, "animation.gif"), v.FileSize, orDefault(v.MimeType, "image/gif")}
	case Unrecognized:
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnrecognizedPayload, orDefault(v.Kind, "unknown"))
	default:
		return Descriptor{}, fmt.Errorf("%w: %T", ErrUnrecognizedPayload, p)
	}
	if d.OriginID == "" {
		return Descriptor{}, fmt.Errorf("%w: missing file reference", ErrUnrecognizedPayload)
	}
	return d, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
