package domain

import "time"

// StoredFile is an object listed from the storage gateway.
type StoredFile struct {
	ID         string
	Name       string
	Size       int64
	ModifiedAt time.Time
}

type AttachmentKind int

const (
	AttachmentUnsupported AttachmentKind = iota
	AttachmentDocument
	AttachmentPhoto
	AttachmentAudio
)

func (k AttachmentKind) String() string {
	switch k {
	case AttachmentDocument:
		return "document"
	case AttachmentPhoto:
		return "photo"
	case AttachmentAudio:
		return "audio"
	default:
		return "unsupported"
	}
}

// Attachment describes a file sent through the chat platform. The content
// is fetched separately by FileID.
type Attachment struct {
	Kind     AttachmentKind
	FileID   string
	FileName string
}

type ActivityEntry struct {
	ActorID int64
	Message string
	At      time.Time
}
