package events

import "time"

type EventType string

// Event taxonomy consumed by the desktop UI. The names are part of the
// frontend contract and must stay stable.
const (
	UploadStart    EventType = "upload-start"
	UploadProgress EventType = "upload-progress"
	UploadComplete EventType = "upload-complete"
	UploadError    EventType = "upload-error"
	UploadCancel   EventType = "upload-cancel"
)

// Event is one upload lifecycle notification.
type Event struct {
	Type          EventType `json:"type"`
	UploadID      string    `json:"uploadId,omitempty"`
	AccountID     string    `json:"accountId,omitempty"`
	Platform      string    `json:"platform,omitempty"`
	Progress      int       `json:"progress,omitempty"`
	BytesRead     int64     `json:"bytesRead,omitempty"`
	BytesTotal    int64     `json:"bytesTotal,omitempty"`
	Status        string    `json:"status,omitempty"`
	TimeRemaining string    `json:"timeRemaining,omitempty"`
	VideoID       string    `json:"videoId,omitempty"`
	Error         string    `json:"error,omitempty"`
	EmittedAt     time.Time `json:"emittedAt"`
}

// Publisher is the side of the bus the orchestrator depends on.
type Publisher interface {
	Publish(Event)
}
