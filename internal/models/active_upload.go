package models

import "time"

// Live statuses used only on ActiveUpload entries; the persistent queue never
// stores these.
const (
	ActiveStatusStarting  = "starting"
	ActiveStatusUploading = "uploading"
	ActiveStatusCompleted = "completed"
	ActiveStatusFailed    = "failed"
	ActiveStatusCancelled = "cancelled"
)

// ActiveUpload tracks one in-flight immediate upload. It is a progress cache
// for UI polling, not a source of truth: entries are dropped a fixed delay
// after reaching a terminal status.
type ActiveUpload struct {
	UploadID      string    `json:"uploadId"`
	AccountID     string    `json:"accountId"`
	Platform      string    `json:"platform"`
	VideoPath     string    `json:"videoPath"`
	ThumbnailPath string    `json:"thumbnailPath,omitempty"`
	Progress      int       `json:"progress"`
	Status        string    `json:"status"`
	StartedAt     time.Time `json:"startedAt"`
	EndedAt       time.Time `json:"endedAt,omitempty"`
	VideoID       string    `json:"videoId,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// Done reports whether the upload reached a terminal status.
func (a *ActiveUpload) Done() bool {
	switch a.Status {
	case ActiveStatusCompleted, ActiveStatusFailed, ActiveStatusCancelled:
		return true
	}
	return false
}
