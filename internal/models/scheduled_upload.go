package models

import "time"

type UploadStatus string

const (
	StatusScheduled  UploadStatus = "scheduled"
	StatusProcessing UploadStatus = "processing"
	StatusCompleted  UploadStatus = "completed"
	StatusFailed     UploadStatus = "failed"
)

// Terminal reports whether no further transition may leave this status.
func (s UploadStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

const (
	PlatformYouTube   = "youtube"
	PlatformTikTok    = "tiktok"
	PlatformInstagram = "instagram"
)

// ScheduledUpload is one persistent queue record: a single platform target of a
// logical upload, from submission through its terminal outcome.
type ScheduledUpload struct {
	ID            string         `json:"id"`
	Platform      string         `json:"platform" validate:"required"`
	AccountID     string         `json:"accountId" validate:"required"`
	VideoPath     string         `json:"videoPath" validate:"required"`
	ThumbnailPath string         `json:"thumbnailPath,omitempty"`
	Metadata      *VideoMetadata `json:"metadata"`
	ScheduledFor  time.Time      `json:"scheduledFor"`
	Status        UploadStatus   `json:"status"`
	VideoID       string         `json:"videoId,omitempty"`
	ErrorMessage  string         `json:"errorMessage,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt,omitempty"`
	ProcessedAt   time.Time      `json:"processedAt,omitempty"`
}

// ScheduledUploadUpdate is a partial update; nil fields are left untouched.
type ScheduledUploadUpdate struct {
	VideoPath     *string        `json:"videoPath,omitempty"`
	ThumbnailPath *string        `json:"thumbnailPath,omitempty"`
	Metadata      *VideoMetadata `json:"metadata,omitempty"`
	ScheduledFor  *time.Time     `json:"scheduledFor,omitempty"`
	AccountID     *string        `json:"accountId,omitempty"`
}
