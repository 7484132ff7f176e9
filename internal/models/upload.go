package models

import "time"

// VideoMetadata holds the platform upload parameters. The core passes it through
// to the platform adapter unchanged; defaults are applied adapter-side.
type VideoMetadata struct {
	Title               string     `json:"title,omitempty"`
	Description         string     `json:"description,omitempty"`
	Tags                []string   `json:"tags,omitempty"`
	CategoryID          string     `json:"categoryId,omitempty"`
	Privacy             string     `json:"privacy,omitempty"`
	Language            string     `json:"language,omitempty"`
	PublishAt           *time.Time `json:"publishAt,omitempty"`
	MadeForKids         bool       `json:"madeForKids,omitempty"`
	Embeddable          *bool      `json:"embeddable,omitempty"`
	PublicStatsViewable *bool      `json:"publicStatsViewable,omitempty"`
	License             string     `json:"license,omitempty"`
}

// UploadRequest is one platform/account target of a global upload. A non-nil
// ScheduledFor defers it to the queue instead of uploading right away.
type UploadRequest struct {
	Platform      string         `json:"platform" validate:"required"`
	AccountID     string         `json:"accountId" validate:"required"`
	VideoPath     string         `json:"videoPath" validate:"required"`
	ThumbnailPath string         `json:"thumbnailPath,omitempty"`
	Metadata      *VideoMetadata `json:"metadata"`
	ScheduledFor  *time.Time     `json:"scheduledFor,omitempty"`
}

// UploadResult is one entry of a global upload response, success or failure.
type UploadResult struct {
	UploadID   string `json:"uploadId,omitempty"`
	AccountID  string `json:"accountId"`
	Platform   string `json:"platform"`
	Success    bool   `json:"success"`
	VideoID    string `json:"videoId,omitempty"`
	URL        string `json:"url,omitempty"`
	Error      string `json:"error,omitempty"`
	Scheduled  bool   `json:"scheduled,omitempty"`
	ScheduleID string `json:"scheduleId,omitempty"`
}

// UploadProgress is the progress callback payload reported by adapters.
type UploadProgress struct {
	Progress      int    `json:"progress"`
	BytesRead     int64  `json:"bytesRead,omitempty"`
	BytesTotal    int64  `json:"bytesTotal,omitempty"`
	Status        string `json:"status,omitempty"`
	TimeRemaining string `json:"timeRemaining,omitempty"`
}
