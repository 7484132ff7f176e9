package tiktok

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/platforms"
)

// Uploader is a placeholder until the TikTok content posting integration
// lands. It registers the platform so queued records fail with a clear
// message instead of a missing-service error.
type Uploader struct{}

func NewUploader() *Uploader {
	return &Uploader{}
}

func (u *Uploader) UploadVideo(ctx context.Context, videoPath string, metadata *models.VideoMetadata, onProgress platforms.ProgressFunc) (*platforms.UploadedVideo, error) {
	return nil, errors.New("tiktok: uploads are not supported yet")
}
