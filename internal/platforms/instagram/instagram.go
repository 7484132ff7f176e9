package instagram

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/platforms"
)

// Uploader is a placeholder until the Instagram Graph API integration lands.
type Uploader struct{}

func NewUploader() *Uploader {
	return &Uploader{}
}

func (u *Uploader) UploadVideo(ctx context.Context, videoPath string, metadata *models.VideoMetadata, onProgress platforms.ProgressFunc) (*platforms.UploadedVideo, error) {
	return nil, errors.New("instagram: uploads are not supported yet")
}
