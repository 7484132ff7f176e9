package uploads

import (
	"context"

	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/platforms"
	"github.com/uploadstudio/backend/internal/scheduler"
)

// UseCase coordinates immediate multi-platform uploads and normalizes their
// progress reporting. Requests carrying a scheduled time are handed to the
// scheduler instead.
type UseCase interface {
	StartGlobalUpload(ctx context.Context, reqs []*models.UploadRequest) []*models.UploadResult
	UploadToSinglePlatform(ctx context.Context, req *models.UploadRequest) (*models.UploadResult, error)
	CancelUpload(uploadID string) bool
	GetActiveUploads() []*models.ActiveUpload
	GetUploadInfo(uploadID string) (*models.ActiveUpload, bool)
	VideoURL(platform, videoID string) string
	RegisterUploadService(platform string, svc platforms.UploadService)
	SetScheduler(sch scheduler.UseCase)
}
