package scheduler

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/models"
)

// ErrNotFound is returned for operations on unknown upload ids.
var ErrNotFound = errors.New("scheduled upload not found")

// ErrNotPending is returned when a record has already left the scheduled
// state, for example when an explicit process-now call races the sweep.
var ErrNotPending = errors.New("scheduled upload is no longer pending")

type UseCase interface {
	ScheduleUpload(ctx context.Context, req *models.UploadRequest) (*models.ScheduledUpload, error)
	ScheduleMultipleUploads(ctx context.Context, reqs []*models.UploadRequest) ([]*models.ScheduledUpload, error)
	DeleteScheduledUpload(ctx context.Context, id string) bool
	UpdateScheduledUpload(ctx context.Context, id string, upd *models.ScheduledUploadUpdate) (*models.ScheduledUpload, error)
	GetScheduledUploads(ctx context.Context) []*models.ScheduledUpload
	GetScheduledUploadsForPlatform(ctx context.Context, platform string) []*models.ScheduledUpload
	GetScheduledUploadsForAccount(ctx context.Context, accountID string) []*models.ScheduledUpload
	GetScheduledUpload(ctx context.Context, id string) (*models.ScheduledUpload, error)
	ProcessScheduledUploadNow(ctx context.Context, id string) (string, error)
	Start()
	Stop()
}
