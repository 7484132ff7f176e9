package scheduler

import "github.com/uploadstudio/backend/internal/models"

// Repository persists the scheduled-upload queue as one document. The usecase
// is the sole writer; Save always rewrites the full list.
type Repository interface {
	Load() ([]*models.ScheduledUpload, error)
	Save(uploads []*models.ScheduledUpload) error
}
