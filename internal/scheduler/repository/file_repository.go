package repository

import (
	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/scheduler"
	"github.com/uploadstudio/backend/pkg/db/jsonfile"
)

type queueFileRepo struct {
	store *jsonfile.Store
}

// NewQueueFileRepo creates the JSON-file-backed queue repository, initializing
// the backing file to an empty list on first use.
func NewQueueFileRepo(path string) (scheduler.Repository, error) {
	store, err := jsonfile.NewStore(path)
	if err != nil {
		return nil, errors.Wrap(err, "queueFileRepo.NewStore")
	}
	if err = store.Init([]*models.ScheduledUpload{}); err != nil {
		return nil, errors.Wrap(err, "queueFileRepo.Init")
	}
	return &queueFileRepo{store: store}, nil
}

func (r *queueFileRepo) Load() ([]*models.ScheduledUpload, error) {
	var uploads []*models.ScheduledUpload
	if err := r.store.Load(&uploads); err != nil {
		return nil, errors.Wrap(err, "queueFileRepo.Load")
	}
	return uploads, nil
}

func (r *queueFileRepo) Save(uploads []*models.ScheduledUpload) error {
	if uploads == nil {
		uploads = []*models.ScheduledUpload{}
	}
	if err := r.store.Save(uploads); err != nil {
		return errors.Wrap(err, "queueFileRepo.Save")
	}
	return nil
}
