package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/config"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/platforms"
	"github.com/uploadstudio/backend/internal/scheduler"
	"github.com/uploadstudio/backend/pkg/logger"
	"github.com/uploadstudio/backend/pkg/utils"
)

type schedulerUC struct {
	cfg      *config.Config
	repo     scheduler.Repository
	registry *platforms.Registry
	logger   logger.Logger

	mu      sync.Mutex
	uploads []*models.ScheduledUpload

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSchedulerUseCase loads the persisted queue and returns the scheduler.
// A failed load degrades to an empty queue so the app stays usable.
func NewSchedulerUseCase(
	cfg *config.Config,
	repo scheduler.Repository,
	registry *platforms.Registry,
	log logger.Logger,
) scheduler.UseCase {
	uc := &schedulerUC{
		cfg:      cfg,
		repo:     repo,
		registry: registry,
		logger:   log,
	}
	uploads, err := repo.Load()
	if err != nil {
		log.Errorf("scheduler: loading queue: %v", err)
		uploads = nil
	}
	uc.uploads = uploads
	uc.sortLocked()
	return uc
}

// Start launches the background sweep: one immediate pass, then one pass per
// sweep interval. Safe to call once per instance.
func (s *schedulerUC) Start() {
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.sweepLoop(ctx)
	s.logger.Infof("scheduler started, sweep interval %s", s.cfg.Scheduler.SweepInterval)
}

// Stop cancels the sweep timer. An upload already handed to a platform
// adapter runs to completion or failure; only future sweeps are stopped.
func (s *schedulerUC) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("scheduler stopped")
}

func (s *schedulerUC) sweepLoop(ctx context.Context) {
	defer close(s.done)

	s.sweep()

	ticker := time.NewTicker(s.cfg.Scheduler.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep processes every due record strictly sequentially. Errors are recorded
// per record and never abort the remaining due records.
func (s *schedulerUC) sweep() {
	now := time.Now()

	s.mu.Lock()
	var due []string
	for _, up := range s.uploads {
		if up.Status == models.StatusScheduled && !up.ScheduledFor.After(now) {
			due = append(due, up.ID)
		}
	}
	s.mu.Unlock()

	for _, id := range due {
		// Adapter calls deliberately outlive Stop; see Stop.
		if _, err := s.processUpload(context.Background(), id); err != nil {
			if errors.Is(err, scheduler.ErrNotPending) {
				continue
			}
			s.logger.Errorf("scheduler: processing upload %s: %v", id, err)
		}
	}

	s.pruneTerminal(now)
}

func (s *schedulerUC) ScheduleUpload(ctx context.Context, req *models.UploadRequest) (*models.ScheduledUpload, error) {
	if err := utils.ValidateStruct(ctx, req); err != nil {
		return nil, errors.Wrap(err, "scheduler.ScheduleUpload.ValidateStruct")
	}

	now := time.Now()
	scheduledFor := now
	if req.ScheduledFor != nil && !req.ScheduledFor.IsZero() {
		scheduledFor = *req.ScheduledFor
	}

	upload := &models.ScheduledUpload{
		ID:            uuid.New().String(),
		Platform:      req.Platform,
		AccountID:     req.AccountID,
		VideoPath:     req.VideoPath,
		ThumbnailPath: req.ThumbnailPath,
		Metadata:      req.Metadata,
		ScheduledFor:  scheduledFor,
		Status:        models.StatusScheduled,
		CreatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, upload)
	s.sortLocked()
	s.persistLocked()

	cp := *upload
	return &cp, nil
}

func (s *schedulerUC) ScheduleMultipleUploads(ctx context.Context, reqs []*models.UploadRequest) ([]*models.ScheduledUpload, error) {
	results := make([]*models.ScheduledUpload, 0, len(reqs))
	for _, req := range reqs {
		// Best-effort batch: earlier items stay persisted when a later one fails.
		scheduled, err := s.ScheduleUpload(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, scheduled)
	}
	return results, nil
}

func (s *schedulerUC) DeleteScheduledUpload(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, up := range s.uploads {
		if up.ID == id {
			s.uploads = append(s.uploads[:i], s.uploads[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

func (s *schedulerUC) UpdateScheduledUpload(ctx context.Context, id string, upd *models.ScheduledUploadUpdate) (*models.ScheduledUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload := s.findLocked(id)
	if upload == nil {
		return nil, errors.Wrap(scheduler.ErrNotFound, id)
	}

	if upd.VideoPath != nil {
		upload.VideoPath = *upd.VideoPath
	}
	if upd.ThumbnailPath != nil {
		upload.ThumbnailPath = *upd.ThumbnailPath
	}
	if upd.Metadata != nil {
		upload.Metadata = upd.Metadata
	}
	if upd.AccountID != nil {
		upload.AccountID = *upd.AccountID
	}
	if upd.ScheduledFor != nil {
		upload.ScheduledFor = *upd.ScheduledFor
		s.sortLocked()
	}
	upload.UpdatedAt = time.Now()
	s.persistLocked()

	cp := *upload
	return &cp, nil
}

func (s *schedulerUC) GetScheduledUploads(ctx context.Context) []*models.ScheduledUpload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked(func(*models.ScheduledUpload) bool { return true })
}

func (s *schedulerUC) GetScheduledUploadsForPlatform(ctx context.Context, platform string) []*models.ScheduledUpload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked(func(up *models.ScheduledUpload) bool { return up.Platform == platform })
}

func (s *schedulerUC) GetScheduledUploadsForAccount(ctx context.Context, accountID string) []*models.ScheduledUpload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked(func(up *models.ScheduledUpload) bool { return up.AccountID == accountID })
}

func (s *schedulerUC) GetScheduledUpload(ctx context.Context, id string) (*models.ScheduledUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	upload := s.findLocked(id)
	if upload == nil {
		return nil, errors.Wrap(scheduler.ErrNotFound, id)
	}
	cp := *upload
	return &cp, nil
}

// ProcessScheduledUploadNow short-circuits the timer and runs the shared
// processing path synchronously for one record.
func (s *schedulerUC) ProcessScheduledUploadNow(ctx context.Context, id string) (string, error) {
	return s.processUpload(ctx, id)
}

// processUpload claims a pending record and drives it to a terminal status.
// The claim is the double-processing guard: only a record still in the
// scheduled state transitions to processing, so a concurrent sweep and an
// explicit process-now call cannot both run the same upload.
func (s *schedulerUC) processUpload(ctx context.Context, id string) (string, error) {
	upload, err := s.claim(id)
	if err != nil {
		return "", err
	}

	svc, err := s.registry.Get(upload.Platform)
	if err != nil {
		s.finish(id, "", err)
		return "", err
	}

	video, err := svc.UploadVideo(ctx, upload.VideoPath, upload.Metadata, nil)
	if err != nil {
		s.finish(id, "", err)
		return "", err
	}

	if upload.ThumbnailPath != "" {
		if ts, ok := svc.(platforms.ThumbnailSetter); ok {
			if err = ts.SetThumbnail(ctx, video.ID, upload.ThumbnailPath); err != nil {
				s.finish(id, "", err)
				return "", err
			}
		}
	}

	s.finish(id, video.ID, nil)
	return video.ID, nil
}

func (s *schedulerUC) claim(id string) (*models.ScheduledUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload := s.findLocked(id)
	if upload == nil {
		return nil, errors.Wrap(scheduler.ErrNotFound, id)
	}
	if upload.Status != models.StatusScheduled {
		return nil, errors.Wrapf(scheduler.ErrNotPending, "%s is %s", id, upload.Status)
	}
	upload.Status = models.StatusProcessing
	upload.ProcessedAt = time.Now()
	s.persistLocked()

	cp := *upload
	return &cp, nil
}

// finish records the terminal outcome. Terminal statuses never regress.
func (s *schedulerUC) finish(id, videoID string, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload := s.findLocked(id)
	if upload == nil || upload.Status.Terminal() {
		return
	}
	upload.ProcessedAt = time.Now()
	if cause != nil {
		upload.Status = models.StatusFailed
		upload.ErrorMessage = cause.Error()
	} else {
		upload.Status = models.StatusCompleted
		upload.VideoID = videoID
	}
	s.persistLocked()
}

// pruneTerminal drops completed/failed records older than the retention
// window. Disabled when retention is zero; the queue then grows until the
// user deletes entries, matching the historical behavior.
func (s *schedulerUC) pruneTerminal(now time.Time) {
	if s.cfg.Scheduler.RetentionHours <= 0 {
		return
	}
	cutoff := now.Add(-time.Duration(s.cfg.Scheduler.RetentionHours) * time.Hour)

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.uploads[:0]
	pruned := 0
	for _, up := range s.uploads {
		if up.Status.Terminal() && !up.ProcessedAt.IsZero() && up.ProcessedAt.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, up)
	}
	if pruned > 0 {
		s.uploads = kept
		s.persistLocked()
		s.logger.Infof("scheduler: pruned %d finished uploads", pruned)
	}
}

func (s *schedulerUC) findLocked(id string) *models.ScheduledUpload {
	for _, up := range s.uploads {
		if up.ID == id {
			return up
		}
	}
	return nil
}

func (s *schedulerUC) sortLocked() {
	sort.SliceStable(s.uploads, func(i, j int) bool {
		return s.uploads[i].ScheduledFor.Before(s.uploads[j].ScheduledFor)
	})
}

// persistLocked writes the queue through to disk. A write failure leaves the
// in-memory state authoritative and is only logged; the next successful save
// catches the file up.
func (s *schedulerUC) persistLocked() {
	if err := s.repo.Save(s.uploads); err != nil {
		s.logger.Errorf("scheduler: saving queue: %v", err)
	}
}

func (s *schedulerUC) copyLocked(match func(*models.ScheduledUpload) bool) []*models.ScheduledUpload {
	out := make([]*models.ScheduledUpload, 0, len(s.uploads))
	for _, up := range s.uploads {
		if match(up) {
			cp := *up
			out = append(out, &cp)
		}
	}
	return out
}
