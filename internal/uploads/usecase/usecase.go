package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/uploadstudio/backend/internal/config"
	"github.com/uploadstudio/backend/internal/events"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/platforms"
	"github.com/uploadstudio/backend/internal/scheduler"
	"github.com/uploadstudio/backend/internal/uploads"
	"github.com/uploadstudio/backend/pkg/logger"
	"github.com/uploadstudio/backend/pkg/utils"
)

// Finished entries linger for UI polling before being dropped; their data has
// already been emitted as events.
const cleanupDelay = 5 * time.Minute

type uploadsUC struct {
	cfg      *config.Config
	registry *platforms.Registry
	bus      events.Publisher
	logger   logger.Logger

	schedMu sync.RWMutex
	sched   scheduler.UseCase

	mu           sync.RWMutex
	active       map[string]*models.ActiveUpload
	cleanupDelay time.Duration
}

func NewUploadsUseCase(
	cfg *config.Config,
	registry *platforms.Registry,
	bus events.Publisher,
	log logger.Logger,
) uploads.UseCase {
	return &uploadsUC{
		cfg:          cfg,
		registry:     registry,
		bus:          bus,
		logger:       log,
		active:       make(map[string]*models.ActiveUpload),
		cleanupDelay: cleanupDelay,
	}
}

// RegisterUploadService wires a platform adapter once its authentication has
// succeeded.
func (u *uploadsUC) RegisterUploadService(platform string, svc platforms.UploadService) {
	u.registry.Register(platform, svc)
}

func (u *uploadsUC) SetScheduler(sch scheduler.UseCase) {
	u.schedMu.Lock()
	defer u.schedMu.Unlock()
	u.sched = sch
}

func (u *uploadsUC) scheduler() scheduler.UseCase {
	u.schedMu.RLock()
	defer u.schedMu.RUnlock()
	return u.sched
}

// StartGlobalUpload fans one logical upload out across its targets. The result
// slice always has exactly one entry per request, in request order: deferred
// targets are persisted to the queue, immediate targets upload right away, and
// one target's failure never aborts the rest.
func (u *uploadsUC) StartGlobalUpload(ctx context.Context, reqs []*models.UploadRequest) []*models.UploadResult {
	results := make([]*models.UploadResult, 0, len(reqs))
	for _, req := range reqs {
		if req.ScheduledFor != nil {
			results = append(results, u.deferToScheduler(ctx, req))
			continue
		}
		result, err := u.UploadToSinglePlatform(ctx, req)
		if err != nil {
			u.logger.Errorf("uploads: uploading to %s: %v", req.Platform, err)
			results = append(results, &models.UploadResult{
				AccountID: req.AccountID,
				Platform:  req.Platform,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}
		results = append(results, result)
	}
	return results
}

func (u *uploadsUC) deferToScheduler(ctx context.Context, req *models.UploadRequest) *models.UploadResult {
	sched := u.scheduler()
	if sched == nil {
		return &models.UploadResult{
			AccountID: req.AccountID,
			Platform:  req.Platform,
			Success:   false,
			Error:     "no scheduler service configured",
		}
	}
	scheduled, err := sched.ScheduleUpload(ctx, req)
	if err != nil {
		return &models.UploadResult{
			AccountID: req.AccountID,
			Platform:  req.Platform,
			Success:   false,
			Error:     err.Error(),
		}
	}
	return &models.UploadResult{
		AccountID:  req.AccountID,
		Platform:   req.Platform,
		Success:    true,
		Scheduled:  true,
		ScheduleID: scheduled.ID,
	}
}

// UploadToSinglePlatform runs one immediate upload end to end: tracking entry,
// start/progress events, the adapter call, optional thumbnail, then a terminal
// event. Exactly one upload-complete or upload-error is emitted per call.
func (u *uploadsUC) UploadToSinglePlatform(ctx context.Context, req *models.UploadRequest) (*models.UploadResult, error) {
	if err := utils.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	uploadID := fmt.Sprintf("%s-%s-%d", req.Platform, req.AccountID, time.Now().UnixMilli())

	u.mu.Lock()
	u.active[uploadID] = &models.ActiveUpload{
		UploadID:      uploadID,
		AccountID:     req.AccountID,
		Platform:      req.Platform,
		VideoPath:     req.VideoPath,
		ThumbnailPath: req.ThumbnailPath,
		Status:        models.ActiveStatusStarting,
		StartedAt:     time.Now(),
	}
	u.mu.Unlock()

	u.bus.Publish(events.Event{
		Type:      events.UploadStart,
		UploadID:  uploadID,
		AccountID: req.AccountID,
		Platform:  req.Platform,
	})

	svc, err := u.registry.Get(req.Platform)
	if err != nil {
		return nil, u.fail(uploadID, req, err)
	}

	onProgress := func(p models.UploadProgress) {
		u.mu.Lock()
		if entry, ok := u.active[uploadID]; ok && !entry.Done() {
			entry.Progress = p.Progress
			if p.Status != "" {
				entry.Status = p.Status
			} else {
				entry.Status = models.ActiveStatusUploading
			}
		}
		u.mu.Unlock()

		u.bus.Publish(events.Event{
			Type:          events.UploadProgress,
			UploadID:      uploadID,
			AccountID:     req.AccountID,
			Platform:      req.Platform,
			Progress:      p.Progress,
			BytesRead:     p.BytesRead,
			BytesTotal:    p.BytesTotal,
			Status:        p.Status,
			TimeRemaining: p.TimeRemaining,
		})
	}

	video, err := svc.UploadVideo(ctx, req.VideoPath, req.Metadata, onProgress)
	if err != nil {
		return nil, u.fail(uploadID, req, err)
	}

	if req.ThumbnailPath != "" {
		if ts, ok := svc.(platforms.ThumbnailSetter); ok {
			if err = ts.SetThumbnail(ctx, video.ID, req.ThumbnailPath); err != nil {
				return nil, u.fail(uploadID, req, err)
			}
		}
	}

	u.mu.Lock()
	if entry, ok := u.active[uploadID]; ok && !entry.Done() {
		entry.Progress = 100
		entry.Status = models.ActiveStatusCompleted
		entry.EndedAt = time.Now()
		entry.VideoID = video.ID
	}
	u.mu.Unlock()
	u.scheduleCleanup(uploadID)

	u.bus.Publish(events.Event{
		Type:      events.UploadComplete,
		UploadID:  uploadID,
		AccountID: req.AccountID,
		Platform:  req.Platform,
		VideoID:   video.ID,
	})

	return &models.UploadResult{
		UploadID:  uploadID,
		AccountID: req.AccountID,
		Platform:  req.Platform,
		Success:   true,
		VideoID:   video.ID,
		URL:       platforms.VideoURL(req.Platform, video.ID),
	}, nil
}

// fail marks the tracking entry failed, emits the error event and hands the
// cause back for the batch loop to record.
func (u *uploadsUC) fail(uploadID string, req *models.UploadRequest, cause error) error {
	u.mu.Lock()
	if entry, ok := u.active[uploadID]; ok && !entry.Done() {
		entry.Status = models.ActiveStatusFailed
		entry.EndedAt = time.Now()
		entry.Error = cause.Error()
	}
	u.mu.Unlock()
	u.scheduleCleanup(uploadID)

	u.bus.Publish(events.Event{
		Type:      events.UploadError,
		UploadID:  uploadID,
		AccountID: req.AccountID,
		Platform:  req.Platform,
		Error:     cause.Error(),
	})
	return cause
}

func (u *uploadsUC) scheduleCleanup(uploadID string) {
	time.AfterFunc(u.cleanupDelay, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		delete(u.active, uploadID)
	})
}

// CancelUpload is best effort: it requires a live entry and an adapter that
// actually exposes cancellation.
func (u *uploadsUC) CancelUpload(uploadID string) bool {
	u.mu.RLock()
	entry, ok := u.active[uploadID]
	if !ok || entry.Done() {
		u.mu.RUnlock()
		return false
	}
	platform := entry.Platform
	accountID := entry.AccountID
	u.mu.RUnlock()

	svc, err := u.registry.Get(platform)
	if err != nil {
		return false
	}
	canceller, ok := svc.(platforms.Canceller)
	if !ok {
		return false
	}
	if err = canceller.CancelUpload(uploadID); err != nil {
		u.logger.Errorf("uploads: cancelling %s: %v", uploadID, err)
		return false
	}

	u.mu.Lock()
	if entry, ok := u.active[uploadID]; ok && !entry.Done() {
		entry.Status = models.ActiveStatusCancelled
		entry.EndedAt = time.Now()
	}
	u.mu.Unlock()
	u.scheduleCleanup(uploadID)

	u.bus.Publish(events.Event{
		Type:      events.UploadCancel,
		UploadID:  uploadID,
		AccountID: accountID,
		Platform:  platform,
	})
	return true
}

func (u *uploadsUC) GetActiveUploads() []*models.ActiveUpload {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*models.ActiveUpload, 0, len(u.active))
	for _, entry := range u.active {
		cp := *entry
		out = append(out, &cp)
	}
	return out
}

func (u *uploadsUC) GetUploadInfo(uploadID string) (*models.ActiveUpload, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	entry, ok := u.active[uploadID]
	if !ok {
		return nil, false
	}
	cp := *entry
	return &cp, true
}

func (u *uploadsUC) VideoURL(platform, videoID string) string {
	return platforms.VideoURL(platform, videoID)
}
