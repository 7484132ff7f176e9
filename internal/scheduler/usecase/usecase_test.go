package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uploadstudio/backend/internal/config"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/platforms"
	"github.com/uploadstudio/backend/internal/scheduler"
	"github.com/uploadstudio/backend/internal/scheduler/repository"
	"github.com/uploadstudio/backend/pkg/logger"
)

type stubService struct {
	videoID    string
	uploadErr  error
	thumbErr   error
	uploads    int
	thumbnails int
}

func (s *stubService) UploadVideo(ctx context.Context, videoPath string, metadata *models.VideoMetadata, onProgress platforms.ProgressFunc) (*platforms.UploadedVideo, error) {
	s.uploads++
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return &platforms.UploadedVideo{ID: s.videoID}, nil
}

func (s *stubService) SetThumbnail(ctx context.Context, videoID, thumbnailPath string) error {
	s.thumbnails++
	return s.thumbErr
}

func newTestLogger() logger.Logger {
	l := logger.NewApiLogger(&config.Config{Logger: config.Logger{Development: true, Encoding: "console", Level: "error"}})
	l.InitLogger()
	return l
}

func newTestScheduler(t *testing.T, registry *platforms.Registry) (*schedulerUC, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		Scheduler: config.SchedulerConfig{
			QueueFile:     filepath.Join(t.TempDir(), "scheduled-uploads.json"),
			SweepInterval: time.Minute,
		},
	}
	repo, err := repository.NewQueueFileRepo(cfg.Scheduler.QueueFile)
	require.NoError(t, err)
	uc := NewSchedulerUseCase(cfg, repo, registry, newTestLogger()).(*schedulerUC)
	return uc, cfg
}

func newRequest(platform, accountID string, scheduledFor *time.Time) *models.UploadRequest {
	return &models.UploadRequest{
		Platform:     platform,
		AccountID:    accountID,
		VideoPath:    "/videos/clip.mp4",
		Metadata:     &models.VideoMetadata{Title: "clip"},
		ScheduledFor: scheduledFor,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestScheduleUploadKeepsQueueSorted(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())
	ctx := context.Background()

	base := time.Now().Add(time.Hour)
	offsets := []time.Duration{30 * time.Minute, 5 * time.Minute, 90 * time.Minute, 0, 45 * time.Minute}
	for _, off := range offsets {
		_, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", timePtr(base.Add(off))))
		require.NoError(t, err)

		list := uc.GetScheduledUploads(ctx)
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i].ScheduledFor.Before(list[i-1].ScheduledFor),
				"queue out of order at index %d", i)
		}
	}
}

func TestScheduleUploadDefaultsScheduledForToNow(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())

	before := time.Now()
	scheduled, err := uc.ScheduleUpload(context.Background(), newRequest("youtube", "acc-1", nil))
	require.NoError(t, err)

	assert.Equal(t, models.StatusScheduled, scheduled.Status)
	assert.NotEmpty(t, scheduled.ID)
	assert.False(t, scheduled.ScheduledFor.Before(before))
	assert.False(t, scheduled.ScheduledFor.After(time.Now()))
}

func TestScheduleUploadRejectsInvalidRequest(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())

	_, err := uc.ScheduleUpload(context.Background(), &models.UploadRequest{Platform: "youtube"})
	require.Error(t, err)
	assert.Empty(t, uc.GetScheduledUploads(context.Background()))
}

func TestDeleteScheduledUploadReturnsTrueExactlyOnce(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())
	ctx := context.Background()

	scheduled, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", nil))
	require.NoError(t, err)

	assert.True(t, uc.DeleteScheduledUpload(ctx, scheduled.ID))
	assert.False(t, uc.DeleteScheduledUpload(ctx, scheduled.ID))
	assert.False(t, uc.DeleteScheduledUpload(ctx, "no-such-id"))
}

func TestSweepProcessesDueUpload(t *testing.T) {
	registry := platforms.NewRegistry()
	svc := &stubService{videoID: "vid-123"}
	registry.Register("youtube", svc)
	uc, _ := newTestScheduler(t, registry)
	ctx := context.Background()

	scheduled, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", timePtr(time.Now().Add(-time.Hour))))
	require.NoError(t, err)

	uc.sweep()

	got, err := uc.GetScheduledUpload(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "vid-123", got.VideoID)
	assert.False(t, got.ProcessedAt.IsZero())
	assert.Equal(t, 1, svc.uploads)
}

func TestSweepSkipsFutureUploads(t *testing.T) {
	registry := platforms.NewRegistry()
	svc := &stubService{videoID: "vid-123"}
	registry.Register("youtube", svc)
	uc, _ := newTestScheduler(t, registry)
	ctx := context.Background()

	scheduled, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", timePtr(time.Now().Add(time.Hour))))
	require.NoError(t, err)

	uc.sweep()

	got, err := uc.GetScheduledUpload(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, got.Status)
	assert.Zero(t, svc.uploads)
}

func TestSweepMarksFailedWhenNoServiceRegistered(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())
	ctx := context.Background()

	scheduled, err := uc.ScheduleUpload(ctx, newRequest("tiktok", "acc-1", timePtr(time.Now().Add(-time.Minute))))
	require.NoError(t, err)

	uc.sweep()

	got, err := uc.GetScheduledUpload(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Contains(t, got.ErrorMessage, "tiktok")
}

func TestSweepContinuesAfterOneRecordFails(t *testing.T) {
	registry := platforms.NewRegistry()
	registry.Register("youtube", &stubService{videoID: "ok-1"})
	registry.Register("tiktok", &stubService{uploadErr: errors.New("tiktok upload rejected")})
	uc, _ := newTestScheduler(t, registry)
	ctx := context.Background()

	due := timePtr(time.Now().Add(-time.Minute))
	bad, err := uc.ScheduleUpload(ctx, newRequest("tiktok", "acc-1", due))
	require.NoError(t, err)
	good, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-2", due))
	require.NoError(t, err)

	uc.sweep()

	gotBad, err := uc.GetScheduledUpload(ctx, bad.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, gotBad.Status)
	assert.Contains(t, gotBad.ErrorMessage, "rejected")

	gotGood, err := uc.GetScheduledUpload(ctx, good.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, gotGood.Status)
}

func TestThumbnailFailureMarksRecordFailed(t *testing.T) {
	registry := platforms.NewRegistry()
	svc := &stubService{videoID: "vid-1", thumbErr: errors.New("thumbnail too large")}
	registry.Register("youtube", svc)
	uc, _ := newTestScheduler(t, registry)
	ctx := context.Background()

	req := newRequest("youtube", "acc-1", timePtr(time.Now().Add(-time.Minute)))
	req.ThumbnailPath = "/thumbs/cover.png"
	scheduled, err := uc.ScheduleUpload(ctx, req)
	require.NoError(t, err)

	uc.sweep()

	got, err := uc.GetScheduledUpload(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Contains(t, got.ErrorMessage, "thumbnail")
	assert.Equal(t, 1, svc.thumbnails)
}

func TestProcessScheduledUploadNow(t *testing.T) {
	registry := platforms.NewRegistry()
	registry.Register("youtube", &stubService{videoID: "vid-9"})
	uc, _ := newTestScheduler(t, registry)
	ctx := context.Background()

	scheduled, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", timePtr(time.Now().Add(time.Hour))))
	require.NoError(t, err)

	videoID, err := uc.ProcessScheduledUploadNow(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, "vid-9", videoID)

	got, err := uc.GetScheduledUpload(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestProcessNowUnknownIDReturnsNotFound(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())

	_, err := uc.ProcessScheduledUploadNow(context.Background(), "missing")
	assert.True(t, errors.Is(err, scheduler.ErrNotFound))
}

func TestRecordIsNeverProcessedTwice(t *testing.T) {
	registry := platforms.NewRegistry()
	svc := &stubService{videoID: "vid-1"}
	registry.Register("youtube", svc)
	uc, _ := newTestScheduler(t, registry)
	ctx := context.Background()

	scheduled, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", timePtr(time.Now().Add(-time.Minute))))
	require.NoError(t, err)

	_, err = uc.ProcessScheduledUploadNow(ctx, scheduled.ID)
	require.NoError(t, err)

	// A later sweep and a repeated explicit call both find the record
	// already claimed.
	uc.sweep()
	_, err = uc.ProcessScheduledUploadNow(ctx, scheduled.ID)
	assert.True(t, errors.Is(err, scheduler.ErrNotPending))
	assert.Equal(t, 1, svc.uploads)

	got, err := uc.GetScheduledUpload(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestUpdateScheduledUploadResortsQueue(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())
	ctx := context.Background()

	first, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", timePtr(time.Now().Add(time.Hour))))
	require.NoError(t, err)
	_, err = uc.ScheduleUpload(ctx, newRequest("youtube", "acc-2", timePtr(time.Now().Add(2*time.Hour))))
	require.NoError(t, err)

	updated, err := uc.UpdateScheduledUpload(ctx, first.ID, &models.ScheduledUploadUpdate{
		ScheduledFor: timePtr(time.Now().Add(3 * time.Hour)),
	})
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.IsZero())

	list := uc.GetScheduledUploads(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestUpdateScheduledUploadUnknownID(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())

	_, err := uc.UpdateScheduledUpload(context.Background(), "missing", &models.ScheduledUploadUpdate{})
	assert.True(t, errors.Is(err, scheduler.ErrNotFound))
}

func TestQueriesFilterByPlatformAndAccount(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())
	ctx := context.Background()

	_, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", nil))
	require.NoError(t, err)
	_, err = uc.ScheduleUpload(ctx, newRequest("tiktok", "acc-1", nil))
	require.NoError(t, err)
	_, err = uc.ScheduleUpload(ctx, newRequest("youtube", "acc-2", nil))
	require.NoError(t, err)

	assert.Len(t, uc.GetScheduledUploads(ctx), 3)
	assert.Len(t, uc.GetScheduledUploadsForPlatform(ctx, "youtube"), 2)
	assert.Len(t, uc.GetScheduledUploadsForAccount(ctx, "acc-1"), 2)
	assert.Empty(t, uc.GetScheduledUploadsForPlatform(ctx, "instagram"))
}

func TestQueueSurvivesRestart(t *testing.T) {
	registry := platforms.NewRegistry()
	cfg := &config.Config{
		Scheduler: config.SchedulerConfig{
			QueueFile:     filepath.Join(t.TempDir(), "scheduled-uploads.json"),
			SweepInterval: time.Minute,
		},
	}
	repo, err := repository.NewQueueFileRepo(cfg.Scheduler.QueueFile)
	require.NoError(t, err)
	log := newTestLogger()

	first := NewSchedulerUseCase(cfg, repo, registry, log)
	scheduled, err := first.ScheduleUpload(context.Background(), newRequest("youtube", "acc-1", timePtr(time.Now().Add(time.Hour))))
	require.NoError(t, err)

	second := NewSchedulerUseCase(cfg, repo, registry, log)
	got, err := second.GetScheduledUpload(context.Background(), scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduled.ID, got.ID)
	assert.Equal(t, models.StatusScheduled, got.Status)
}

func TestScheduleMultipleUploadsIsBestEffort(t *testing.T) {
	uc, _ := newTestScheduler(t, platforms.NewRegistry())
	ctx := context.Background()

	reqs := []*models.UploadRequest{
		newRequest("youtube", "acc-1", nil),
		{Platform: "youtube"}, // invalid: missing account and video path
		newRequest("youtube", "acc-2", nil),
	}
	scheduled, err := uc.ScheduleMultipleUploads(ctx, reqs)
	require.Error(t, err)
	require.Len(t, scheduled, 1)

	// The item scheduled before the failure stays persisted.
	assert.Len(t, uc.GetScheduledUploads(ctx), 1)
}

func TestRetentionPrunesOldTerminalRecords(t *testing.T) {
	registry := platforms.NewRegistry()
	registry.Register("youtube", &stubService{videoID: "vid-1"})
	uc, cfg := newTestScheduler(t, registry)
	cfg.Scheduler.RetentionHours = 1
	ctx := context.Background()

	done, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", timePtr(time.Now().Add(-time.Hour))))
	require.NoError(t, err)
	pending, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-2", timePtr(time.Now().Add(time.Hour))))
	require.NoError(t, err)

	uc.sweep()

	// Age the finished record past the retention window.
	uc.mu.Lock()
	uc.findLocked(done.ID).ProcessedAt = time.Now().Add(-2 * time.Hour)
	uc.mu.Unlock()

	uc.sweep()

	_, err = uc.GetScheduledUpload(ctx, done.ID)
	assert.True(t, errors.Is(err, scheduler.ErrNotFound))
	_, err = uc.GetScheduledUpload(ctx, pending.ID)
	assert.NoError(t, err)
}

func TestStartAndStopSweepLoop(t *testing.T) {
	registry := platforms.NewRegistry()
	svc := &stubService{videoID: "vid-1"}
	registry.Register("youtube", svc)
	uc, cfg := newTestScheduler(t, registry)
	cfg.Scheduler.SweepInterval = 10 * time.Millisecond
	ctx := context.Background()

	scheduled, err := uc.ScheduleUpload(ctx, newRequest("youtube", "acc-1", timePtr(time.Now().Add(-time.Minute))))
	require.NoError(t, err)

	uc.Start()
	defer uc.Stop()

	require.Eventually(t, func() bool {
		got, err := uc.GetScheduledUpload(ctx, scheduled.ID)
		return err == nil && got.Status == models.StatusCompleted
	}, time.Second, 5*time.Millisecond)
}
