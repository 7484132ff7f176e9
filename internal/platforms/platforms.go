package platforms

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/models"
)

// ErrNoService is returned when no upload service is registered for a platform.
var ErrNoService = errors.New("no upload service found for platform")

// UploadedVideo is the minimal result every platform upload yields.
type UploadedVideo struct {
	ID string `json:"id"`
}

// ProgressFunc receives adapter progress callbacks. May be nil.
type ProgressFunc func(models.UploadProgress)

// UploadService is the capability every platform adapter must provide.
type UploadService interface {
	UploadVideo(ctx context.Context, videoPath string, metadata *models.VideoMetadata, onProgress ProgressFunc) (*UploadedVideo, error)
}

// ThumbnailSetter is an optional adapter capability, checked by assertion.
type ThumbnailSetter interface {
	SetThumbnail(ctx context.Context, videoID, thumbnailPath string) error
}

// Canceller is an optional adapter capability for best-effort cancellation.
type Canceller interface {
	CancelUpload(uploadID string) error
}

// Registry maps platform identifiers to their upload services. Services are
// registered late, once authentication for the platform has succeeded.
type Registry struct {
	mu       sync.RWMutex
	services map[string]UploadService
}

func NewRegistry() *Registry {
	return &Registry{services: make(map[string]UploadService)}
}

func (r *Registry) Register(platform string, svc UploadService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[platform] = svc
}

func (r *Registry) Get(platform string) (UploadService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[platform]
	if !ok {
		return nil, errors.Wrap(ErrNoService, platform)
	}
	return svc, nil
}

func (r *Registry) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.services))
	for p := range r.services {
		out = append(out, p)
	}
	return out
}
