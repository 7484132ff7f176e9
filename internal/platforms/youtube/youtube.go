package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/config"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/platforms"
	"github.com/uploadstudio/backend/pkg/logger"
	"golang.org/x/oauth2"
)

const (
	defaultUploadURL    = "https://www.googleapis.com/upload/youtube/v3/videos"
	defaultThumbnailURL = "https://www.googleapis.com/upload/youtube/v3/thumbnails/set"

	defaultTitle      = "Untitled Video"
	defaultCategoryID = "22"
	defaultPrivacy    = "private"
	defaultLicense    = "youtube"
)

// Uploader performs resumable uploads against the YouTube Data API v3 on
// behalf of one authenticated account.
type Uploader struct {
	uploadURL    string
	thumbnailURL string
	client       *http.Client
	logger       logger.Logger
}

func NewUploader(cfg config.YouTubeConfig, ts oauth2.TokenSource, log logger.Logger) *Uploader {
	uploadURL := cfg.UploadURL
	if uploadURL == "" {
		uploadURL = defaultUploadURL
	}
	thumbnailURL := cfg.ThumbnailURL
	if thumbnailURL == "" {
		thumbnailURL = defaultThumbnailURL
	}
	return &Uploader{
		uploadURL:    uploadURL,
		thumbnailURL: thumbnailURL,
		client:       oauth2.NewClient(context.Background(), ts),
		logger:       log,
	}
}

type snippet struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Tags                 []string `json:"tags,omitempty"`
	CategoryID           string   `json:"categoryId"`
	DefaultLanguage      string   `json:"defaultLanguage,omitempty"`
	DefaultAudioLanguage string   `json:"defaultAudioLanguage,omitempty"`
}

type status struct {
	PrivacyStatus           string `json:"privacyStatus"`
	PublishAt               string `json:"publishAt,omitempty"`
	Embeddable              bool   `json:"embeddable"`
	PublicStatsViewable     bool   `json:"publicStatsViewable"`
	SelfDeclaredMadeForKids bool   `json:"selfDeclaredMadeForKids"`
	License                 string `json:"license"`
}

type videoResource struct {
	Snippet snippet `json:"snippet"`
	Status  status  `json:"status"`
}

func buildResource(md *models.VideoMetadata) videoResource {
	if md == nil {
		md = &models.VideoMetadata{}
	}
	sn := snippet{
		Title:                md.Title,
		Description:          md.Description,
		Tags:                 md.Tags,
		CategoryID:           md.CategoryID,
		DefaultLanguage:      md.Language,
		DefaultAudioLanguage: md.Language,
	}
	if sn.Title == "" {
		sn.Title = defaultTitle
	}
	if sn.CategoryID == "" {
		sn.CategoryID = defaultCategoryID
	}
	st := status{
		PrivacyStatus:           md.Privacy,
		Embeddable:              md.Embeddable == nil || *md.Embeddable,
		PublicStatsViewable:     md.PublicStatsViewable == nil || *md.PublicStatsViewable,
		SelfDeclaredMadeForKids: md.MadeForKids,
		License:                 md.License,
	}
	if st.PrivacyStatus == "" {
		st.PrivacyStatus = defaultPrivacy
	}
	if st.License == "" {
		st.License = defaultLicense
	}
	if md.PublishAt != nil {
		st.PublishAt = md.PublishAt.UTC().Format(time.RFC3339)
	}
	return videoResource{Snippet: sn, Status: st}
}

// UploadVideo opens a resumable upload session, streams the file through it
// and returns the created video id.
func (u *Uploader) UploadVideo(ctx context.Context, videoPath string, metadata *models.VideoMetadata, onProgress platforms.ProgressFunc) (*platforms.UploadedVideo, error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		return nil, errors.Wrap(err, "youtube.UploadVideo.Stat")
	}
	fileSize := info.Size()

	sessionURL, err := u.createSession(ctx, metadata, fileSize)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(videoPath)
	if err != nil {
		return nil, errors.Wrap(err, "youtube.UploadVideo.Open")
	}
	defer file.Close()

	body := io.Reader(file)
	if onProgress != nil {
		body = &progressReader{r: file, total: fileSize, onProgress: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, sessionURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "youtube.UploadVideo.NewRequest")
	}
	req.ContentLength = fileSize
	req.Header.Set("Content-Type", "video/*")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "youtube.UploadVideo.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError("upload", resp)
	}

	var video platforms.UploadedVideo
	if err = json.NewDecoder(resp.Body).Decode(&video); err != nil {
		return nil, errors.Wrap(err, "youtube.UploadVideo.Decode")
	}
	u.logger.Infof("youtube upload finished, video id: %s", video.ID)
	return &video, nil
}

func (u *Uploader) createSession(ctx context.Context, metadata *models.VideoMetadata, fileSize int64) (string, error) {
	payload, err := json.Marshal(buildResource(metadata))
	if err != nil {
		return "", errors.Wrap(err, "youtube.createSession.Marshal")
	}

	url := fmt.Sprintf("%s?uploadType=resumable&part=snippet,status", u.uploadURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "youtube.createSession.NewRequest")
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Upload-Content-Type", "video/*")
	req.Header.Set("X-Upload-Content-Length", fmt.Sprintf("%d", fileSize))

	resp, err := u.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "youtube.createSession.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError("create session", resp)
	}
	sessionURL := resp.Header.Get("Location")
	if sessionURL == "" {
		return "", errors.New("youtube: resumable session without Location header")
	}
	return sessionURL, nil
}

// SetThumbnail uploads a custom thumbnail for an already-created video.
func (u *Uploader) SetThumbnail(ctx context.Context, videoID, thumbnailPath string) error {
	file, err := os.Open(thumbnailPath)
	if err != nil {
		return errors.Wrap(err, "youtube.SetThumbnail.Open")
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(thumbnailPath))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url := fmt.Sprintf("%s?videoId=%s&uploadType=media", u.thumbnailURL, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, file)
	if err != nil {
		return errors.Wrap(err, "youtube.SetThumbnail.NewRequest")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "youtube.SetThumbnail.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError("set thumbnail", resp)
	}
	return nil
}

func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return errors.Errorf("youtube: %s failed with status %d: %s", op, resp.StatusCode, bytes.TrimSpace(body))
}

// progressReader reports upload percentage as the request body is consumed.
// The status and time-remaining strings match what the desktop UI renders.
type progressReader struct {
	r           io.Reader
	total       int64
	read        int64
	lastPercent int
	onProgress  platforms.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		percent := int(float64(p.read) / float64(p.total) * 100)
		if percent > 100 {
			percent = 100
		}
		if percent != p.lastPercent {
			p.lastPercent = percent
			statusText := "Uploading..."
			if percent >= 100 {
				statusText = "Processing..."
			}
			p.onProgress(models.UploadProgress{
				Progress:      percent,
				BytesRead:     p.read,
				BytesTotal:    p.total,
				Status:        statusText,
				TimeRemaining: fmt.Sprintf("About %d minutes left", (100-percent)/10),
			})
		}
	}
	return n, err
}
