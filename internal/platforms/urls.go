package platforms

import (
	"fmt"

	"github.com/uploadstudio/backend/internal/models"
)

// VideoURL derives the canonical public URL for an uploaded video. Unknown
// platforms yield an empty string, never an error.
func VideoURL(platform, videoID string) string {
	switch platform {
	case models.PlatformYouTube:
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	case models.PlatformTikTok:
		return fmt.Sprintf("https://www.tiktok.com/@username/video/%s", videoID)
	case models.PlatformInstagram:
		return fmt.Sprintf("https://www.instagram.com/p/%s/", videoID)
	default:
		return ""
	}
}
