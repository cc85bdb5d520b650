// internal/services/thumbnail_service.go
package services

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/swellapp/swell-backend/internal/config"
)

// ThumbnailService shells out to ffmpeg to grab the first frame of an
// uploaded video.
type ThumbnailService struct {
	ffmpegPath string
}

func NewThumbnailService(cfg *config.Config) *ThumbnailService {
	return &ThumbnailService{ffmpegPath: cfg.Storage.FFmpegPath}
}

func (s *ThumbnailService) CreateThumbnail(ctx context.Context, videoPath, thumbnailPath string) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegPath,
		"-i", videoPath,
		"-ss", "00:00:00",
		"-vframes", "1",
		thumbnailPath,
		"-y",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, out)
	}
	return nil
}

// CreateThumbnailAsync runs thumbnailing in the background after the upload
// has been committed; a failure only loses the thumbnail, not the product.
func (s *ThumbnailService) CreateThumbnailAsync(videoPath, thumbnailPath string) {
	go func() {
		if err := s.CreateThumbnail(context.Background(), videoPath, thumbnailPath); err != nil {
			logrus.WithError(err).WithField("video", videoPath).Error("Thumbnail generation failed")
		}
	}()
}
