package mediaimpl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Remux copies the video and audio streams into out with ffmpeg.
func (m *MediaImpl) Remux(ctx context.Context, videoPath, audioPath, out string) error {
	cmd := exec.CommandContext(ctx, m.ffmpegPath,
		"-y", "-loglevel", "error",
		"-i", videoPath,
		"-i", audioPath,
		"-c", "copy",
		out,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(out)
		return fmt.Errorf("ffmpeg remux failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(out)
	if err != nil {
		return fmt.Errorf("ffmpeg produced no output: %w", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(out)
		return fmt.Errorf("ffmpeg produced an empty file")
	}

	m.logger.Info("Merged video and audio", "out", out)
	return nil
}
