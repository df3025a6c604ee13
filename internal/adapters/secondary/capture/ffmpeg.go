package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/fredcamaral/slidecast/internal/adapters/secondary/output"
	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

const ffmpegInstallHint = "install ffmpeg (https://ffmpeg.org/download.html) or set capture.ffmpeg_path"

// EncodeError carries the encoder's diagnostic output
type EncodeError struct {
	Stderr string
	Err    error
}

func (e *EncodeError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("ffmpeg failed: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg failed: %v: %s", e.Err, stderr)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// FFmpegEncoder implements ports.VideoEncoder with an ffmpeg subprocess fed
// PNG frames on stdin.
type FFmpegEncoder struct {
	path   string
	logger *slog.Logger
}

// NewFFmpegEncoder creates an encoder. An empty path looks ffmpeg up on PATH
// when the encoder is first used.
func NewFFmpegEncoder(path string, logger *slog.Logger) *FFmpegEncoder {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = "ffmpeg"
	}

	return &FFmpegEncoder{
		path:   path,
		logger: logger.With("service", "ffmpeg_encoder"),
	}
}

// Check resolves the ffmpeg binary
func (e *FFmpegEncoder) Check() error {
	_, err := e.binary()
	return err
}

func (e *FFmpegEncoder) binary() (string, error) {
	path, err := exec.LookPath(e.path)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found (%s)", ports.ErrEncoderNotFound, e.path, ffmpegInstallHint)
	}
	return path, nil
}

// Encode writes the frames to outPath. ffmpeg writes a temporary file in the
// destination directory which replaces outPath only when encoding succeeds.
func (e *FFmpegEncoder) Encode(ctx context.Context, frames []entities.Frame, opts entities.EncodeOptions, outPath string) error {
	if len(frames) == 0 {
		return errors.New("no frames to encode")
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", opts.FPS)
	}

	bin, err := e.binary()
	if err != nil {
		return err
	}

	pending, err := output.Create(outPath)
	if err != nil {
		return err
	}
	defer pending.Discard()

	args := ffmpegArgs(opts, pending.Path())

	// #nosec G204 - binary resolved through LookPath, arguments are fixed
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening ffmpeg stdin: %w", err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg: %w", err)
	}

	writeErr := writeFrames(stdin, frames)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()

	switch {
	case waitErr != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &EncodeError{Stderr: stderr.String(), Err: ctxErr}
		}
		return &EncodeError{Stderr: stderr.String(), Err: waitErr}
	case writeErr != nil:
		return &EncodeError{Stderr: stderr.String(), Err: writeErr}
	case closeErr != nil:
		return &EncodeError{Stderr: stderr.String(), Err: closeErr}
	}

	if err := pending.Commit(); err != nil {
		return err
	}

	e.logger.Info("Video encoded",
		slog.String("output", outPath),
		slog.Int("frames", entities.TotalFrames(frames)),
		slog.Int("fps", opts.FPS),
		slog.Duration("took", time.Since(start)),
	)

	return nil
}

func ffmpegArgs(opts entities.EncodeOptions, outPath string) []string {
	fps := strconv.Itoa(opts.FPS)
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "image2pipe",
		"-framerate", fps,
		"-c:v", "png",
		"-i", "-",
	}
	if opts.Codec != "" {
		args = append(args, "-c:v", opts.Codec)
	}
	if opts.PixelFormat != "" {
		args = append(args, "-pix_fmt", opts.PixelFormat)
	}
	if opts.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(opts.CRF))
	}
	return append(args, "-r", fps, outPath)
}

// writeFrames encodes each distinct image once and repeats the bytes for
// every video frame it fills.
func writeFrames(w io.Writer, frames []entities.Frame) error {
	var buf bytes.Buffer
	for i, frame := range frames {
		buf.Reset()
		if err := png.Encode(&buf, frame.Image); err != nil {
			return fmt.Errorf("encoding frame %d: %w", i+1, err)
		}
		for n := 0; n < frame.Count; n++ {
			if _, err := w.Write(buf.Bytes()); err != nil {
				return fmt.Errorf("writing frame %d: %w", i+1, err)
			}
		}
	}
	return nil
}

var _ ports.VideoEncoder = (*FFmpegEncoder)(nil)
