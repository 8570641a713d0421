package nimsforestgallery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"time"

	smarttv "github.com/nimsforest/nimsforestsmarttv"
)

// SmartTVTarget displays frames on Smart TVs as still images via DLNA.
// Frames are rasterised locally and sent through nimsforestsmarttv.
type SmartTVTarget struct {
	tv             *smarttv.TV
	renderer       *smarttv.Renderer
	useJFIF        bool // Convert to JFIF format for better TV compatibility
	lastSeq        uint64
	lastImageBytes []byte // Cache to avoid redundant updates
}

// TVOption configures a SmartTVTarget.
type TVOption func(*SmartTVTarget)

// WithJFIF enables JFIF conversion for better TV compatibility.
// Requires ffmpeg and imagemagick to be installed.
func WithJFIF(enable bool) TVOption {
	return func(t *SmartTVTarget) {
		t.useJFIF = enable
	}
}

// NewSmartTVTarget creates a target that displays frames on a Smart TV.
func NewSmartTVTarget(tv *smarttv.TV, opts ...TVOption) (*SmartTVTarget, error) {
	target := &SmartTVTarget{
		tv:      tv,
		useJFIF: true, // Default to JFIF for better compatibility
	}

	for _, opt := range opts {
		opt(target)
	}

	renderer, err := smarttv.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("create smarttv renderer: %w", err)
	}
	target.renderer = renderer

	return target, nil
}

// Name implements Target.
func (t *SmartTVTarget) Name() string {
	if t.tv != nil {
		return fmt.Sprintf("SmartTV(%s)", t.tv.Name)
	}
	return "SmartTV"
}

// Update implements Target.
func (t *SmartTVTarget) Update(ctx context.Context, f *Frame) error {
	if f == nil {
		return nil
	}
	if f.Seq != 0 && f.Seq == t.lastSeq {
		return nil
	}
	t.lastSeq = f.Seq

	img := RasterizeFrame(f)

	var jpegData []byte
	var err error
	if t.useJFIF {
		jpegData, err = convertToJFIF(ctx, img)
	} else {
		jpegData, err = encodeJPEG(img)
	}
	if err != nil {
		return fmt.Errorf("convert to JPEG: %w", err)
	}

	// Skip if image hasn't changed
	if bytes.Equal(jpegData, t.lastImageBytes) {
		return nil
	}
	t.lastImageBytes = jpegData

	if err := t.renderer.DisplayImageJPEG(ctx, t.tv, jpegData); err != nil {
		return fmt.Errorf("display on TV: %w", err)
	}

	return nil
}

// Close implements Target.
func (t *SmartTVTarget) Close() error {
	if t.renderer != nil {
		t.renderer.Close()
	}
	return nil
}

// Stop stops playback on the TV.
func (t *SmartTVTarget) Stop(ctx context.Context) error {
	return t.renderer.Stop(ctx, t.tv)
}

// convertToJFIF converts an image to JFIF-compliant JPEG using ffmpeg + magick.
// This produces JPEG files that are compatible with more TVs (especially JVC).
func convertToJFIF(ctx context.Context, img *image.RGBA) ([]byte, error) {
	bounds := img.Bounds()

	stamp := time.Now().UnixNano()
	tmpFile := fmt.Sprintf("%s/gallery_%d.jpg", os.TempDir(), stamp)
	jfifFile := fmt.Sprintf("%s/gallery_%d_jfif.jpg", os.TempDir(), stamp)
	defer os.Remove(tmpFile)
	defer os.Remove(jfifFile)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		"-i", "pipe:0",
		"-vframes", "1",
		"-pix_fmt", "yuvj420p",
		"-q:v", "2",
		tmpFile,
	)
	cmd.Stdin = bytes.NewReader(img.Pix)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}

	cmd2 := exec.CommandContext(ctx, "magick", tmpFile, jfifFile)
	if err := cmd2.Run(); err != nil {
		// Fallback to ffmpeg output if magick not available
		return os.ReadFile(tmpFile)
	}

	return os.ReadFile(jfifFile)
}

// encodeJPEG encodes an image as standard JPEG (may not work on all TVs).
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
