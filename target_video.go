package nimsforestgallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	smarttv "github.com/nimsforest/nimsforestsmarttv"
)

// VideoTarget records gallery frames into an MP4 with ffmpeg and streams
// it to a Smart TV. Animated visuals advance one frame per video frame.
type VideoTarget struct {
	tv         *smarttv.TV
	tvRenderer *smarttv.Renderer
	fps        int
	duration   time.Duration
	httpServer *http.Server
	videoFile  string
	localIP    string
	port       int
	log        *slog.Logger

	mu     sync.Mutex
	frame  *Frame
	source FrameSource
}

// VideoOption configures a VideoTarget.
type VideoOption func(*VideoTarget)

// WithVideoFPS sets the video frame rate.
func WithVideoFPS(fps int) VideoOption {
	return func(t *VideoTarget) {
		t.fps = fps
	}
}

// WithVideoDuration sets the video duration.
func WithVideoDuration(d time.Duration) VideoOption {
	return func(t *VideoTarget) {
		t.duration = d
	}
}

// WithVideoPort sets the port the video is served from.
func WithVideoPort(port int) VideoOption {
	return func(t *VideoTarget) {
		t.port = port
	}
}

// WithVideoLogger sets the target's logger.
func WithVideoLogger(l *slog.Logger) VideoOption {
	return func(t *VideoTarget) {
		t.log = l
	}
}

// NewVideoTarget creates a target that streams video to a Smart TV.
func NewVideoTarget(tv *smarttv.TV, opts ...VideoOption) (*VideoTarget, error) {
	target := &VideoTarget{
		tv:       tv,
		fps:      10,
		duration: 60 * time.Second,
		port:     8889,
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(target)
	}
	if target.fps <= 0 {
		return nil, fmt.Errorf("video fps must be positive, got %d", target.fps)
	}

	renderer, err := smarttv.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("create smarttv renderer: %w", err)
	}
	target.tvRenderer = renderer
	target.localIP = getLocalIP()

	return target, nil
}

// Name implements Target.
func (t *VideoTarget) Name() string {
	if t.tv != nil {
		return fmt.Sprintf("VideoTarget(%s)", t.tv.Name)
	}
	return "VideoTarget"
}

// SetFrameSource sets where recorded frames come from. Without one the
// latest frame passed to Update is repeated for the whole video.
func (t *VideoTarget) SetFrameSource(s FrameSource) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.source = s
}

// Update implements Target. It only remembers the frame; call Start to
// record and stream.
func (t *VideoTarget) Update(ctx context.Context, f *Frame) error {
	t.mu.Lock()
	t.frame = f
	t.mu.Unlock()
	return nil
}

// Start records the video and tells the TV to stream it.
func (t *VideoTarget) Start(ctx context.Context) error {
	t.mu.Lock()
	source := t.source
	if source == nil && t.frame != nil {
		source = NewStaticFrameSource(t.frame)
	}
	t.mu.Unlock()

	if source == nil {
		return fmt.Errorf("no frame set - call Update or SetFrameSource first")
	}

	videoFile, err := t.generateVideo(ctx, source)
	if err != nil {
		return fmt.Errorf("generate video: %w", err)
	}
	t.videoFile = videoFile

	if err := t.startHTTPServer(); err != nil {
		return fmt.Errorf("start HTTP server: %w", err)
	}

	videoURL := fmt.Sprintf("http://%s:%d/stream.mp4", t.localIP, t.port)
	if err := t.tvRenderer.StreamVideo(ctx, t.tv, videoURL, "nimsforestgallery"); err != nil {
		return fmt.Errorf("stream to TV: %w", err)
	}
	t.log.Info("streaming video", "tv", t.Name(), "url", videoURL)

	return nil
}

func (t *VideoTarget) generateVideo(ctx context.Context, source FrameSource) (string, error) {
	first, err := source.NextFrame()
	if err != nil {
		return "", fmt.Errorf("first frame: %w", err)
	}
	if first == nil {
		return "", fmt.Errorf("first frame: %w", ErrEmptyData)
	}
	// yuv420p needs even dimensions.
	width := int(first.Width) &^ 1
	height := int(first.Height) &^ 1

	totalFrames := int(t.duration.Seconds() * float64(t.fps))
	videoFile := fmt.Sprintf("%s/nimsforestgallery_%d.mp4", os.TempDir(), time.Now().UnixNano())

	ffmpeg := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(t.fps),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-profile:v", "baseline",
		"-level", "3.0",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		videoFile,
	)

	ffmpegIn, err := ffmpeg.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("create pipe: %w", err)
	}
	ffmpeg.Stderr = io.Discard

	if err := ffmpeg.Start(); err != nil {
		return "", fmt.Errorf("start ffmpeg: %w", err)
	}

	f := first
	for i := 0; i < totalFrames; i++ {
		select {
		case <-ctx.Done():
			ffmpegIn.Close()
			ffmpeg.Wait()
			os.Remove(videoFile)
			return "", ctx.Err()
		default:
		}

		if i > 0 {
			if next, err := source.NextFrame(); err == nil && next != nil {
				f = next
			}
		}

		c := NewRasterCanvas(width, height)
		f.Render(c)
		if _, err := ffmpegIn.Write(c.Image().Pix); err != nil {
			break
		}
	}

	ffmpegIn.Close()
	if err := ffmpeg.Wait(); err != nil {
		os.Remove(videoFile)
		return "", fmt.Errorf("ffmpeg encode: %w", err)
	}

	return videoFile, nil
}

func (t *VideoTarget) startHTTPServer() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/stream.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		http.ServeFile(w, r, t.videoFile)
	})

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return err
	}
	t.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := t.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.log.Error("video server stopped", "err", err)
		}
	}()
	return nil
}

// Close implements Target.
func (t *VideoTarget) Close() error {
	if t.httpServer != nil {
		t.httpServer.Shutdown(context.Background())
	}
	if t.tvRenderer != nil {
		t.tvRenderer.Close()
	}
	if t.videoFile != "" {
		os.Remove(t.videoFile)
	}
	return nil
}

// Stop stops video playback on the TV.
func (t *VideoTarget) Stop(ctx context.Context) error {
	return t.tvRenderer.Stop(ctx, t.tv)
}

// getLocalIP returns the local IP address.
func getLocalIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "localhost"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
