package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/facegate/pkg/slogx"
)

// FFmpegOpener decodes camera sources with an external ffmpeg binary that
// re-encodes them to an MJPEG image pipe on stdout.
type FFmpegOpener struct {
	// Path to the ffmpeg binary (default: "ffmpeg")
	Path string

	// FrameRate caps the frames per second ffmpeg emits (default: 10)
	FrameRate int

	// StartTimeout bounds how long Open waits for the first frame
	// (default: 10s)
	StartTimeout time.Duration

	// MaxFrameSize bounds a single frame (default: DefaultMaxFrameSize)
	MaxFrameSize int
}

var _ Opener = (*FFmpegOpener)(nil)

// Args returns the ffmpeg arguments used for src.
func (o *FFmpegOpener) Args(src string) []string {
	fps := o.FrameRate
	if fps <= 0 {
		fps = 10
	}

	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin"}
	if strings.HasPrefix(strings.ToLower(src), "rtsp://") {
		args = append(args, "-rtsp_transport", "tcp")
	}
	return append(args,
		"-i", src,
		"-an",
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-q:v", "5",
		"-r", strconv.Itoa(fps),
		"pipe:1",
	)
}

// Open starts ffmpeg for rawURL and waits for its first frame. The process
// lives until Close is called or ctx is done.
func (o *FFmpegOpener) Open(ctx context.Context, rawURL string, creds Credentials) (FrameSource, error) {
	src, err := withCredentials(rawURL, creds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	path := o.Path
	if path == "" {
		path = "ffmpeg"
	}
	startTimeout := o.StartTimeout
	if startTimeout <= 0 {
		startTimeout = 10 * time.Second
	}

	procCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(procCtx, path, o.Args(src)...)
	stderr := &tailBuffer{max: 2048}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: start ffmpeg: %w", ErrUnavailable, err)
	}

	s := &ffmpegSource{
		cmd:     cmd,
		procCtx: procCtx,
		cancel:  cancel,
		stderr:  stderr,
		frames:  make(chan []byte, 1),
		done:    make(chan struct{}),
	}
	go s.pump(NewJPEGReader(stdout, o.MaxFrameSize))

	first, err := s.waitFirst(ctx, startTimeout)
	if err != nil {
		_ = s.Close()
		slogx.FromContext(ctx).Warn("camera source unavailable",
			"error", err,
			"ffmpeg_stderr", stderr.String(),
		)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	s.pending = first

	return s, nil
}

func withCredentials(rawURL string, creds Credentials) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return "", fmt.Errorf("invalid source url %q", u.Redacted())
	}
	if u.User == nil && creds.Username != "" {
		u.User = url.UserPassword(creds.Username, creds.Password)
	}
	return u.String(), nil
}

type ffmpegSource struct {
	cmd     *exec.Cmd
	procCtx context.Context
	cancel  context.CancelFunc
	stderr  *tailBuffer

	frames  chan []byte
	done    chan struct{}
	err     error // set before done is closed
	pending []byte

	closeOnce sync.Once
	closeErr  error
}

// pump reads frames until the pipe ends. Sends block, so a slow consumer
// slows ffmpeg down through the pipe.
func (s *ffmpegSource) pump(r *JPEGReader) {
	defer close(s.done)

	for {
		frame, err := r.ReadFrame()
		if err != nil {
			s.err = err
			return
		}

		select {
		case s.frames <- frame:
		case <-s.procCtx.Done():
			s.err = io.EOF
			return
		}
	}
}

func (s *ffmpegSource) waitFirst(ctx context.Context, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case frame := <-s.frames:
		return frame, nil
	case <-s.done:
		select {
		case frame := <-s.frames:
			return frame, nil
		default:
		}
		if errors.Is(s.err, io.EOF) {
			return nil, errors.New("ffmpeg exited before the first frame")
		}
		return nil, s.err
	case <-timer.C:
		return nil, fmt.Errorf("no frame within %s", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *ffmpegSource) Next(ctx context.Context) ([]byte, error) {
	if s.pending != nil {
		f := s.pending
		s.pending = nil
		return f, nil
	}

	select {
	case frame := <-s.frames:
		return frame, nil
	case <-s.done:
		// Drain a frame that raced with the end of the stream.
		select {
		case frame := <-s.frames:
			return frame, nil
		default:
		}
		return nil, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *ffmpegSource) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
		err := s.cmd.Wait()
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) && !errors.Is(err, context.Canceled) {
			s.closeErr = err
		}
	})
	return s.closeErr
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.TrimSpace(string(t.buf))
}
