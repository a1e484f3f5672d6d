package media

import (
	"bufio"
	"errors"
	"io"
)

// DefaultMaxFrameSize bounds a single JPEG frame.
const DefaultMaxFrameSize = 8 << 20

var ErrFrameTooLarge = errors.New("media: frame exceeds size limit")

// JPEGReader splits a concatenated JPEG byte stream, as written by an
// image2pipe muxer, into frames on the SOI (FFD8) and EOI (FFD9) markers.
// Bytes outside a frame are skipped.
type JPEGReader struct {
	r   *bufio.Reader
	max int
}

func NewJPEGReader(r io.Reader, maxFrameSize int) *JPEGReader {
	if maxFrameSize <= 0 {
		maxFrameSize = DefaultMaxFrameSize
	}
	return &JPEGReader{r: bufio.NewReaderSize(r, 64<<10), max: maxFrameSize}
}

// ReadFrame returns the next complete frame. It returns io.EOF when the
// stream ends between frames and io.ErrUnexpectedEOF when it ends inside one.
func (j *JPEGReader) ReadFrame() ([]byte, error) {
	var prev byte
	for {
		b, err := j.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if prev == 0xFF && b == 0xD8 {
			break
		}
		prev = b
	}

	frame := make([]byte, 2, 64<<10)
	frame[0], frame[1] = 0xFF, 0xD8

	prev = 0
	for {
		b, err := j.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}

		frame = append(frame, b)
		if len(frame) > j.max {
			return nil, ErrFrameTooLarge
		}
		if prev == 0xFF && b == 0xD9 {
			return frame, nil
		}
		prev = b
	}
}
