package media

import (
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
)

// MJPEGBoundary separates frames in the multipart stream.
const MJPEGBoundary = "frame"

// MJPEGWriter writes JPEG frames as a multipart/x-mixed-replace body, the
// format browsers render as a live image.
type MJPEGWriter struct {
	mw    *multipart.Writer
	flush func() error
}

// NewMJPEGWriter writes parts to w and calls flush after every frame. flush
// may be nil.
func NewMJPEGWriter(w io.Writer, flush func() error) *MJPEGWriter {
	mw := multipart.NewWriter(w)
	_ = mw.SetBoundary(MJPEGBoundary)
	return &MJPEGWriter{mw: mw, flush: flush}
}

// ContentType is the value for the response Content-Type header.
func (m *MJPEGWriter) ContentType() string {
	return "multipart/x-mixed-replace; boundary=" + MJPEGBoundary
}

// WriteFrame writes one JPEG part and flushes it.
func (m *MJPEGWriter) WriteFrame(jpeg []byte) error {
	h := make(textproto.MIMEHeader, 2)
	h.Set("Content-Type", "image/jpeg")
	h.Set("Content-Length", strconv.Itoa(len(jpeg)))

	part, err := m.mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := part.Write(jpeg); err != nil {
		return err
	}

	if m.flush != nil {
		return m.flush()
	}
	return nil
}

// Close writes the closing boundary.
func (m *MJPEGWriter) Close() error {
	return m.mw.Close()
}
