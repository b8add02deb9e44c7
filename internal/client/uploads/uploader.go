// Package uploads runs attachment uploads for a draft as a cancellable
// background unit of work, independent of the foreground's visible lifetime.
package uploads

import (
	"context"
	"fmt"
	"io"
)

// Uploader moves one local file to remote storage. key is the destination
// object key; progress is called with byte deltas as the body is consumed.
// It returns the public remote URI of the uploaded object.
type Uploader interface {
	Upload(ctx context.Context, key, localURI string, progress func(n int64)) (string, error)
}

// UploadError is the terminal failure of an upload task. It identifies which
// attachments failed so a retry can re-attempt only those.
type UploadError struct {
	FailedIndices []int
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for attachments %v", e.FailedIndices)
}

// Percent converts cumulative byte progress into the 0-100 integer the
// display layer expects.
func Percent(uploaded, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(float64(uploaded) / float64(total) * 100)
	if p > 100 {
		p = 100
	}
	return p
}

// progressReader counts bytes as they are read from the underlying reader.
type progressReader struct {
	r  io.Reader
	fn func(n int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.fn != nil {
		p.fn(int64(n))
	}
	return n, err
}
