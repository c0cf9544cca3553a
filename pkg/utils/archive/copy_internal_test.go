package archive

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

type stubWriteCloser struct {
	buf      bytes.Buffer
	writeErr error
	closeErr error
	closed   bool
}

func (w *stubWriteCloser) Write(p []byte) (int, error) {
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.buf.Write(p)
}

func (w *stubWriteCloser) Close() error {
	w.closed = true
	return w.closeErr
}

func TestCopyAndClose(t *testing.T) {
	t.Run("copies and closes", func(t *testing.T) {
		w := &stubWriteCloser{}
		gt.NoError(t, copyAndClose(w, strings.NewReader("payload")))
		gt.Value(t, w.buf.String()).Equal("payload")
		gt.Value(t, w.closed).Equal(true)
	})

	t.Run("close error is returned", func(t *testing.T) {
		closeErr := errors.New("disk full on flush")
		w := &stubWriteCloser{closeErr: closeErr}

		err := copyAndClose(w, strings.NewReader("payload"))
		gt.Value(t, errors.Is(err, closeErr)).Equal(true)
	})

	t.Run("write error wins over close", func(t *testing.T) {
		writeErr := errors.New("write failed")
		w := &stubWriteCloser{writeErr: writeErr, closeErr: errors.New("close failed")}

		err := copyAndClose(w, strings.NewReader("payload"))
		gt.Value(t, errors.Is(err, writeErr)).Equal(true)
		gt.Value(t, w.closed).Equal(true)
	})
}
