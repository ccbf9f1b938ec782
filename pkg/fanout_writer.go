package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// FanoutWriter writes to every writer, even if some of them fail.
// Errors of the failing writers are combined into the returned error.
type FanoutWriter struct {
	writers []io.Writer
}

func NewFanoutWriter(writers ...io.Writer) *FanoutWriter {
	fw := &FanoutWriter{}
	for _, w := range writers {
		if w != nil {
			fw.writers = append(fw.writers, w)
		}
	}
	return fw
}

// Write reports the bytes written by the writers that succeeded, summed up.
func (fw *FanoutWriter) Write(p []byte) (n int, err error) {
	for _, w := range fw.writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
