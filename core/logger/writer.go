package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// fanoutWriter writes each log line to every sink under a single lock.
// Each line is flushed immediately so output survives a crash; the
// per-sink buffer only coalesces one line into a single syscall.
type fanoutWriter struct {
	mu       sync.Mutex
	sinks    []*bufio.Writer
	writeErr error
	closed   bool
}

func newFanoutWriter(writers []io.Writer, bufSize int) *fanoutWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	sinks := make([]*bufio.Writer, 0, len(writers))
	for _, w := range writers {
		if w == nil {
			continue
		}
		sinks = append(sinks, bufio.NewWriterSize(w, bufSize))
	}
	return &fanoutWriter{sinks: sinks}
}

// Write fans the payload out to all sinks, remembering the first error.
func (w *fanoutWriter) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New("logger: writer closed")
	}
	if w.writeErr != nil {
		return w.writeErr
	}
	for _, sink := range w.sinks {
		if _, err := sink.Write(p); err != nil {
			w.writeErr = err
			return err
		}
		if err := sink.Flush(); err != nil {
			w.writeErr = err
			return err
		}
	}
	return nil
}

// Flush forces buffered content out to the underlying sinks.
func (w *fanoutWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

// Close flushes and marks the writer unusable.
func (w *fanoutWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return w.writeErr
	}
	err := w.flushLocked()
	w.closed = true
	if w.writeErr == nil {
		w.writeErr = err
	}
	return err
}

func (w *fanoutWriter) flushLocked() error {
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
