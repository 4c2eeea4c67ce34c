// Package report provides training-output sinks and ASCII chart rendering.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives one line of report output at a time. It replaces the
// process-wide output-file singleton of the original demos; whatever
// needs to report gets a Sink handed to it.
type Sink interface {
	WriteLine(line string) error
}

// Discard is a Sink that drops everything.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) WriteLine(string) error { return nil }

// WriterSink writes lines to any io.Writer.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps w as a Sink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteLine writes one line followed by a newline.
func (s *WriterSink) WriteLine(line string) error {
	_, err := fmt.Fprintln(s.w, line)
	return err
}

// FileSink is a Sink backed by a file with an explicit lifecycle.
type FileSink struct {
	file *os.File
}

// NewFileSink creates (or truncates) the file at path, creating parent
// directories as needed.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return &FileSink{file: file}, nil
}

// WriteLine appends one line to the file.
func (s *FileSink) WriteLine(line string) error {
	_, err := fmt.Fprintln(s.file, line)
	return err
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	return s.file.Close()
}
