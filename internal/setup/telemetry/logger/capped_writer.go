package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// CappedWriter appends log output to a file and keeps the file at roughly
// maxLines lines. Once twice that many lines have been written since the last
// rewrite, the file is replaced by its newest maxLines lines.
type CappedWriter struct {
	file     *os.File
	path     string
	tail     *lineRing
	written  int
	maxLines int
	mu       sync.Mutex
}

// NewCappedWriter opens or creates the file at path for appending.
func NewCappedWriter(path string, maxLines int) (*CappedWriter, error) {
	if maxLines <= 0 {
		maxLines = 10000
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	return &CappedWriter{
		file:     file,
		path:     path,
		tail:     newLineRing(maxLines),
		maxLines: maxLines,
	}, nil
}

// Write implements io.Writer.
func (w *CappedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}

	for line := range bytes.SplitSeq(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		w.tail.push(string(line))
		w.written++

		if w.written >= w.maxLines*2 {
			if err := w.rewrite(); err != nil {
				return n, fmt.Errorf("failed to rotate log file: %w", err)
			}
			w.written = w.tail.len()
		}
	}

	return n, nil
}

// Sync flushes the underlying file.
func (w *CappedWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

// Close closes the underlying file.
func (w *CappedWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// rewrite replaces the log file with the buffered tail.
func (w *CappedWriter) rewrite() error {
	temp, err := os.CreateTemp(filepath.Dir(w.path), "temp-log-")
	if err != nil {
		return err
	}
	tempPath := temp.Name()

	if err := writeLines(temp, w.tail.lines()); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return err
	}
	temp.Close()
	w.file.Close()

	// Windows refuses to rename over an existing file
	os.Remove(w.path)

	if err := os.Rename(tempPath, w.path); err != nil {
		return err
	}

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w.file = file

	return nil
}

func writeLines(f *os.File, lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if _, err := io.Copy(f, &buf); err != nil {
		return err
	}
	return f.Sync()
}

// lineRing keeps the most recent lines up to a fixed capacity.
type lineRing struct {
	buf  []string
	next int
	full bool
}

func newLineRing(capacity int) *lineRing {
	return &lineRing{buf: make([]string, capacity)}
}

func (r *lineRing) push(line string) {
	r.buf[r.next] = line
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

func (r *lineRing) len() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// lines returns the buffered lines oldest first.
func (r *lineRing) lines() []string {
	if !r.full {
		return append([]string(nil), r.buf[:r.next]...)
	}

	out := make([]string, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}
