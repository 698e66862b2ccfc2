package main

import (
	"strings"
	"sync"
)

// logBuffer keeps the last lines written to it, so that log output may be shown inside the viewer
// instead of corrupting the terminal.
type logBuffer struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func newLogBuffer(n int) *logBuffer {
	return &logBuffer{max: n}
}

// Write implements io.Writer.
func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		b.lines = append(b.lines, line)
	}
	if len(b.lines) > b.max {
		b.lines = b.lines[len(b.lines)-b.max:]
	}
	return len(p), nil
}

// Lines returns the lines kept.
func (b *logBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}
