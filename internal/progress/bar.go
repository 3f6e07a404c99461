package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// refreshInterval limits how often the bar is redrawn.
const refreshInterval = 100 * time.Millisecond

// Bar draws a single-line chunk progress indicator with percentage and elapsed time.
// Its Update method matches the cipher engine's progress callback.
type Bar struct {
	output     io.Writer
	width      int
	message    string
	done       int
	total      int
	start      time.Time
	lastUpdate time.Time
	drawn      bool
	mu         sync.Mutex
}

// NewBar creates a progress bar writing to output with a bar width in characters
// and a message describing the operation.
func NewBar(output io.Writer, width int, message string) *Bar {
	return &Bar{
		output:  output,
		width:   width,
		message: message,
		start:   time.Now(),
	}
}

// Update records progress and redraws the bar at most every 100ms.
// The final chunk is always drawn.
func (b *Bar) Update(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.done = min(done, total)
	b.total = total

	if b.done < b.total && time.Since(b.lastUpdate) < refreshInterval {
		return
	}
	b.lastUpdate = time.Now()
	b.drawn = true

	_, _ = fmt.Fprint(b.output, b.render())
}

// Finish ends the bar line if anything was drawn.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.drawn {
		_, _ = fmt.Fprintln(b.output)
		b.drawn = false
	}
}

// String returns the current bar without the carriage return.
func (b *Bar) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimPrefix(b.render(), "\r")
}

func (b *Bar) render() string {
	percent := 0.0
	if b.total > 0 {
		percent = float64(b.done) / float64(b.total)
	}

	filled := int(percent * float64(b.width))
	bar := strings.Repeat("=", filled) + strings.Repeat("-", b.width-filled)
	elapsed := time.Since(b.start).Round(time.Millisecond)

	return fmt.Sprintf("\r%s [%s] %.1f%% | %d/%d chunks | %s",
		b.message, bar, percent*100, b.done, b.total, elapsed)
}
