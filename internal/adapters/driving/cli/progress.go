package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// progressInterval is the minimum time between progress lines.
const progressInterval = 250 * time.Millisecond

// progressPrinter writes "[current/total] message" lines, at most one per
// interval. The final step is always written.
type progressPrinter struct {
	mu    sync.Mutex
	w     io.Writer
	every rate.Sometimes
}

func newProgressPrinter(w io.Writer, interval time.Duration) *progressPrinter {
	return &progressPrinter{
		w:     w,
		every: rate.Sometimes{First: 1, Interval: interval},
	}
}

// Report matches driven.ProgressFunc.
func (p *progressPrinter) Report(current, total int, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if current >= total {
		p.write(current, total, message)
		return
	}
	p.every.Do(func() {
		p.write(current, total, message)
	})
}

func (p *progressPrinter) write(current, total int, message string) {
	fmt.Fprintf(p.w, "[%d/%d] %s\n", current, total, message)
}
