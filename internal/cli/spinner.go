package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on a terminal while a slow stage runs.
// On anything other than a terminal it stays silent.
type spinner struct {
	message string
	w       io.Writer
	enabled bool

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}

	mu      sync.Mutex
	started bool
	once    sync.Once
}

// newSpinnerTo creates a spinner bound to ctx. A disabled spinner never draws.
func newSpinnerTo(ctx context.Context, w io.Writer, message string, enabled bool) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		message: message,
		w:       w,
		enabled: enabled,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. It is a no-op when disabled.
func (s *spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.started {
		return
	}
	s.started = true

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.mu.Lock()
				s.clearLine()
				s.mu.Unlock()
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call more than once
// and without a prior Start.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
	})
}

// clearLine blanks the animation line. Callers hold mu.
func (s *spinner) clearLine() {
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Write clears the animation line before passing p through, so log output
// printed while the spinner runs starts on a clean line.
func (s *spinner) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		s.clearLine()
	}
	return s.w.Write(p)
}

// spin runs fn behind a spinner on the log writer. While it runs, the CLI
// logger writes through the spinner.
func (c *CLI) spin(ctx context.Context, message string, fn func() error) error {
	w := c.stderr()
	f, ok := w.(*os.File)
	s := newSpinnerTo(ctx, w, message, ok && isTerminal(f))
	if s.enabled {
		c.Logger.SetOutput(s)
		defer c.Logger.SetOutput(w)
	}
	s.Start()
	defer s.Stop()
	return fn()
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
