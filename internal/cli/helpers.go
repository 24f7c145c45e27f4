package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/tui"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout trace output).
// With a log file, records are also appended there as JSON.
// The returned function closes the log file.
func NewLogger(debug bool, logFile string) (*slog.Logger, func() error, error) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	if logFile == "" {
		if debug {
			return logging.New(level), noop, nil
		}
		return logging.NewNop(), noop, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.NewWithFile(level, f), f.Close, nil
}

func noop() error { return nil }

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// printMarkdown renders markdown through glamour on terminals and prints it raw otherwise.
func printMarkdown(w io.Writer, markdown string) error {
	if !tui.IsTerminal(w) {
		_, err := io.WriteString(w, markdown)
		return err
	}
	out, err := tui.NewRenderer()(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
