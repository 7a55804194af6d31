package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"commentwatch/internal/logging"
)

const (
	defaultStartupTimeout  = 30 * time.Second
	defaultResponseTimeout = 60 * time.Second
)

// Options configures the worker process launch.
type Options struct {
	Command string
	Args    []string
	Dir     string
	// StartupTimeout bounds the wait for the readiness line.
	StartupTimeout time.Duration
	// ResponseTimeout bounds the wait for each scoring response.
	ResponseTimeout time.Duration
}

type readEvent struct {
	line string
	err  error
}

// Bridge owns one external scoring process and presents scoring as a
// synchronous call. Only one request is in flight at a time; the protocol
// has no request identifiers, so concurrent writes would corrupt response
// matching.
type Bridge struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	writer *bufio.Writer
	lines  chan readEvent
	logger *slog.Logger

	responseTimeout time.Duration

	mu      sync.Mutex
	stopped bool
}

// Start launches the worker and blocks until it signals readiness with one
// line on stdout. The readiness line is logged and discarded; it is not part
// of the response protocol. Reaching end-of-stream or the startup timeout
// before that line is a fatal startup error.
func Start(ctx context.Context, opts Options, logger *slog.Logger) (*Bridge, error) {
	command := strings.TrimSpace(opts.Command)
	if command == "" {
		return nil, errors.New("worker command required")
	}
	startupTimeout := opts.StartupTimeout
	if startupTimeout <= 0 {
		startupTimeout = defaultStartupTimeout
	}
	responseTimeout := opts.ResponseTimeout
	if responseTimeout <= 0 {
		responseTimeout = defaultResponseTimeout
	}

	cmd := exec.Command(command, opts.Args...) //nolint:gosec
	cmd.Dir = opts.Dir
	// Own process group so Stop can take down the whole worker tree.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start worker: %w", err)
	}

	b := &Bridge{
		cmd:             cmd,
		stdin:           stdin,
		writer:          bufio.NewWriter(stdin),
		lines:           make(chan readEvent, 4),
		logger:          logging.NewComponentLogger(logger, "worker"),
		responseTimeout: responseTimeout,
	}

	go b.readLines(stdout)
	go b.drainStderr(stderr)

	if err := b.awaitReady(ctx, startupTimeout); err != nil {
		b.Stop()
		return nil, err
	}
	return b, nil
}

// Score sends comments to the worker and returns scored results in input
// order. Transport failures, malformed responses, and timeouts never surface
// as errors: every comment in the batch gets an error-tagged result instead,
// and the cause is logged. If the worker answers with fewer results than
// comments, the shortfall is returned as-is; surplus results are dropped.
func (b *Bridge) Score(ctx context.Context, comments []string) []Result {
	if len(comments) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return b.degraded(comments, errors.New("worker stopped"))
	}

	b.discardStale()

	payload, err := encodeRequest(comments)
	if err != nil {
		return b.degraded(comments, err)
	}
	if _, err := b.writer.Write(payload); err != nil {
		return b.degraded(comments, fmt.Errorf("write request: %w", err))
	}
	if err := b.writer.Flush(); err != nil {
		return b.degraded(comments, fmt.Errorf("flush request: %w", err))
	}

	timer := time.NewTimer(b.responseTimeout)
	defer timer.Stop()

	select {
	case ev, ok := <-b.lines:
		if !ok {
			return b.degraded(comments, errors.New("worker stdout closed"))
		}
		if ev.err != nil {
			return b.degraded(comments, fmt.Errorf("read response: %w", ev.err))
		}
		resp, err := decodeResponse([]byte(ev.line))
		if err != nil {
			return b.degraded(comments, err)
		}
		results := resp.Results
		if len(results) > len(comments) {
			results = results[:len(comments)]
		}
		return results
	case <-timer.C:
		return b.degraded(comments, fmt.Errorf("no response after %s", b.responseTimeout))
	case <-ctx.Done():
		return b.degraded(comments, ctx.Err())
	}
}

// Stop terminates the worker process tree and releases its pipes. It is
// idempotent and never fails when the process already exited.
func (b *Bridge) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	b.mu.Unlock()

	if b.stdin != nil {
		_ = b.stdin.Close()
	}
	if b.cmd != nil && b.cmd.Process != nil {
		if pgid, err := unix.Getpgid(b.cmd.Process.Pid); err == nil {
			_ = unix.Kill(-pgid, unix.SIGKILL)
		} else {
			_ = b.cmd.Process.Kill()
		}
		_ = b.cmd.Wait()
	}
	b.logger.Info("worker stopped")
}

func (b *Bridge) awaitReady(ctx context.Context, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-b.lines:
		if !ok {
			return errors.New("worker closed stdout before signalling readiness")
		}
		if ev.err != nil {
			return fmt.Errorf("worker failed before readiness: %w", ev.err)
		}
		b.logger.Info("worker ready", logging.String("banner", strings.TrimSpace(ev.line)))
		return nil
	case <-timer.C:
		return fmt.Errorf("worker not ready after %s", timeout)
	case <-ctx.Done():
		return fmt.Errorf("worker startup: %w", ctx.Err())
	}
}

// readLines feeds worker stdout to the single in-flight reader. The channel
// is closed once the stream ends so pending and future reads observe EOF.
func (b *Bridge) readLines(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			b.lines <- readEvent{line: line}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				b.lines <- readEvent{err: err}
			}
			close(b.lines)
			return
		}
	}
}

// discardStale drops response lines left over from a timed-out call so they
// are not matched against the next request.
func (b *Bridge) discardStale() {
	for {
		select {
		case ev, ok := <-b.lines:
			if !ok || ev.err != nil {
				return
			}
			b.logger.Warn("discarding stale worker output",
				logging.String("line", strings.TrimSpace(ev.line)))
		default:
			return
		}
	}
}

func (b *Bridge) drainStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		b.logger.Debug("worker stderr", logging.String("line", scanner.Text()))
	}
}

func (b *Bridge) degraded(comments []string, cause error) []Result {
	b.logger.Warn("scoring degraded",
		logging.Int("comments", len(comments)),
		logging.Error(cause))
	results := make([]Result, len(comments))
	for i := range results {
		results[i] = Result{Status: StatusError}
	}
	return results
}
