package natalyexec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kodkafa/nataly/internal/domain"
	"github.com/kodkafa/nataly/internal/ports"
)

const defaultBinary = "nataly-engine"
const defaultTimeout = 60 * time.Second
const maxStderrBytes = 16 * 1024

// Engine invokes the external nataly computation binary. The request travels
// as JSON on stdin and the chart summary comes back as JSON on stdout; all
// chart math stays on the other side of the process boundary.
type Engine struct {
	binary  string
	timeout time.Duration
}

type Option func(*Engine)

// WithBinary overrides the engine executable (name resolved via PATH, or a path).
func WithBinary(bin string) Option {
	return func(e *Engine) {
		if strings.TrimSpace(bin) != "" {
			e.binary = bin
		}
	}
}

// WithTimeout bounds a single computation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		binary:  defaultBinary,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ports.ChartEngine = (*Engine)(nil)

func (e *Engine) Compute(ctx context.Context, req domain.ChartRequest, ephePath string) (domain.ChartSummary, error) {
	utc, err := req.UTC()
	if err != nil {
		return domain.ChartSummary{}, err
	}

	payload, err := json.Marshal(wireRequest{
		Person:      req.Person,
		UTC:         utc.Format(time.RFC3339),
		Lat:         req.Location.Lat,
		Lon:         req.Location.Lon,
		HouseSystem: string(req.HouseSystem),
		EphePath:    ephePath,
	})
	if err != nil {
		return domain.ChartSummary{}, &domain.OpError{
			Op:   "natalyexec.marshal",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.binary, "compute")
	cmd.Stdin = bytes.NewReader(payload)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	stderr := &boundedBuffer{max: maxStderrBytes}
	cmd.Stderr = stderr

	runErr := cmd.Run()
	if runErr != nil {
		return domain.ChartSummary{}, classify(ctx, runErr, e.binary, stderr.String())
	}

	var out wireSummary
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return domain.ChartSummary{}, &domain.OpError{
			Op:   "natalyexec.decode",
			Kind: domain.KindEngine,
			Err:  fmt.Errorf("engine produced invalid JSON: %w", err),
		}
	}

	return mapSummary(req, utc, out), nil
}

func classify(ctx context.Context, err error, binary, stderr string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &domain.OpError{
			Op:   "natalyexec.compute",
			Kind: domain.KindTimeout,
			Err:  fmt.Errorf("engine %q timed out", binary),
		}
	}

	// PATH lookup failures and missing absolute paths both mean no engine.
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return &domain.OpError{
			Op:   "natalyexec.compute",
			Kind: domain.KindNotFound,
			Path: binary,
			Err:  fmt.Errorf("engine not found: %w", err),
		}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = "no diagnostic output"
		}
		return &domain.OpError{
			Op:   "natalyexec.compute",
			Kind: domain.KindEngine,
			Err:  fmt.Errorf("engine exited with code %d: %s", exitErr.ExitCode(), msg),
		}
	}

	return &domain.OpError{
		Op:   "natalyexec.compute",
		Kind: domain.KindExecution,
		Err:  err,
	}
}

// boundedBuffer keeps at most max bytes, dropping the tail.
type boundedBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if rem := b.max - b.buf.Len(); rem > 0 {
		if len(p) > rem {
			b.buf.Write(p[:rem])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string { return b.buf.String() }
