// Package runner launches GSEA commands as subprocesses. A non-zero exit kills
// the whole process group of the launched command and is reported as an
// ExitError carrying the captured output.
package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/gsea"
)

// Runner executes a single GSEA command and blocks until it finishes.
// Implementations must be safe for concurrent use.
type Runner interface {
	Run(ctx context.Context, cmd gsea.Command) (*Result, error)
}

// Result describes a finished command
type Result struct {
	PID      int
	PGID     int
	ExitCode int

	// Stdout has trailing newlines trimmed
	Stdout string
	Stderr string

	StartedAt time.Time
	Duration  time.Duration
}

// ExitError is returned when the command exits with a non-zero status
type ExitError struct {
	PID    int
	PGID   int
	RC     int
	Stderr string
	Stdout string
}

func (e *ExitError) Error() string {
	return summary(e.PID, e.PGID, e.RC, e.Stderr, e.Stdout)
}

func summary(pid, pgid, rc int, stderr, stdout string) string {
	return fmt.Sprintf("PID=%d, PGID=%d, RC=%d\nSTDERR=%s\nSTDOUT=%s",
		pid, pgid, rc, strings.TrimSpace(stderr), strings.TrimSpace(stdout))
}
