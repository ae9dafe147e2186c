package runner

import (
	"context"
	"sync"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/gsea"
)

// MockRunner is a deterministic Runner for testing.
// Commands whose -rpt_label matches a key in Failures return that error.
type MockRunner struct {
	// Failures maps report labels to the error returned for them
	Failures map[string]error

	// Stdout is returned for every successful command
	Stdout string

	// Delay, if set, is slept before returning (honoring ctx)
	Delay time.Duration

	mu    sync.Mutex
	calls []gsea.Command
}

// NewMockRunner creates a mock that succeeds for every command
func NewMockRunner() *MockRunner {
	return &MockRunner{Failures: make(map[string]error)}
}

// NewMockRunnerWithFailure creates a mock that fails the command with the given label
func NewMockRunnerWithFailure(label string, err error) *MockRunner {
	return &MockRunner{Failures: map[string]error{label: err}}
}

// Run records the command and returns the configured outcome
func (m *MockRunner) Run(ctx context.Context, cmd gsea.Command) (*Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	label, _ := cmd.Flag("-rpt_label")
	if err, ok := m.Failures[label]; ok {
		return &Result{ExitCode: 1}, err
	}

	return &Result{Stdout: m.Stdout}, nil
}

// Calls returns the commands received so far, in call order
func (m *MockRunner) Calls() []gsea.Command {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]gsea.Command, len(m.calls))
	copy(out, m.calls)
	return out
}
