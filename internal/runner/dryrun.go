package runner

import (
	"context"
	"sync"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/gsea"
	"go.uber.org/zap"
)

// DryRunner logs commands instead of executing them
type DryRunner struct {
	Logger *zap.Logger

	mu       sync.Mutex
	commands []gsea.Command
}

// NewDryRunner creates a runner that only records commands
func NewDryRunner(logger *zap.Logger) *DryRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRunner{Logger: logger}
}

// Run records the command and reports success
func (r *DryRunner) Run(ctx context.Context, cmd gsea.Command) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	r.mu.Unlock()

	r.Logger.Info("dry run", zap.String("cmd", cmd.String()))
	return &Result{StartedAt: time.Now()}, nil
}

// Commands returns the recorded commands in call order
func (r *DryRunner) Commands() []gsea.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]gsea.Command, len(r.commands))
	copy(out, r.commands)
	return out
}
