package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/gsea"
	"go.uber.org/zap"
)

// DefaultShell runs commands with pipefail so failures inside pipes surface
const DefaultShell = "/bin/bash"

// ProcessRunner runs commands on the host, each in its own process group
type ProcessRunner struct {
	// Shell, if set, receives the quoted command line on stdin
	// and is started as "<Shell> -o pipefail"
	Shell string

	// Dir is the working directory (empty = current directory)
	Dir string

	// Env extends the inherited environment
	Env []string

	// WaitDelay bounds how long output pipes are drained after the process is killed
	WaitDelay time.Duration

	Logger *zap.Logger
}

// NewProcessRunner creates a runner that executes commands directly
func NewProcessRunner(logger *zap.Logger) *ProcessRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessRunner{
		WaitDelay: 5 * time.Second,
		Logger:    logger,
	}
}

// Run starts the command and waits for it to finish
func (r *ProcessRunner) Run(ctx context.Context, cmd gsea.Command) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled before launch: %w", err)
	}

	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	execCmd := r.build(ctx, cmd)

	var stdoutBuf, stderrBuf bytes.Buffer
	execCmd.Stdout = &stdoutBuf
	execCmd.Stderr = &stderrBuf

	result := &Result{ExitCode: -1, StartedAt: time.Now()}
	if err := execCmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cmd.Binary, err)
	}

	result.PID = execCmd.Process.Pid
	result.PGID = processGroupID(result.PID)
	logger.Info("run_shell_cmd",
		zap.Int("pid", result.PID),
		zap.Int("pgid", result.PGID),
		zap.String("cmd", cmd.String()))

	err := execCmd.Wait()
	result.Duration = time.Since(result.StartedAt)
	result.Stdout = strings.TrimRight(stdoutBuf.String(), "\n")
	result.Stderr = stderrBuf.String()
	if execCmd.ProcessState != nil {
		result.ExitCode = execCmd.ProcessState.ExitCode()
	}

	if err != nil {
		// Kill anything the command left behind in its group
		_ = killProcessGroup(result.PGID)

		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn("Command cancelled",
				zap.Int("pid", result.PID),
				zap.Int("pgid", result.PGID),
				zap.Error(ctxErr))
			return result, fmt.Errorf("command cancelled: %w", ctxErr)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return result, fmt.Errorf("failed waiting for %s: %w", cmd.Binary, err)
		}

		return result, &ExitError{
			PID:    result.PID,
			PGID:   result.PGID,
			RC:     result.ExitCode,
			Stderr: strings.TrimSpace(result.Stderr),
			Stdout: strings.TrimSpace(result.Stdout),
		}
	}

	logger.Info(summary(result.PID, result.PGID, result.ExitCode, result.Stderr, result.Stdout),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// build prepares the exec.Cmd, either direct or through the shell
func (r *ProcessRunner) build(ctx context.Context, cmd gsea.Command) *exec.Cmd {
	var execCmd *exec.Cmd
	if r.Shell != "" {
		execCmd = exec.CommandContext(ctx, r.Shell, "-o", "pipefail")
		execCmd.Stdin = strings.NewReader(cmd.String() + "\n")
	} else {
		execCmd = exec.CommandContext(ctx, cmd.Binary, cmd.Argv()...)
	}

	execCmd.Dir = r.Dir
	if len(r.Env) > 0 {
		execCmd.Env = append(execCmd.Environ(), r.Env...)
	}

	setupProcessGroup(execCmd)
	execCmd.Cancel = func() error {
		if execCmd.Process == nil {
			return nil
		}
		return killProcessGroup(execCmd.Process.Pid)
	}
	execCmd.WaitDelay = r.WaitDelay

	return execCmd
}
