package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/gsea"
)

// writeScript creates an executable fake gsea-cli.sh
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}

	path := filepath.Join(t.TempDir(), "gsea-cli.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestProcessRunner_Success(t *testing.T) {
	script := writeScript(t, `echo "tool=$1 label=$3"`)
	r := NewProcessRunner(nil)

	cmd := gsea.Command{Binary: script, Tool: gsea.ToolPreranked, Args: []string{"-rpt_label", "KO"}}
	result, err := r.Run(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Stdout != "tool=GSEAPreranked label=KO" {
		t.Errorf("Unexpected stdout: %q", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", result.ExitCode)
	}
	if result.PID == 0 || result.PGID == 0 {
		t.Errorf("Expected PID and PGID to be set, got %d/%d", result.PID, result.PGID)
	}
}

func TestProcessRunner_NonZeroExit(t *testing.T) {
	script := writeScript(t, "echo partial\necho 'java.lang.OutOfMemoryError' >&2\nexit 3")
	r := NewProcessRunner(nil)

	_, err := r.Run(context.Background(), gsea.Command{Binary: script, Tool: gsea.ToolStandard})
	if err == nil {
		t.Fatal("Expected error for non-zero exit")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.RC != 3 {
		t.Errorf("Expected RC 3, got %d", exitErr.RC)
	}
	if exitErr.Stderr != "java.lang.OutOfMemoryError" {
		t.Errorf("Unexpected stderr: %q", exitErr.Stderr)
	}
	if !strings.Contains(err.Error(), "RC=3") || !strings.Contains(err.Error(), "STDOUT=partial") {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}

func TestProcessRunner_MissingBinary(t *testing.T) {
	r := NewProcessRunner(nil)

	_, err := r.Run(context.Background(), gsea.Command{Binary: filepath.Join(t.TempDir(), "absent.sh")})
	if err == nil {
		t.Fatal("Expected error for missing binary")
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("Start failure should not be reported as ExitError")
	}
}

func TestProcessRunner_ContextCancellation(t *testing.T) {
	script := writeScript(t, "sleep 30")
	r := NewProcessRunner(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Run(ctx, gsea.Command{Binary: script, Tool: gsea.ToolStandard})
	if err == nil {
		t.Fatal("Expected error when context expires")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Cancellation took too long: %s", elapsed)
	}
}

func TestProcessRunner_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProcessRunner(nil).Run(ctx, gsea.Command{Binary: "true"})
	if err == nil {
		t.Error("Expected error when context is cancelled")
	}
}

func TestProcessRunner_Shell(t *testing.T) {
	if _, err := os.Stat(DefaultShell); err != nil {
		t.Skip("bash not available")
	}
	script := writeScript(t, `echo "$3"`)

	r := NewProcessRunner(nil)
	r.Shell = DefaultShell

	cmd := gsea.Command{Binary: script, Tool: gsea.ToolPreranked, Args: []string{"-rnk", "my ranks.rnk"}}
	result, err := r.Run(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Stdout != "my ranks.rnk" {
		t.Errorf("Expected quoted argument to survive the shell, got %q", result.Stdout)
	}
}

func TestProcessRunner_Env(t *testing.T) {
	script := writeScript(t, `echo "$GSEA_TEST_VALUE"`)

	r := NewProcessRunner(nil)
	r.Env = []string{"GSEA_TEST_VALUE=hallmark"}

	result, err := r.Run(context.Background(), gsea.Command{Binary: script})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Stdout != "hallmark" {
		t.Errorf("Expected env value, got %q", result.Stdout)
	}
}

func TestDryRunner(t *testing.T) {
	r := NewDryRunner(nil)
	cmd := gsea.Command{Binary: "gsea-cli.sh", Tool: gsea.ToolStandard}

	if _, err := r.Run(context.Background(), cmd); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := r.Commands(); len(got) != 1 || got[0].Tool != gsea.ToolStandard {
		t.Errorf("Unexpected recorded commands: %v", got)
	}
}

func TestMockRunner_Failure(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockRunnerWithFailure("B_versus_A", boom)

	ok := gsea.Command{Args: []string{"-rpt_label", "A_versus_B"}}
	bad := gsea.Command{Args: []string{"-rpt_label", "B_versus_A"}}

	if _, err := m.Run(context.Background(), ok); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if _, err := m.Run(context.Background(), bad); !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
	if len(m.Calls()) != 2 {
		t.Errorf("Expected 2 calls, got %d", len(m.Calls()))
	}
}
