// Package manifest records what a gseawrap invocation launched, one entry per
// GSEA job, as a JSON document.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/orchestrator"
	"github.com/google/uuid"
)

// ExportFormat represents supported export formats
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
)

// Manifest describes one invocation
type Manifest struct {
	RunID     string            `json:"run_id"`
	Mode      orchestrator.Mode `json:"mode"`
	StartedAt time.Time         `json:"started_at"`
	Jobs      []JobEntry        `json:"jobs"`
}

// JobEntry describes one GSEA job
type JobEntry struct {
	Label    string `json:"label"`
	Status   string `json:"status"`
	OutDir   string `json:"out_dir"`
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	PID      int    `json:"pid,omitempty"`
	Duration string `json:"duration,omitempty"`
	Error    string `json:"error,omitempty"`
	Case     string `json:"case,omitempty"`
	Control  string `json:"control,omitempty"`
	RankFile string `json:"rank_file,omitempty"`
}

// New builds a manifest from job results with a fresh run id
func New(mode orchestrator.Mode, startedAt time.Time, results []orchestrator.JobResult) Manifest {
	m := Manifest{
		RunID:     uuid.NewString(),
		Mode:      mode,
		StartedAt: startedAt,
		Jobs:      make([]JobEntry, len(results)),
	}
	for i, res := range results {
		m.Jobs[i] = entry(res)
	}
	return m
}

// entry converts a job result to its manifest form
func entry(res orchestrator.JobResult) JobEntry {
	e := JobEntry{
		Label:    res.Job.Label,
		Status:   string(res.Status),
		OutDir:   res.Job.OutDir,
		Command:  res.Job.Command.String(),
		ExitCode: -1,
		RankFile: res.Job.RankFile,
	}

	if res.Job.Comparison != nil {
		e.Case = res.Job.Comparison.Case
		e.Control = res.Job.Comparison.Control
	}
	if res.Result != nil {
		e.ExitCode = res.Result.ExitCode
		e.PID = res.Result.PID
		if res.Result.Duration > 0 {
			e.Duration = res.Result.Duration.String()
		}
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	return e
}

// Export writes the manifest in the given format
func Export(m Manifest, format string, writer io.Writer) error {
	if ExportFormat(strings.ToLower(format)) != FormatJSON {
		return fmt.Errorf("unsupported export format: %s (supported: json)", format)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(m)
}

// WriteFile writes the manifest as JSON, creating parent directories
func WriteFile(m Manifest, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	defer file.Close()

	if err := Export(m, string(FormatJSON), file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}
