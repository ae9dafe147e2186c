package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/manifest"
	"github.com/Yates-Labs/gseawrap/internal/orchestrator"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// LipGloss signature purple/pink palette
var (
	headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
	labelColor   = lipgloss.Color("#BD93F9") // Purple
	numberColor  = lipgloss.Color("#FF79C6") // Pink
	pathColor    = lipgloss.Color("#E9E9F4") // Light purple/white
	borderColor  = lipgloss.Color("#6272A4") // Muted purple
	summaryColor = lipgloss.Color("#8BE9FD") // Cyan accent
	errorColor   = lipgloss.Color("#FF5555") // Red
	successColor = lipgloss.Color("#50FA7B") // Green
)

func newOrchestrator() *orchestrator.Orchestrator {
	o := orchestrator.New(newRunner(), logger)
	o.Parallelism = cfg.Execution.Jobs
	o.CreateDirs = !dryRun
	return o
}

// dispatch runs the jobs, writes the manifest and prints the summary table.
// The manifest is written even when a job fails.
func dispatch(cmd *cobra.Command, mode orchestrator.Mode, run func() ([]orchestrator.JobResult, error)) error {
	logger.Info("Parsing arguments and making Project directories...",
		zap.Strings("argv", os.Args))

	started := time.Now()
	results, runErr := run()
	if results == nil {
		return runErr
	}

	if manifestPath != "" {
		m := manifest.New(mode, started, results)
		if err := manifest.WriteFile(m, manifestPath); err != nil {
			logger.Error("Failed to write manifest", zap.Error(err))
		} else {
			logger.Info("Wrote manifest", zap.String("path", manifestPath), zap.String("run_id", m.RunID))
		}
	}

	outputTable(cmd.OutOrStdout(), results)

	if runErr != nil {
		return fmt.Errorf("GSEA run failed: %w", runErr)
	}

	logger.Info("All Done...")
	return nil
}

func outputTable(w io.Writer, results []orchestrator.JobResult) {
	// Column widths
	const (
		labelWidth  = 32
		statusWidth = 11
		exitWidth   = 6
		outWidth    = 48
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true).
		Padding(0, 1)
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	headers := []string{
		headerStyle.Width(labelWidth).Render("JOB"),
		headerStyle.Width(statusWidth).Render("STATUS"),
		headerStyle.Width(exitWidth).Render("RC"),
		headerStyle.Width(outWidth).Render("OUTPUT"),
	}
	fmt.Fprintln(w, strings.Join(headers, borderStyle.Render("│")))

	separatorParts := []string{
		strings.Repeat("─", labelWidth),
		strings.Repeat("─", statusWidth),
		strings.Repeat("─", exitWidth),
		strings.Repeat("─", outWidth),
	}
	fmt.Fprintln(w, borderStyle.Render(strings.Join(separatorParts, "┼")))

	counts := make(map[orchestrator.JobStatus]int)
	for _, res := range results {
		counts[res.Status]++

		labelStyle := lipgloss.NewStyle().
			Foreground(labelColor).
			Padding(0, 1).
			Width(labelWidth)

		statusStyle := lipgloss.NewStyle().
			Foreground(statusColor(res.Status)).
			Padding(0, 1).
			Width(statusWidth)

		exitStyle := lipgloss.NewStyle().
			Foreground(numberColor).
			Padding(0, 1).
			Width(exitWidth).
			Align(lipgloss.Right)

		outStyle := lipgloss.NewStyle().
			Foreground(pathColor).
			Padding(0, 1).
			Width(outWidth)

		exit := "-"
		if res.Result != nil && res.Status != orchestrator.StatusSkipped {
			exit = fmt.Sprintf("%d", res.Result.ExitCode)
		}

		cells := []string{
			labelStyle.Render(res.Job.Label),
			statusStyle.Render(string(res.Status)),
			exitStyle.Render(exit),
			outStyle.Render(res.Job.OutDir),
		}
		fmt.Fprintln(w, strings.Join(cells, borderStyle.Render("│")))
	}

	fmt.Fprintln(w)
	summaryStyle := lipgloss.NewStyle().
		Foreground(summaryColor).
		Italic(true)

	summary := fmt.Sprintf("Total: %d jobs, %d succeeded, %d failed, %d skipped",
		len(results),
		counts[orchestrator.StatusSucceeded],
		counts[orchestrator.StatusFailed],
		counts[orchestrator.StatusSkipped])
	fmt.Fprintln(w, summaryStyle.Render(summary))
}

func statusColor(status orchestrator.JobStatus) lipgloss.Color {
	switch status {
	case orchestrator.StatusSucceeded:
		return successColor
	case orchestrator.StatusFailed:
		return errorColor
	default:
		return borderColor
	}
}
