package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yates-Labs/gseawrap/internal/config"
	"github.com/Yates-Labs/gseawrap/internal/logging"
	"github.com/Yates-Labs/gseawrap/internal/runner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath   string
	logLevel     string
	gseaBinary   string
	dryRun       bool
	useShell     bool
	jobs         int
	manifestPath string

	// Set by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gseawrap",
	Short: "gseawrap - batch launcher for GSEA",
	Long: `gseawrap runs the GSEA command-line launcher (gsea-cli.sh) for large datasets
and multiple comparisons.

In standard mode every pairwise comparison of the classes declared in a .cls
file is analyzed. In preranked mode every .rnk file is analyzed on its own.
Results are written to date-stamped directories.

Settings are read from gseawrap.yaml (--config), a .env file and the
environment (GSEA_CLI, GSEAWRAP_LOG_LEVEL, GSEAWRAP_JOBS, GSEAWRAP_SHELL).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "gseawrap.yaml", "Path to YAML configuration file")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config: info)")
	flags.StringVar(&gseaBinary, "gsea", "", "Path to gsea-cli.sh (default from config or GSEA_CLI)")
	flags.BoolVar(&dryRun, "dry-run", false, "Print the GSEA commands without running them")
	flags.BoolVar(&useShell, "shell", false, "Run each command through bash -o pipefail")
	flags.IntVar(&jobs, "jobs", 0, "Number of GSEA processes to run at once (default from config: 1)")
	flags.StringVar(&manifestPath, "manifest", "", "Write a JSON manifest of the launched jobs to this file")
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	if err := config.LoadEnvFiles(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		loaded.Logging.Level = logLevel
	}
	if gseaBinary != "" {
		loaded.GSEA.Binary = gseaBinary
	}
	if useShell && loaded.Execution.Shell == "" {
		loaded.Execution.Shell = runner.DefaultShell
	}
	if cmd.Flags().Changed("jobs") {
		loaded.Execution.Jobs = jobs
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logging.New(loaded.Logging.Level)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = l
	return nil
}

// newRunner returns the runner selected by --dry-run and --shell
func newRunner() runner.Runner {
	if dryRun {
		return runner.NewDryRunner(logger)
	}

	r := runner.NewProcessRunner(logger)
	r.Shell = cfg.Execution.Shell
	return r
}
