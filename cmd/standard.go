package cmd

import (
	"github.com/Yates-Labs/gseawrap/internal/gsea"
	"github.com/Yates-Labs/gseawrap/internal/orchestrator"
	"github.com/spf13/cobra"
)

// analysisFlags holds the inputs shared by the analysis commands
type analysisFlags struct {
	gct         string
	cls         string
	gmt         string
	chip        string
	projectName string
	metric      string
	nplots      int
	nperms      int
	rnk         []string
	isPreranked bool
}

var standardFlags analysisFlags

var standardCmd = &cobra.Command{
	Use:   "standard",
	Short: "Run GSEA for every pairwise class comparison",
	Long: `Run GSEA once for each ordered pair of classes declared on line 2 of the .cls file.

A .cls declaring WT, KO and HET yields six runs (WT_versus_KO, WT_versus_HET,
KO_versus_WT, ...). All reports go to <projectname>_<YYYY_MM_DD>.

Examples:
  gseawrap standard --gct expr.gct --cls pheno.cls --gmt h.all.gmt \
    --chip Human_Symbol.chip --projectname /results/liver
  gseawrap standard ... --metric tTest --nperms 500 --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStandard(cmd, standardFlags)
	},
}

func init() {
	rootCmd.AddCommand(standardCmd)
	registerStandardFlags(standardCmd, &standardFlags)
	registerCommonFlags(standardCmd, &standardFlags)
}

func registerStandardFlags(cmd *cobra.Command, f *analysisFlags) {
	cmd.Flags().StringVar(&f.gct, "gct", "", "Gene expression matrix in .gct format")
	cmd.Flags().StringVar(&f.cls, "cls", "", "Class file in .cls format; every class comparison is run")
	cmd.Flags().StringVar(&f.chip, "chip", "", "Annotation file in .chip format")
	cmd.Flags().StringVar(&f.metric, "metric", "",
		`Gene ranking method: Signal2Noise, tTest or log2_Ratio_of_Classes (default from config: Signal2Noise).
Use Signal2Noise when each group has more than 3 samples, otherwise tTest or log2_Ratio_of_Classes`)
}

func registerCommonFlags(cmd *cobra.Command, f *analysisFlags) {
	cmd.Flags().StringVar(&f.gmt, "gmt", "", "Gene set file in .gmt format")
	cmd.Flags().StringVar(&f.projectName, "projectname", "", "Prefix for the project, with absolute path")
	cmd.Flags().IntVar(&f.nplots, "nplots", 0, "Number of plots to generate (default from config: 50)")
	cmd.Flags().IntVar(&f.nperms, "nperms", 0, "Number of permutations (default from config: 1000)")
}

// standardConfig merges command-line inputs with configured defaults
func standardConfig(f analysisFlags) (orchestrator.StandardConfig, error) {
	metricName := f.metric
	if metricName == "" {
		metricName = cfg.GSEA.Metric
	}
	metric, err := gsea.ParseMetric(metricName)
	if err != nil {
		return orchestrator.StandardConfig{}, err
	}

	return orchestrator.StandardConfig{
		Binary:     cfg.GSEA.Binary,
		Expression: f.gct,
		ClassFile:  f.cls,
		GeneSets:   f.gmt,
		Chip:       f.chip,
		Project:    f.projectName,
		Metric:     metric,
		NPerm:      orDefault(f.nperms, cfg.GSEA.NPerm),
		NPlots:     orDefault(f.nplots, cfg.GSEA.NPlots),
		Limits:     cfg.Limits(),
	}, nil
}

func runStandard(cmd *cobra.Command, f analysisFlags) error {
	config, err := standardConfig(f)
	if err != nil {
		return err
	}

	o := newOrchestrator()
	return dispatch(cmd, orchestrator.ModeStandard, func() ([]orchestrator.JobResult, error) {
		return o.RunStandard(cmd.Context(), config)
	})
}

func orDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
