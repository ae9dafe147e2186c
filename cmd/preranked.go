package cmd

import (
	"github.com/Yates-Labs/gseawrap/internal/orchestrator"
	"github.com/spf13/cobra"
)

var prerankedFlags analysisFlags

var prerankedCmd = &cobra.Command{
	Use:   "preranked [rnk files...]",
	Short: "Run GSEAPreranked for one or more ranked gene lists",
	Long: `Run GSEAPreranked once per .rnk file. Ranked lists may be given with
--rnk (repeatable, one path per flag) or as arguments. Paths are used as
given, commas included.

Each report is written next to its ranked list, in
<rnk dir>/<rnk name>_<projectname>_<YYYY_MM_DD>.

Examples:
  gseawrap preranked --gmt c2.all.gmt --projectname c2 /data/KO.rnk /data/HET.rnk
  gseawrap preranked --rnk /data/KO.rnk --gmt c2.all.gmt --projectname c2 --nperms 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := prerankedFlags
		f.rnk = append(append([]string{}, f.rnk...), args...)
		return runPreranked(cmd, f)
	},
}

func init() {
	rootCmd.AddCommand(prerankedCmd)
	registerRankFlags(prerankedCmd, &prerankedFlags)
	registerCommonFlags(prerankedCmd, &prerankedFlags)
}

func registerRankFlags(cmd *cobra.Command, f *analysisFlags) {
	cmd.Flags().StringArrayVar(&f.rnk, "rnk", nil, "Preranked gene list(s) in .rnk format")
}

// prerankedConfig merges command-line inputs with configured defaults
func prerankedConfig(f analysisFlags) orchestrator.PrerankedConfig {
	return orchestrator.PrerankedConfig{
		Binary:    cfg.GSEA.Binary,
		RankFiles: f.rnk,
		GeneSets:  f.gmt,
		Project:   f.projectName,
		NPerm:     orDefault(f.nperms, cfg.GSEA.NPerm),
		NPlots:    orDefault(f.nplots, cfg.GSEA.NPlots),
		Limits:    cfg.Limits(),
	}
}

func runPreranked(cmd *cobra.Command, f analysisFlags) error {
	config := prerankedConfig(f)

	o := newOrchestrator()
	return dispatch(cmd, orchestrator.ModePreranked, func() ([]orchestrator.JobResult, error) {
		return o.RunPreranked(cmd.Context(), config)
	})
}
