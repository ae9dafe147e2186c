package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runFlags analysisFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run GSEA with a single flag set, choosing the mode with --ispreranked",
	Long: `Run GSEA in standard mode, or in preranked mode when --ispreranked is given.

This command accepts the inputs of both modes so existing job scripts can
switch modes with one flag. Preranked mode requires at least one --rnk file.

Examples:
  gseawrap run --gct expr.gct --cls pheno.cls --gmt h.all.gmt --chip Human_Symbol.chip --projectname /results/liver
  gseawrap run --ispreranked --rnk KO.rnk HET.rnk --gmt c2.all.gmt --projectname c2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := runFlags
		if f.isPreranked {
			// Values following --rnk arrive as arguments
			f.rnk = append(append([]string{}, f.rnk...), args...)
			return runPreranked(cmd, f)
		}
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments %v: .rnk files require --ispreranked", args)
		}
		return runStandard(cmd, f)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	registerStandardFlags(runCmd, &runFlags)
	registerRankFlags(runCmd, &runFlags)
	registerCommonFlags(runCmd, &runFlags)
	runCmd.Flags().BoolVar(&runFlags.isPreranked, "ispreranked", false, "Analysis is preranked GSEA")
}
