package cmd

import (
	"fmt"
	"strings"

	"github.com/Yates-Labs/gseawrap/internal/cls"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var comparisonsCmd = &cobra.Command{
	Use:   "comparisons [cls file]",
	Short: "List the class comparisons a .cls file yields",
	Long: `Print every ordered class pair derived from a .cls file, with the
report label and class selector passed to GSEA. Nothing is executed.

Examples:
  gseawrap comparisons pheno.cls`,
	Args: cobra.ExactArgs(1),
	RunE: runComparisons,
}

func init() {
	rootCmd.AddCommand(comparisonsCmd)
}

func runComparisons(cmd *cobra.Command, args []string) error {
	phenotype, err := cls.ParseFile(args[0])
	if err != nil {
		return err
	}

	comparisons := phenotype.Comparisons()
	w := cmd.OutOrStdout()

	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(labelColor)
	selectorStyle := lipgloss.NewStyle().Foreground(pathColor)
	summaryStyle := lipgloss.NewStyle().Foreground(summaryColor).Italic(true)

	fmt.Fprintln(w, headerStyle.Render("Classes: "+strings.Join(phenotype.Names, ", ")))
	for _, c := range comparisons {
		fmt.Fprintf(w, "  %s  %s\n", labelStyle.Render(c.Label()), selectorStyle.Render(c.Selector(phenotype.Path)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("Total: %d comparisons", len(comparisons))))
	return nil
}
