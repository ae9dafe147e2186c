package orchestrator

import (
	"fmt"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/cls"
	"github.com/Yates-Labs/gseawrap/internal/gsea"
)

// PlanStandard derives one job per ordered class pair of the .cls file.
// All jobs write into the same dated result directory.
func PlanStandard(config StandardConfig, day time.Time) ([]Job, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	phenotype, err := cls.ParseFile(config.ClassFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse class file: %w", err)
	}

	comparisons := phenotype.Comparisons()
	if len(comparisons) == 0 {
		return nil, fmt.Errorf("%s: %w", config.ClassFile, ErrNoComparisons)
	}

	outDir := gsea.ResultDir(config.Project, day)
	jobs := make([]Job, 0, len(comparisons))
	for i := range comparisons {
		comparison := comparisons[i]
		label := comparison.Label()

		jobs = append(jobs, Job{
			Label:      label,
			OutDir:     outDir,
			Comparison: &comparison,
			Command: gsea.StandardCommand(config.Binary, gsea.StandardParams{
				Expression:  config.Expression,
				ClassSelect: comparison.Selector(config.ClassFile),
				GeneSets:    config.GeneSets,
				Chip:        config.Chip,
				Label:       label,
				Metric:      config.Metric,
				NPerm:       config.NPerm,
				NPlots:      config.NPlots,
				OutDir:      outDir,
				Limits:      config.Limits,
			}),
		})
	}

	return jobs, nil
}

// PlanPreranked derives one job per ranked list. Each result directory sits
// next to its .rnk file.
func PlanPreranked(config PrerankedConfig, day time.Time) ([]Job, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(config.RankFiles))
	for _, rankFile := range config.RankFiles {
		label := gsea.RankLabel(rankFile)
		outDir := gsea.PrerankedResultDir(rankFile, config.Project, day)

		jobs = append(jobs, Job{
			Label:    label,
			OutDir:   outDir,
			RankFile: rankFile,
			Command: gsea.PrerankedCommand(config.Binary, gsea.PrerankedParams{
				RankFile: rankFile,
				GeneSets: config.GeneSets,
				Label:    label,
				NPerm:    config.NPerm,
				NPlots:   config.NPlots,
				OutDir:   outDir,
				Limits:   config.Limits,
			}),
		})
	}

	return jobs, nil
}

func (c StandardConfig) validate() error {
	missing := missingInputs(map[string]string{
		"--gct":         c.Expression,
		"--cls":         c.ClassFile,
		"--gmt":         c.GeneSets,
		"--chip":        c.Chip,
		"--projectname": c.Project,
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingInput, missing)
	}
	if c.Metric != "" {
		if _, err := gsea.ParseMetric(string(c.Metric)); err != nil {
			return err
		}
	}
	return validateCounts(c.NPerm, c.NPlots)
}

func (c PrerankedConfig) validate() error {
	if len(c.RankFiles) == 0 {
		return ErrMissingRankFiles
	}
	for _, rankFile := range c.RankFiles {
		if rankFile == "" {
			return fmt.Errorf("%w: empty .rnk path", ErrMissingRankFiles)
		}
	}

	missing := missingInputs(map[string]string{
		"--gmt":         c.GeneSets,
		"--projectname": c.Project,
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingInput, missing)
	}
	return validateCounts(c.NPerm, c.NPlots)
}

// missingInputs returns the flags with empty values, in a fixed flag order
func missingInputs(inputs map[string]string) []string {
	var missing []string
	for _, flag := range []string{"--gct", "--cls", "--gmt", "--chip", "--rnk", "--projectname"} {
		if value, ok := inputs[flag]; ok && value == "" {
			missing = append(missing, flag)
		}
	}
	return missing
}

func validateCounts(nperm, nplots int) error {
	if nperm <= 0 {
		return fmt.Errorf("%w: nperms must be positive, got %d", ErrInvalidParameter, nperm)
	}
	if nplots <= 0 {
		return fmt.Errorf("%w: nplots must be positive, got %d", ErrInvalidParameter, nplots)
	}
	return nil
}
