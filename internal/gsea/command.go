package gsea

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Limits are the gene set size bounds shared by both modes
type Limits struct {
	SetMax int
	SetMin int
}

// DefaultLimits returns the gene set size bounds used by the launcher
func DefaultLimits() Limits {
	return Limits{SetMax: DefaultSetMax, SetMin: DefaultSetMin}
}

// StandardParams describe one two-class comparison run
type StandardParams struct {
	Expression  string // .gct
	ClassSelect string // <cls>#<case>_versus_<control>
	GeneSets    string // .gmt
	Chip        string // .chip
	Label       string
	Metric      Metric
	NPerm       int
	NPlots      int
	OutDir      string
	Limits      Limits
}

// PrerankedParams describe one preranked run
type PrerankedParams struct {
	RankFile string // .rnk
	GeneSets string // .gmt
	Label    string
	NPerm    int
	NPlots   int
	OutDir   string
	Limits   Limits
}

// StandardCommand builds the GSEA invocation for a two-class comparison
func StandardCommand(binary string, p StandardParams) Command {
	metric := p.Metric
	if metric == "" {
		metric = MetricSignal2Noise
	}
	limits := p.Limits.orDefault()

	return Command{
		Binary: binaryOrDefault(binary),
		Tool:   ToolStandard,
		Args: []string{
			"-res", p.Expression,
			"-cls", p.ClassSelect,
			"-gmx", p.GeneSets,
			"-chip", p.Chip,
			"-collapse", "true",
			"-mode", "Max_probe",
			"-norm", "meandiv",
			"-nperm", strconv.Itoa(p.NPerm),
			"-permute", "gene_set",
			"-rnd_type", "no_balance",
			"-scoring_scheme", "weighted",
			"-rpt_label", p.Label,
			"-metric", string(metric),
			"-sort", "real",
			"-order", "descending",
			"-include_only_symbols", "true",
			"-make_sets", "true",
			"-median", "false",
			"-num", "100",
			"-plot_top_x", strconv.Itoa(p.NPlots),
			"-rnd_seed", "timestamp",
			"-save_rnd_lists", "false",
			"-set_max", strconv.Itoa(limits.SetMax),
			"-set_min", strconv.Itoa(limits.SetMin),
			"-zip_report", "false",
			"-out", p.OutDir,
		},
	}
}

// PrerankedCommand builds the GSEAPreranked invocation for one ranked list
func PrerankedCommand(binary string, p PrerankedParams) Command {
	limits := p.Limits.orDefault()

	return Command{
		Binary: binaryOrDefault(binary),
		Tool:   ToolPreranked,
		Args: []string{
			"-rnk", p.RankFile,
			"-gmx", p.GeneSets,
			"-nperm", strconv.Itoa(p.NPerm),
			"-scoring_scheme", "weighted",
			"-set_max", strconv.Itoa(limits.SetMax),
			"-set_min", strconv.Itoa(limits.SetMin),
			"-plot_top_x", strconv.Itoa(p.NPlots),
			"-rnd_seed", "timestamp",
			"-zip_report", "false",
			"-rpt_label", p.Label,
			"-out", p.OutDir,
			"-norm", "meandiv",
		},
	}
}

// ResultDir names the output directory of a standard run: <project>_<YYYY_MM_DD>
func ResultDir(project string, day time.Time) string {
	return project + "_" + day.Format(DateLayout)
}

// RankLabel returns the base name of a ranked list with a trailing .rnk removed
func RankLabel(rankFile string) string {
	return strings.TrimSuffix(filepath.Base(rankFile), ".rnk")
}

// PrerankedResultDir places the output next to the ranked list:
// <dir>/<label>_<project>_<YYYY_MM_DD>
func PrerankedResultDir(rankFile, project string, day time.Time) string {
	dir := filepath.Dir(rankFile)
	name := RankLabel(rankFile) + "_" + project + "_" + day.Format(DateLayout)
	return filepath.Join(dir, name)
}

func (l Limits) orDefault() Limits {
	if l.SetMax == 0 && l.SetMin == 0 {
		return DefaultLimits()
	}
	return l
}

func binaryOrDefault(binary string) string {
	if binary == "" {
		return DefaultBinary
	}
	return binary
}
