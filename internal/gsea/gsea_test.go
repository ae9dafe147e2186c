package gsea

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var testDay = time.Date(2024, time.March, 1, 15, 4, 5, 0, time.UTC)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input   string
		want    Metric
		wantErr bool
	}{
		{"Signal2Noise", MetricSignal2Noise, false},
		{"tTest", MetricTTest, false},
		{"log2_Ratio_of_Classes", MetricLog2Ratio, false},
		{"signal2noise", "", true},
		{"Diff_of_Classes", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMetric) {
					t.Errorf("Expected ErrInvalidMetric, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestStandardCommand(t *testing.T) {
	cmd := StandardCommand("/opt/GSEA_4.0.3/gsea-cli.sh", StandardParams{
		Expression:  "expr.gct",
		ClassSelect: "pheno.cls#WT_versus_KO",
		GeneSets:    "h.all.gmt",
		Chip:        "Human_Symbol.chip",
		Label:       "WT_versus_KO",
		Metric:      MetricTTest,
		NPerm:       1000,
		NPlots:      50,
		OutDir:      "/results/proj_2024_03_01",
	})

	want := "GSEA -res expr.gct -cls pheno.cls#WT_versus_KO -gmx h.all.gmt " +
		"-chip Human_Symbol.chip -collapse true -mode Max_probe -norm meandiv -nperm 1000 " +
		"-permute gene_set -rnd_type no_balance -scoring_scheme weighted -rpt_label WT_versus_KO " +
		"-metric tTest -sort real -order descending -include_only_symbols true -make_sets true " +
		"-median false -num 100 -plot_top_x 50 -rnd_seed timestamp -save_rnd_lists false " +
		"-set_max 500 -set_min 15 -zip_report false -out /results/proj_2024_03_01"

	if cmd.Binary != "/opt/GSEA_4.0.3/gsea-cli.sh" {
		t.Errorf("Unexpected binary: %s", cmd.Binary)
	}
	if got := strings.Join(cmd.Argv(), " "); got != want {
		t.Errorf("Command mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestStandardCommand_Defaults(t *testing.T) {
	cmd := StandardCommand("", StandardParams{NPerm: 10, NPlots: 5})

	if cmd.Binary != DefaultBinary {
		t.Errorf("Expected default binary, got %s", cmd.Binary)
	}
	if metric, _ := cmd.Flag("-metric"); metric != string(MetricSignal2Noise) {
		t.Errorf("Expected default metric, got %s", metric)
	}
	if max, _ := cmd.Flag("-set_max"); max != "500" {
		t.Errorf("Expected set_max 500, got %s", max)
	}
}

func TestPrerankedCommand(t *testing.T) {
	cmd := PrerankedCommand("gsea-cli.sh", PrerankedParams{
		RankFile: "/data/treated.rnk",
		GeneSets: "c2.gmt",
		Label:    "treated",
		NPerm:    500,
		NPlots:   20,
		OutDir:   "/data/treated_proj_2024_03_01",
		Limits:   Limits{SetMax: 1000, SetMin: 10},
	})

	want := []string{
		"GSEAPreranked",
		"-rnk", "/data/treated.rnk",
		"-gmx", "c2.gmt",
		"-nperm", "500",
		"-scoring_scheme", "weighted",
		"-set_max", "1000",
		"-set_min", "10",
		"-plot_top_x", "20",
		"-rnd_seed", "timestamp",
		"-zip_report", "false",
		"-rpt_label", "treated",
		"-out", "/data/treated_proj_2024_03_01",
		"-norm", "meandiv",
	}
	if diff := cmp.Diff(want, cmd.Argv()); diff != "" {
		t.Errorf("Argv mismatch (-want +got):\n%s", diff)
	}
}

func TestCommand_StringQuotesSpaces(t *testing.T) {
	cmd := Command{Binary: "gsea-cli.sh", Tool: ToolPreranked, Args: []string{"-rnk", "my ranks.rnk"}}

	if got := cmd.String(); !strings.Contains(got, "'my ranks.rnk'") {
		t.Errorf("Expected quoted argument, got %s", got)
	}
}

func TestCommand_Flag(t *testing.T) {
	cmd := Command{Args: []string{"-out", "dir", "-dangling"}}

	if v, ok := cmd.Flag("-out"); !ok || v != "dir" {
		t.Errorf("Expected -out dir, got %q %v", v, ok)
	}
	if _, ok := cmd.Flag("-dangling"); ok {
		t.Error("Expected flag without value to be absent")
	}
	if _, ok := cmd.Flag("-missing"); ok {
		t.Error("Expected missing flag to be absent")
	}
}

func TestResultDir(t *testing.T) {
	if got := ResultDir("/projects/liver_h", testDay); got != "/projects/liver_h_2024_03_01" {
		t.Errorf("Unexpected result dir: %s", got)
	}
}

func TestRankLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/data/KO_vs_WT.rnk", "KO_vs_WT"},
		{"ranks.rnk.rnk", "ranks.rnk"},
		{"/data/my.rnk.txt", "my.rnk.txt"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RankLabel(tt.input); got != tt.expected {
				t.Errorf("RankLabel(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPrerankedResultDir(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/data/rnk/KO.rnk", "/data/rnk/KO_hallmark_2024_03_01"},
		{"KO.rnk", "KO_hallmark_2024_03_01"},
		{"sub/KO.rnk", "sub/KO_hallmark_2024_03_01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := PrerankedResultDir(tt.input, "hallmark", testDay); got != tt.expected {
				t.Errorf("PrerankedResultDir(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
