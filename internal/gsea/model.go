// Package gsea assembles command lines for the GSEA command-line launcher
// (gsea-cli.sh) in standard and preranked mode.
package gsea

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

const (
	DefaultBinary = "gsea-cli.sh"
	DefaultNPerm  = 1000
	DefaultNPlots = 50
	DefaultSetMax = 500
	DefaultSetMin = 15

	// DateLayout stamps result directories, e.g. 2024_03_01
	DateLayout = "2006_01_02"
)

// Tool names understood by gsea-cli.sh
const (
	ToolStandard  = "GSEA"
	ToolPreranked = "GSEAPreranked"
)

var (
	ErrInvalidMetric = errors.New("invalid ranking metric")
)

// Metric is the gene ranking method of a standard run
type Metric string

const (
	MetricSignal2Noise Metric = "Signal2Noise"
	MetricTTest        Metric = "tTest"
	MetricLog2Ratio    Metric = "log2_Ratio_of_Classes"
)

// Metrics lists the supported ranking metrics
func Metrics() []Metric {
	return []Metric{MetricSignal2Noise, MetricTTest, MetricLog2Ratio}
}

// ParseMetric validates a metric name. Matching is exact, as GSEA expects it.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics() {
		if string(m) == s {
			return m, nil
		}
	}

	names := make([]string, 0, len(Metrics()))
	for _, m := range Metrics() {
		names = append(names, string(m))
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrInvalidMetric, s, strings.Join(names, ", "))
}

// Command is a single gsea-cli.sh invocation
type Command struct {
	// Binary is the launcher script or executable
	Binary string

	// Tool is the GSEA tool name passed as the first argument
	Tool string

	// Args are the tool flags in launch order
	Args []string
}

// Argv returns the arguments passed to Binary
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Tool)
	return append(argv, c.Args...)
}

// String renders the command as a shell-quoted line
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Binary}, c.Argv()...)...)
}

// Flag returns the value following name in Args
func (c Command) Flag(name string) (string, bool) {
	for i := 0; i+1 < len(c.Args); i++ {
		if c.Args[i] == name {
			return c.Args[i+1], true
		}
	}
	return "", false
}
