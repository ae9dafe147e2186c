// Package cls reads GSEA phenotype class (.cls) files and derives the pairwise
// class comparisons that a standard GSEA run is launched for.
package cls

import "fmt"

// Phenotype holds the class information read from a .cls file
type Phenotype struct {
	// Path is the .cls file the phenotype was read from (empty for label lists)
	Path string

	// Names are the class names in declaration order
	Names []string

	// Assignments is the class label of each sample, in sample order
	Assignments []string
}

// Comparison is an ordered pair of classes: Case is tested against Control
type Comparison struct {
	Case    string
	Control string
}

// Label returns the comparison name used for report labels, e.g. "WT_versus_KO"
func (c Comparison) Label() string {
	return fmt.Sprintf("%s_versus_%s", c.Case, c.Control)
}

// Selector returns the GSEA class selector for a .cls path, e.g. "pheno.cls#WT_versus_KO"
func (c Comparison) Selector(clsPath string) string {
	return clsPath + "#" + c.Label()
}

// Comparisons returns every ordered pair of distinct classes.
// For classes A, B, C the order is A-B, A-C, B-A, B-C, C-A, C-B.
func (p *Phenotype) Comparisons() []Comparison {
	if p == nil || len(p.Names) < 2 {
		return nil
	}

	comparisons := make([]Comparison, 0, len(p.Names)*(len(p.Names)-1))
	for i, a := range p.Names {
		for j, b := range p.Names {
			if i == j {
				continue
			}
			comparisons = append(comparisons, Comparison{Case: a, Control: b})
		}
	}
	return comparisons
}

// FromLabels builds a phenotype from per-sample labels.
// Class names are the distinct labels in first-seen order.
func FromLabels(labels []string) *Phenotype {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true
		names = append(names, label)
	}

	assignments := make([]string, len(labels))
	copy(assignments, labels)

	return &Phenotype{
		Names:       names,
		Assignments: assignments,
	}
}
