package orchestrator

import (
	"errors"

	"github.com/Yates-Labs/gseawrap/internal/cls"
	"github.com/Yates-Labs/gseawrap/internal/gsea"
	"github.com/Yates-Labs/gseawrap/internal/runner"
)

var (
	ErrMissingInput     = errors.New("missing required input")
	ErrMissingRankFiles = errors.New("missing .rnk file(s), please provide rnk file(s) and rerun the program")
	ErrNoComparisons    = errors.New("class file declares fewer than two classes")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Mode is the GSEA analysis mode
type Mode string

const (
	ModeStandard  Mode = "standard"
	ModePreranked Mode = "preranked"
)

// StandardConfig holds the inputs of a two-class comparison analysis
type StandardConfig struct {
	Binary     string
	Expression string // .gct
	ClassFile  string // .cls
	GeneSets   string // .gmt
	Chip       string // .chip

	// Project is the result directory prefix, usually an absolute path
	Project string

	Metric gsea.Metric
	NPerm  int
	NPlots int
	Limits gsea.Limits
}

// PrerankedConfig holds the inputs of a preranked analysis
type PrerankedConfig struct {
	Binary    string
	RankFiles []string
	GeneSets  string // .gmt
	Project   string
	NPerm     int
	NPlots    int
	Limits    gsea.Limits
}

// Job is one planned GSEA invocation
type Job struct {
	Label   string
	OutDir  string
	Command gsea.Command

	// Comparison is set for standard jobs
	Comparison *cls.Comparison

	// RankFile is set for preranked jobs
	RankFile string
}

// JobStatus is the outcome of a job
type JobStatus string

const (
	StatusSucceeded JobStatus = "succeeded"
	StatusFailed    JobStatus = "failed"
	StatusSkipped   JobStatus = "skipped"
)

// JobResult pairs a job with its outcome
type JobResult struct {
	Job    Job
	Status JobStatus
	Result *runner.Result
	Err    error
}
