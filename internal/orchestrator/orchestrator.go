// Package orchestrator plans GSEA jobs from the command-line inputs and
// dispatches them to a runner, in order and stopping at the first failure.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Yates-Labs/gseawrap/internal/runner"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Orchestrator dispatches planned jobs to a Runner
type Orchestrator struct {
	Runner runner.Runner
	Logger *zap.Logger

	// Parallelism is the number of jobs run at once (values below 1 mean 1)
	Parallelism int

	// CreateDirs creates each job's output directory before launch
	CreateDirs bool

	// Now stamps result directories
	Now func() time.Time
}

// New creates a sequential orchestrator that creates output directories
func New(r runner.Runner, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		Runner:      r,
		Logger:      logger,
		Parallelism: 1,
		CreateDirs:  true,
		Now:         time.Now,
	}
}

// RunStandard runs GSEA for every pairwise class comparison
func (o *Orchestrator) RunStandard(ctx context.Context, config StandardConfig) ([]JobResult, error) {
	o.Logger.Info("Running GSEA in normal mode...")

	jobs, err := PlanStandard(config, o.now())
	if err != nil {
		return nil, err
	}
	o.Logger.Info("Planned comparisons",
		zap.Int("count", len(jobs)),
		zap.String("cls", config.ClassFile))

	return o.Execute(ctx, jobs)
}

// RunPreranked runs GSEAPreranked for every ranked list
func (o *Orchestrator) RunPreranked(ctx context.Context, config PrerankedConfig) ([]JobResult, error) {
	o.Logger.Info("Running GSEA in preranked mode...")

	jobs, err := PlanPreranked(config, o.now())
	if err != nil {
		return nil, err
	}

	return o.Execute(ctx, jobs)
}

// Execute runs the jobs and returns one result per job. Jobs that never
// started are reported as skipped. The returned error is the first failure.
func (o *Orchestrator) Execute(ctx context.Context, jobs []Job) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))
	for i, job := range jobs {
		results[i] = JobResult{Job: job, Status: StatusSkipped}
	}

	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("context cancelled before launch: %w", err)
	}

	if o.Parallelism <= 1 {
		for i := range jobs {
			if err := ctx.Err(); err != nil {
				return results, fmt.Errorf("context cancelled before %s: %w", jobs[i].Label, err)
			}
			if err := o.runJob(ctx, &results[i]); err != nil {
				return results, err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Parallelism)
	for i := range jobs {
		res := &results[i]
		g.Go(func() error {
			// Jobs queued behind a failure are left as skipped
			if gctx.Err() != nil {
				return nil
			}
			return o.runJob(gctx, res)
		})
	}

	return results, g.Wait()
}

// runJob launches a single job and records its outcome in res
func (o *Orchestrator) runJob(ctx context.Context, res *JobResult) error {
	job := res.Job
	logger := o.Logger.With(zap.String("label", job.Label))

	if o.CreateDirs {
		if err := os.MkdirAll(job.OutDir, 0755); err != nil {
			res.Status = StatusFailed
			res.Err = fmt.Errorf("failed to create result directory: %w", err)
			return fmt.Errorf("%s: %w", job.Label, res.Err)
		}
	}

	logger.Debug("Launching job", zap.String("out", job.OutDir))
	result, err := o.Runner.Run(ctx, job.Command)
	res.Result = result
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		logger.Error("GSEA failed", zap.Error(err))
		return fmt.Errorf("%s: %w", job.Label, err)
	}

	res.Status = StatusSucceeded
	logger.Info("GSEA finished", zap.String("out", job.OutDir))
	return nil
}

func (o *Orchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
