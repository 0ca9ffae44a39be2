package main

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/proofgate/addrproof/pkg/log"
	"github.com/proofgate/addrproof/pkg/verify"
)

const tracerName = "github.com/proofgate/addrproof"

// JobResult pairs a job with its verification outcome. Err is set only for
// operational failures such as context divergence; a rejected signature is
// an Outcome with Valid false, not an error.
type JobResult struct {
	JobID   string         `json:"job_id"`
	Outcome verify.Outcome `json:"outcome"`
	Err     string         `json:"error,omitempty"`
}

// BatchRunner fans verification jobs out over a fixed pool of workers.
// Jobs are independent of each other, so results are position-stable
// regardless of scheduling order.
type BatchRunner struct {
	engine  string
	check   func(verify.Inputs) (verify.Outcome, error)
	workers int
	logger  log.Logger
	tracer  trace.Tracer
}

// NewBatchRunner builds a runner for the configured evaluation context.
// A worker count of zero means one worker per CPU core.
func NewBatchRunner(config *Config, logger log.Logger) (*BatchRunner, error) {
	check, err := newOutcomeCheck(config.engineConf.Name)
	if err != nil {
		return nil, err
	}

	workers := config.engineConf.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &BatchRunner{
		engine:  config.engineConf.Name,
		check:   check,
		workers: workers,
		logger:  logger.WithName("batch"),
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// Run verifies every job and returns the results in job order.
func (br *BatchRunner) Run(ctx context.Context, jobs []ProofJob) []JobResult {
	runID := uuid.NewString()
	logger := br.logger.WithKV("runId", runID)

	ctx, span := br.tracer.Start(ctx, "batch.run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("engine", br.engine),
		attribute.Int("jobs", len(jobs)),
		attribute.Int("workers", br.workers),
	))
	defer span.End()
	ctx = log.SetContextLogger(ctx, logger)

	logger.Info("starting batch verification", "jobs", len(jobs), "workers", br.workers, "engine", br.engine)

	results := make([]JobResult, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < br.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = br.runJob(ctx, jobs[i])
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	valid, invalid, failed := summarize(results)
	logger.Info("batch verification finished", "valid", valid, "invalid", invalid, "failed", failed)

	return results
}

func (br *BatchRunner) runJob(ctx context.Context, job ProofJob) JobResult {
	ctx, span := br.tracer.Start(ctx, "batch.job", trace.WithAttributes(
		attribute.String("job.id", job.ID),
	))
	defer span.End()

	logger := log.FromContext(ctx).WithKV("job", job.ID)
	result := JobResult{JobID: job.ID}

	in, err := verify.ParseInputs(job.RawInputs())
	if err != nil {
		logger.Warn("rejected malformed job inputs", "err", err)
		result.Outcome = verify.Outcome{Reason: verify.ReasonMalformedInput}
		return result
	}

	outcome, err := br.check(in)
	if err != nil {
		// A divergence between evaluation contexts. There is no trustworthy
		// outcome to report for this job.
		logger.Error("verification failed", "err", err)
		result.Err = err.Error()
		return result
	}

	if outcome.Valid {
		logger.Debug("job accepted", "address", outcome.Address.Hex())
	} else {
		logger.Debug("job rejected", "reason", outcome.Reason)
	}
	result.Outcome = outcome
	return result
}

func summarize(results []JobResult) (valid, invalid, failed int) {
	for _, res := range results {
		switch {
		case res.Err != "":
			failed++
		case res.Outcome.Valid:
			valid++
		default:
			invalid++
		}
	}
	return valid, invalid, failed
}
