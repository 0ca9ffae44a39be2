package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/proofgate/addrproof/pkg/log"
)

// runBatchCli verifies every job in a jobs file and prints one JSON result
// per line on stdout, in job order. The process exits 0 when every job is
// valid, 1 when any job is rejected or fails, and 2 on configuration errors.
func runBatchCli(logger log.Logger) {
	logger = logger.WithName("batch")

	if len(os.Args) < 3 {
		logger.Error("Usage: addrproof batch <jobs-file>")
		os.Exit(2)
	}
	jobsPath := os.Args[2]

	config, err := LoadConfig(logger)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(2)
	}

	jobs, err := LoadJobsFile(jobsPath)
	if err != nil {
		logger.Error("failed to load jobs file", "path", jobsPath, "error", err)
		os.Exit(2)
	}

	runner, err := NewBatchRunner(config, logger)
	if err != nil {
		logger.Error("failed to initialize batch runner", "error", err)
		os.Exit(2)
	}

	results := runner.Run(context.Background(), jobs)

	enc := json.NewEncoder(os.Stdout)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			logger.Fatal("failed to encode result", "error", err)
		}
	}

	valid, invalid, failed := summarize(results)
	if invalid > 0 || failed > 0 {
		logger.Info("batch rejected", "valid", valid, "invalid", invalid, "failed", failed)
		os.Exit(1)
	}
	logger.Info("batch accepted", "valid", valid)
}
