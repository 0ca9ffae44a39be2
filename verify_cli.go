package main

import (
	"encoding/json"
	"os"

	"github.com/proofgate/addrproof/pkg/log"
	"github.com/proofgate/addrproof/pkg/verify"
)

// runVerifyCli checks the single input tuple supplied through the
// ADDRPROOF_* environment variables and prints the outcome as JSON on
// stdout. The process exits 0 when the claim holds, 1 when it is rejected
// or the evaluation contexts diverge, and 2 on configuration errors.
func runVerifyCli(logger log.Logger) {
	logger = logger.WithName("verify")

	config, err := LoadConfig(logger)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(2)
	}

	if missing := config.inputsConf.missing(); len(missing) > 0 {
		logger.Error("missing required input variables", "missing", missing)
		os.Exit(2)
	}

	check, err := newOutcomeCheck(config.engineConf.Name)
	if err != nil {
		logger.Error("failed to resolve evaluation context", "error", err)
		os.Exit(2)
	}

	var outcome verify.Outcome
	in, err := verify.ParseInputs(config.inputsConf.RawInputs())
	if err != nil {
		logger.Warn("rejected malformed inputs", "error", err)
		outcome = verify.Outcome{Reason: verify.ReasonMalformedInput}
	} else {
		outcome, err = check(in)
		if err != nil {
			logger.Fatal("evaluation contexts diverged", "error", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome); err != nil {
		logger.Fatal("failed to encode outcome", "error", err)
	}

	if !outcome.Valid {
		logger.Info("verification rejected", "reason", outcome.Reason)
		os.Exit(1)
	}
	logger.Info("verification accepted", "address", outcome.Address.Hex())
}

// RawInputs converts the environment inputs into a verification input tuple.
func (ic InputsConfig) RawInputs() verify.RawInputs {
	return verify.RawInputs{
		PubKeyX:       ic.PubKeyX,
		PubKeyY:       ic.PubKeyY,
		Signature:     ic.Signature,
		Digest:        ic.Digest,
		TargetAddress: ic.TargetAddress,
	}
}
