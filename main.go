package main

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/proofgate/addrproof/pkg/log"
	"github.com/proofgate/addrproof/pkg/verify"
)

func main() {
	var logConf log.Config
	if err := cleanenv.ReadEnv(&logConf); err != nil {
		logConf = log.Config{}
	}
	logger := log.NewZapLogger(logConf).WithName("addrproof")

	if len(os.Args) < 2 {
		logger.Error("Usage: addrproof <verify|batch> [args]")
		os.Exit(2)
	}
	runCli(logger, os.Args[1])
}

func runCli(logger log.Logger, name string) {
	switch name {
	case "verify":
		runVerifyCli(logger)
	case "batch":
		runBatchCli(logger)
	default:
		logger.Error("Unknown CLI command", "name", name)
		os.Exit(2)
	}
}

// newOutcomeCheck resolves an evaluation context name into a verification
// function. The cross context runs both built-in engines and requires them
// to agree.
func newOutcomeCheck(engine string) (func(verify.Inputs) (verify.Outcome, error), error) {
	if engine == EngineCross {
		return verify.CrossCheck, nil
	}

	eng, err := verify.NewEngine(engine)
	if err != nil {
		return nil, err
	}
	return func(in verify.Inputs) (verify.Outcome, error) {
		return eng.Verify(in), nil
	}, nil
}
