package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/proofgate/addrproof/pkg/log"
)

const (
	configDirPathEnv     = "ADDRPROOF_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

// Evaluation contexts selectable through ADDRPROOF_ENGINE.
const (
	EngineNative     = "native"
	EngineArithmetic = "arithmetic"
	EngineCross      = "cross"
)

// EngineConfig selects the evaluation context and batch parallelism.
type EngineConfig struct {
	Name    string `env:"ADDRPROOF_ENGINE" env-default:"cross"`
	Workers int    `env:"ADDRPROOF_WORKERS" env-default:"0"` // 0 means one worker per CPU core
}

// InputsConfig carries the input tuple for a one-shot verification.
type InputsConfig struct {
	PubKeyX       string `env:"ADDRPROOF_PUBKEY_X" env-default:""`
	PubKeyY       string `env:"ADDRPROOF_PUBKEY_Y" env-default:""`
	Signature     string `env:"ADDRPROOF_SIGNATURE" env-default:""`
	Digest        string `env:"ADDRPROOF_DIGEST" env-default:""`
	TargetAddress string `env:"ADDRPROOF_TARGET_ADDRESS" env-default:""`
}

// missing returns the names of required input variables that are unset,
// in a stable order.
func (ic InputsConfig) missing() []string {
	byName := map[string]string{
		"ADDRPROOF_PUBKEY_X":       ic.PubKeyX,
		"ADDRPROOF_PUBKEY_Y":       ic.PubKeyY,
		"ADDRPROOF_SIGNATURE":      ic.Signature,
		"ADDRPROOF_DIGEST":         ic.Digest,
		"ADDRPROOF_TARGET_ADDRESS": ic.TargetAddress,
	}

	var missing []string
	for name, value := range byName {
		if value == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Config represents the overall application configuration
type Config struct {
	engineConf EngineConfig
	inputsConf InputsConfig
}

// LoadConfig builds configuration from environment variables
func LoadConfig(logger log.Logger) (*Config, error) {
	logger = logger.WithName("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	// Load .env files
	configDotEnvPath := filepath.Join(configDirPath, ".env")
	if err := godotenv.Load(configDotEnvPath); err != nil {
		logger.Warn(".env file not found", "path", configDotEnvPath)
	}

	var engineConf EngineConfig
	if err := cleanenv.ReadEnv(&engineConf); err != nil {
		logger.Error("failed to read engine config", "err", err)
		return nil, err
	}

	switch engineConf.Name {
	case EngineNative, EngineArithmetic, EngineCross:
	default:
		return nil, fmt.Errorf("invalid ADDRPROOF_ENGINE value: %q", engineConf.Name)
	}
	if engineConf.Workers < 0 {
		return nil, fmt.Errorf("invalid ADDRPROOF_WORKERS value: %d", engineConf.Workers)
	}
	logger.Info("set evaluation context", "engine", engineConf.Name)

	var inputsConf InputsConfig
	if err := cleanenv.ReadEnv(&inputsConf); err != nil {
		logger.Error("failed to read inputs config", "err", err)
		return nil, err
	}

	config := Config{
		engineConf: engineConf,
		inputsConf: inputsConf,
	}

	return &config, nil
}
