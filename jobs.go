package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/proofgate/addrproof/pkg/verify"
)

func getValidator() *validator.Validate {
	validate := validator.New()

	// hexfield=<n> accepts exactly n hex digits, with an optional 0x prefix.
	if err := validate.RegisterValidation("hexfield", func(fl validator.FieldLevel) bool {
		want, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return isHexDigits(stripHexPrefix(fl.Field().String()), want)
	}); err != nil {
		panic(fmt.Sprintf("failed to register hexfield validation: %v", err))
	}

	// hexsig accepts a 64-byte signature, or 65 bytes when the trailing
	// recovery byte is still attached.
	if err := validate.RegisterValidation("hexsig", func(fl validator.FieldLevel) bool {
		s := stripHexPrefix(fl.Field().String())
		return isHexDigits(s, 128) || isHexDigits(s, 130)
	}); err != nil {
		panic(fmt.Sprintf("failed to register hexsig validation: %v", err))
	}

	// targetaddr accepts a 20-byte hex address or a base-10 field value.
	if err := validate.RegisterValidation("targetaddr", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if isHexDigits(stripHexPrefix(s), 40) {
			return true
		}
		return isDecimalDigits(s)
	}); err != nil {
		panic(fmt.Sprintf("failed to register targetaddr validation: %v", err))
	}

	return validate
}

func stripHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func isHexDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func isDecimalDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ProofJob is one verification request read from a batch jobs file.
type ProofJob struct {
	ID            string `json:"id" validate:"required"`
	PubKeyX       string `json:"pub_key_x" validate:"required,hexfield=64"`
	PubKeyY       string `json:"pub_key_y" validate:"required,hexfield=64"`
	Signature     string `json:"signature" validate:"required,hexsig"`
	Digest        string `json:"digest" validate:"required,hexfield=64"`
	TargetAddress string `json:"target_address" validate:"required,targetaddr"`
}

// RawInputs converts the job fields into a verification input tuple.
func (j ProofJob) RawInputs() verify.RawInputs {
	return verify.RawInputs{
		PubKeyX:       j.PubKeyX,
		PubKeyY:       j.PubKeyY,
		Signature:     j.Signature,
		Digest:        j.Digest,
		TargetAddress: j.TargetAddress,
	}
}

// LoadJobsFile reads a batch jobs file holding a JSON array of jobs.
// Every job is validated field by field, and job IDs must be unique so
// results can be matched back to their requests.
func LoadJobsFile(path string) ([]ProofJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	var jobs []ProofJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse jobs file %s: %w", path, err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("jobs file %s holds no jobs", path)
	}

	validate := getValidator()
	seen := make(map[string]struct{}, len(jobs))
	for i, job := range jobs {
		if err := validate.Struct(&job); err != nil {
			return nil, fmt.Errorf("job %d (%s): %w", i, job.ID, err)
		}
		if _, ok := seen[job.ID]; ok {
			return nil, fmt.Errorf("job %d: duplicate id %q", i, job.ID)
		}
		seen[job.ID] = struct{}{}
	}

	return jobs, nil
}
