package verify

import (
	"fmt"
)

// Ensure both evaluation contexts implement the interface at compile time.
var _ Engine = (*NativeEngine)(nil)
var _ Engine = (*ArithmeticEngine)(nil)

// Engine evaluates the recover-and-compare pipeline in one evaluation
// context. Engines are stateless and safe for concurrent use; Verify is
// deterministic and never panics on any input.
type Engine interface {
	// Name identifies the evaluation context in logs and divergence reports.
	Name() string
	// Verify runs the precondition checks, the ECDSA verification equation
	// and the address comparison for one decoded input set.
	Verify(in Inputs) Outcome
}

// Verify runs one decoded input set through the native evaluation context.
func Verify(in Inputs) Outcome {
	return NewNativeEngine().Verify(in)
}

// VerifyRaw decodes the five caller-supplied strings and verifies them in
// the native evaluation context. Adapter failures surface as outcomes tagged
// malformed_input, so callers see a single result type for the whole
// pipeline.
func VerifyRaw(raw RawInputs) Outcome {
	in, err := ParseInputs(raw)
	if err != nil {
		return invalidOutcome(ReasonMalformedInput)
	}
	return Verify(in)
}

// NewEngine creates the evaluation context with the given name.
// Supported names are "native" and "arithmetic".
func NewEngine(name string) (Engine, error) {
	switch name {
	case "native":
		return NewNativeEngine(), nil
	case "arithmetic":
		return NewArithmeticEngine(), nil
	default:
		return nil, fmt.Errorf("unsupported evaluation context: %q", name)
	}
}
