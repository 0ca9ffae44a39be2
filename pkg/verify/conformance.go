package verify

import (
	"errors"
	"fmt"
)

// DivergenceError reports two evaluation contexts disagreeing about the same
// input set: a different validity, a different reason, or a different
// derived address. Divergence is fatal. Callers must not retry and must not
// prefer either context's answer.
type DivergenceError struct {
	Reference        string
	ReferenceOutcome Outcome
	Diverged         string
	DivergedOutcome  Outcome
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("evaluation contexts diverged: %s returned %q, %s returned %q",
		e.Reference, e.ReferenceOutcome, e.Diverged, e.DivergedOutcome)
}

// CrossCheck evaluates one input set in both built-in evaluation contexts
// and returns the agreed outcome, or a *DivergenceError if they disagree.
func CrossCheck(in Inputs) (Outcome, error) {
	return CrossCheckEngines(in, NewNativeEngine(), NewArithmeticEngine())
}

// CrossCheckEngines evaluates one input set in every given context. The
// first engine sets the reference outcome; each remaining engine must
// reproduce it exactly, derived address included.
func CrossCheckEngines(in Inputs, engines ...Engine) (Outcome, error) {
	if len(engines) == 0 {
		return Outcome{}, errors.New("no evaluation contexts given")
	}
	ref := engines[0].Verify(in)
	for _, e := range engines[1:] {
		if got := e.Verify(in); got != ref {
			return Outcome{}, &DivergenceError{
				Reference:        engines[0].Name(),
				ReferenceOutcome: ref,
				Diverged:         e.Name(),
				DivergedOutcome:  got,
			}
		}
	}
	return ref, nil
}
