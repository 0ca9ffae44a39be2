package verify

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConformanceCorpus(t *testing.T) {
	const corpusSize = 100

	t.Run("randomized valid signatures agree", func(t *testing.T) {
		inputs := make([]Inputs, corpusSize)
		for i := range inputs {
			inputs[i] = makeSignedInputs(t, fmt.Sprintf("conformance valid %d", i))
		}

		outcomes := runCorpus(t, inputs)
		for i, out := range outcomes {
			require.True(t, out.Valid, "tuple %d", i)
			assert.Equal(t, inputs[i].TargetAddress, out.Address, "tuple %d", i)
		}
	})

	t.Run("randomized invalid mutations agree", func(t *testing.T) {
		rng := rand.New(rand.NewSource(20080514))
		inputs := make([]Inputs, corpusSize)
		for i := range inputs {
			in := makeSignedInputs(t, fmt.Sprintf("conformance mutated %d", i))
			mutateInputs(rng, &in, i)
			inputs[i] = in
		}

		outcomes := runCorpus(t, inputs)
		for i, out := range outcomes {
			assert.False(t, out.Valid, "mutated tuple %d still verifies", i)
		}
	})
}

// runCorpus cross-checks every input set with one worker per CPU core,
// exercising the engines' concurrent use, and fails on any divergence.
func runCorpus(t *testing.T, inputs []Inputs) []Outcome {
	t.Helper()

	outcomes := make([]Outcome, len(inputs))
	errs := make([]error, len(inputs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i], errs[i] = CrossCheck(inputs[i])
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "tuple %d diverged", i)
	}
	return outcomes
}

// mutateInputs flips one random bit in one of the five fields, cycling
// through the fields so each corpus touches all of them.
func mutateInputs(rng *rand.Rand, in *Inputs, i int) {
	switch i % 5 {
	case 0:
		flipBit(in.Signature[:32], rng)
	case 1:
		flipBit(in.Signature[32:], rng)
	case 2:
		flipBit(in.Digest[:], rng)
	case 3:
		if i%2 == 0 {
			flipBit(in.PubKeyX[:], rng)
		} else {
			flipBit(in.PubKeyY[:], rng)
		}
	case 4:
		flipBit(in.TargetAddress[:], rng)
	}
}

func flipBit(b []byte, rng *rand.Rand) {
	bit := rng.Intn(len(b) * 8)
	b[bit/8] ^= 1 << (bit % 8)
}

type stubEngine struct {
	name string
	out  Outcome
}

func (e *stubEngine) Name() string            { return e.name }
func (e *stubEngine) Verify(_ Inputs) Outcome { return e.out }

func TestCrossCheckEngines(t *testing.T) {
	in := makeSignedInputs(t, "cross check engines")

	t.Run("agreement returns the shared outcome", func(t *testing.T) {
		out, err := CrossCheckEngines(in, NewNativeEngine(), NewArithmeticEngine())
		require.NoError(t, err)
		assert.True(t, out.Valid)
		assert.Equal(t, in.TargetAddress, out.Address)
	})

	t.Run("divergence is a fatal error", func(t *testing.T) {
		lying := &stubEngine{name: "stub", out: invalidOutcome(ReasonRecoveryFailed)}
		out, err := CrossCheckEngines(in, NewNativeEngine(), lying)
		require.Error(t, err)

		var divErr *DivergenceError
		require.ErrorAs(t, err, &divErr)
		assert.Equal(t, "native", divErr.Reference)
		assert.Equal(t, "stub", divErr.Diverged)
		assert.Contains(t, err.Error(), "diverged")
		assert.Equal(t, Outcome{}, out)
	})

	t.Run("valid addresses must match bit for bit", func(t *testing.T) {
		twisted := in.TargetAddress
		twisted[0] ^= 0x01
		lying := &stubEngine{name: "stub", out: validOutcome(twisted)}
		_, err := CrossCheckEngines(in, NewNativeEngine(), lying)
		require.Error(t, err)
	})

	t.Run("no contexts is an error", func(t *testing.T) {
		_, err := CrossCheckEngines(in)
		require.Error(t, err)
	})
}

func TestCrossCheckIdempotent(t *testing.T) {
	in := makeSignedInputs(t, "idempotence")
	first, err := CrossCheck(in)
	require.NoError(t, err)
	second, err := CrossCheck(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
