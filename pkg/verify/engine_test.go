package verify

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Run("known contexts", func(t *testing.T) {
		native, err := NewEngine("native")
		require.NoError(t, err)
		assert.IsType(t, (*NativeEngine)(nil), native)
		assert.Equal(t, "native", native.Name())

		arithmetic, err := NewEngine("arithmetic")
		require.NoError(t, err)
		assert.IsType(t, (*ArithmeticEngine)(nil), arithmetic)
		assert.Equal(t, "arithmetic", arithmetic.Name())
	})

	t.Run("unknown context", func(t *testing.T) {
		engine, err := NewEngine("quantum")
		require.Error(t, err)
		assert.Nil(t, engine)
		assert.Contains(t, err.Error(), "unsupported evaluation context")
	})
}

func TestVerifyUsesNativeContext(t *testing.T) {
	in := makeSignedInputs(t, "package level entry")
	assert.Equal(t, NewNativeEngine().Verify(in), Verify(in))
}

func TestOutcomeString(t *testing.T) {
	addr := common.HexToAddress("0x1Be31A94361a391bBaFB2a4CCd704F57dc04d4bb")
	assert.Equal(t, "valid 0x1Be31A94361a391bBaFB2a4CCd704F57dc04d4bb", validOutcome(addr).String())
	assert.Equal(t, "invalid recovery_failed", invalidOutcome(ReasonRecoveryFailed).String())
}
