package usecase

import (
	"allocator/interface/exporter"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exporter.Init()
	os.Exit(m.Run())
}

func TestParseScenarioRejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(`[{"op": "set_now", "now": 1, "bogus": true}]`))
	assert.Error(t, err)
}

func TestParseScenario(t *testing.T) {
	steps, err := ParseScenario([]byte(`[
		{"op": "set_now", "now": 100},
		{"op": "swap", "swap": {"deposit_id": 1, "investor_key": "0xaa", "usdt_amount": "1000", "fx_rate": "2", "ton_tx_hash": "0xbb"}},
		{"op": "withdraw", "usdt_amount": "40"}
	]`))
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, StepSetNow, steps[0].Op)
	require.NotNil(t, steps[1].Swap)
	assert.Equal(t, "1000", steps[1].Swap.UsdtAmount.String())
}

func TestScenarioRun(t *testing.T) {
	allocator := testAllocator(t)
	interactor := NewScenarioInteractor(allocator, nil, dec("1"))

	steps, err := ParseScenario([]byte(`[
		{"op": "set_now", "now": 100},
		{"op": "swap", "swap": {"deposit_id": 1, "investor_key": "0xaa", "usdt_amount": "1000", "fx_rate": "2", "ton_tx_hash": "0xbb"}},
		{"op": "jetton_transfer", "transfer": {
			"wallet": "0:aa11", "deposit_id": 2, "investor_key": "0xaa",
			"usdt_amount": "100", "jetton_amount": "100", "fx_rate": "1",
			"forward_ton": "1.25", "ton_tx_hash": "0xbb"}},
		{"op": "withdraw", "usdt_amount": "40"}
	]`))
	require.NoError(t, err)

	require.NoError(t, interactor.Run(steps))

	assert.Equal(t, "560", allocator.VaultBalance().String())
	require.Len(t, allocator.Forwards(), 1)
	assert.Equal(t, "1250000000", allocator.Forwards()[0].Value.String())
}

func TestScenarioRunRejectionsDoNotAbort(t *testing.T) {
	allocator := testAllocator(t)
	interactor := NewScenarioInteractor(allocator, nil, dec("1"))

	steps, err := ParseScenario([]byte(`[
		{"op": "execute_pause"},
		{"op": "swap", "swap": {"deposit_id": 1, "investor_key": "0xaa", "usdt_amount": "10", "fx_rate": "1", "ton_tx_hash": "0xbb"}}
	]`))
	require.NoError(t, err)

	require.NoError(t, interactor.Run(steps))
	assert.Equal(t, "10", allocator.VaultBalance().String())
}

func TestScenarioRunUsesDefaultFxRate(t *testing.T) {
	allocator := testAllocator(t)
	interactor := NewScenarioInteractor(allocator, nil, dec("2"))

	steps, err := ParseScenario([]byte(`[
		{"op": "swap", "swap": {"deposit_id": 1, "investor_key": "0xaa", "usdt_amount": "1000", "ton_tx_hash": "0xbb"}}
	]`))
	require.NoError(t, err)

	require.NoError(t, interactor.Run(steps))
	assert.Equal(t, "500", allocator.VaultBalance().String())
}

func TestScenarioRunUnknownStep(t *testing.T) {
	allocator := testAllocator(t)
	interactor := NewScenarioInteractor(allocator, nil, dec("1"))

	err := interactor.runStep(ScenarioStep{Op: "reset"})
	assert.ErrorIs(t, err, ErrorUnknownStep)
}
