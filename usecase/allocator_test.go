package usecase

import (
	"allocator/domain"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimelock = 3600

func testWallet(t *testing.T, value string) domain.Address {
	t.Helper()
	addr, err := domain.NewAddress(value)
	require.NoError(t, err)
	return addr
}

func testAllocator(t *testing.T) *Allocator {
	t.Helper()
	return NewAllocator(testWallet(t, "0:aa11"), testTimelock)
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testTransfer(t *testing.T, wallet string) domain.JettonTransferRequest {
	t.Helper()
	return domain.JettonTransferRequest{
		Wallet:           testWallet(t, wallet),
		DepositId:        7,
		InvestorKey:      "0xaabb",
		UsdtAmount:       dec("100"),
		JettonAmount:     dec("100"),
		FxRate:           dec("1"),
		ForwardTonAmount: big.NewInt(50000000),
		TonTxHash:        "0xccdd",
	}
}

func TestSwapConvertsAtFxRate(t *testing.T) {
	allocator := testAllocator(t)
	allocator.SetNow(1000)

	event, err := allocator.Swap(domain.SwapRequest{
		DepositId:   1,
		InvestorKey: "0xaabb",
		UsdtAmount:  dec("1000"),
		FxRate:      dec("2"),
		TonTxHash:   "0xccdd",
	})
	require.NoError(t, err)

	assert.Equal(t, "500", event.DctAmount.String())
	assert.EqualValues(t, 1000, event.Timestamp)
	assert.Equal(t, "500", allocator.VaultBalance().String())
	assert.Empty(t, allocator.Forwards())
}

func TestSwapRoundsAtNanoPrecision(t *testing.T) {
	allocator := testAllocator(t)

	event, err := allocator.Swap(domain.SwapRequest{
		UsdtAmount: dec("1"),
		FxRate:     dec("3"),
	})
	require.NoError(t, err)

	assert.Equal(t, "0.333333333", event.DctAmount.String())
	assert.Equal(t, "0.333333333", allocator.VaultBalance().String())
}

func TestSwapRejectsNonPositiveAmount(t *testing.T) {
	allocator := testAllocator(t)

	for _, amount := range []string{"-100", "0"} {
		_, err := allocator.Swap(domain.SwapRequest{
			UsdtAmount: dec(amount),
			FxRate:     dec("1"),
		})
		assert.ErrorIs(t, err, ErrorInvalidAmount, "amount %v", amount)
	}
	assert.True(t, allocator.VaultBalance().IsZero())
}

func TestSwapRejectsNonPositiveFxRate(t *testing.T) {
	allocator := testAllocator(t)

	for _, rate := range []string{"0", "-2"} {
		_, err := allocator.Swap(domain.SwapRequest{
			UsdtAmount: dec("10"),
			FxRate:     dec(rate),
		})
		assert.ErrorIs(t, err, domain.ErrorInvalidFxRate, "rate %v", rate)
	}
	assert.True(t, allocator.VaultBalance().IsZero())
}

func TestSwapRejectedWhenPaused(t *testing.T) {
	allocator := testAllocator(t)
	allocator.SchedulePause(true)
	allocator.SetNow(testTimelock)
	require.NoError(t, allocator.ExecutePause())

	_, err := allocator.Swap(domain.SwapRequest{
		UsdtAmount: dec("10"),
		FxRate:     dec("1"),
	})
	assert.ErrorIs(t, err, ErrorAllocatorPaused)
	assert.True(t, allocator.VaultBalance().IsZero())
}

func TestPauseTimelock(t *testing.T) {
	allocator := testAllocator(t)
	allocator.SetNow(500)

	pending := allocator.SchedulePause(true)
	assert.EqualValues(t, 500+testTimelock, pending.EffectiveAt)
	assert.True(t, pending.TargetPaused)

	err := allocator.ExecutePause()
	assert.ErrorIs(t, err, ErrorTimelockActive)
	assert.False(t, allocator.Paused())

	allocator.SetNow(500 + testTimelock - 1)
	err = allocator.ExecutePause()
	assert.ErrorIs(t, err, ErrorTimelockActive)

	allocator.SetNow(500 + testTimelock)
	require.NoError(t, allocator.ExecutePause())
	assert.True(t, allocator.Paused())
	assert.Nil(t, allocator.PendingPause())
}

func TestExecutePauseWithoutSchedule(t *testing.T) {
	allocator := testAllocator(t)
	err := allocator.ExecutePause()
	assert.ErrorIs(t, err, ErrorNoPauseScheduled)
}

func TestSchedulePauseOverwritesPending(t *testing.T) {
	allocator := testAllocator(t)

	allocator.SchedulePause(true)
	allocator.SetNow(10)
	allocator.SchedulePause(false)

	pending := allocator.PendingPause()
	require.NotNil(t, pending)
	assert.EqualValues(t, 10+testTimelock, pending.EffectiveAt)
	assert.False(t, pending.TargetPaused)

	allocator.SetNow(10 + testTimelock)
	require.NoError(t, allocator.ExecutePause())
	assert.False(t, allocator.Paused())
}

func TestProcessJettonTransfer(t *testing.T) {
	allocator := testAllocator(t)
	allocator.SetNow(2000)

	request := testTransfer(t, "0:aa11")
	request.UsdtAmount = dec("150")
	request.JettonAmount = dec("150")
	request.FxRate = dec("3")

	event, err := allocator.ProcessJettonTransfer(request)
	require.NoError(t, err)

	assert.Equal(t, "50", event.DctAmount.String())
	assert.EqualValues(t, 2000, event.Timestamp)
	assert.Equal(t, "50", allocator.VaultBalance().String())

	forwards := allocator.Forwards()
	require.Len(t, forwards, 1)
	assert.Equal(t, "50000000", forwards[0].Value.String())
	assert.EqualValues(t, 7, forwards[0].Payload.DepositId)
	assert.Equal(t, "150", forwards[0].Payload.UsdtAmount.String())
	assert.Equal(t, "50", forwards[0].Payload.DctAmount.String())
}

func TestProcessJettonTransferUnauthorized(t *testing.T) {
	allocator := testAllocator(t)

	_, err := allocator.ProcessJettonTransfer(testTransfer(t, "0:bb22"))
	assert.ErrorIs(t, err, ErrorUnauthorizedJetton)
	assert.True(t, allocator.VaultBalance().IsZero())
	assert.Empty(t, allocator.Forwards())
}

func TestProcessJettonTransferInvalidForwardTon(t *testing.T) {
	allocator := testAllocator(t)

	request := testTransfer(t, "0:aa11")
	request.ForwardTonAmount = big.NewInt(0)
	_, err := allocator.ProcessJettonTransfer(request)
	assert.ErrorIs(t, err, ErrorInvalidForwardTon)

	request.ForwardTonAmount = nil
	_, err = allocator.ProcessJettonTransfer(request)
	assert.ErrorIs(t, err, ErrorInvalidForwardTon)

	assert.Empty(t, allocator.Forwards())
}

func TestProcessJettonTransferAmountMismatch(t *testing.T) {
	allocator := testAllocator(t)

	request := testTransfer(t, "0:aa11")
	request.JettonAmount = dec("99")
	_, err := allocator.ProcessJettonTransfer(request)
	assert.ErrorIs(t, err, ErrorAmountMismatch)
	assert.True(t, allocator.VaultBalance().IsZero())
	assert.Empty(t, allocator.Forwards())
}

// A negative amount pair satisfies the mismatch check, so it must be
// stopped by the positivity precondition before it credits the vault
// downward.
func TestProcessJettonTransferRejectsNonPositiveAmount(t *testing.T) {
	allocator := testAllocator(t)

	for _, amount := range []string{"-100", "0"} {
		request := testTransfer(t, "0:aa11")
		request.UsdtAmount = dec(amount)
		request.JettonAmount = dec(amount)

		_, err := allocator.ProcessJettonTransfer(request)
		assert.ErrorIs(t, err, ErrorInvalidAmount, "amount %v", amount)
	}
	assert.True(t, allocator.VaultBalance().IsZero())
	assert.Empty(t, allocator.Forwards())
}

func TestProcessJettonTransferRejectsNonPositiveFxRate(t *testing.T) {
	allocator := testAllocator(t)

	for _, rate := range []string{"0", "-1"} {
		request := testTransfer(t, "0:aa11")
		request.FxRate = dec(rate)

		_, err := allocator.ProcessJettonTransfer(request)
		assert.ErrorIs(t, err, domain.ErrorInvalidFxRate, "rate %v", rate)
	}
	assert.True(t, allocator.VaultBalance().IsZero())
	assert.Empty(t, allocator.Forwards())
}

// The pause switch gates Swap only. A jetton transfer has already moved
// funds by the time the allocator sees it, so it is credited even while
// paused.
func TestProcessJettonTransferIgnoresPause(t *testing.T) {
	allocator := testAllocator(t)
	allocator.SchedulePause(true)
	allocator.SetNow(testTimelock)
	require.NoError(t, allocator.ExecutePause())

	_, err := allocator.ProcessJettonTransfer(testTransfer(t, "0:aa11"))
	require.NoError(t, err)
	assert.Equal(t, "100", allocator.VaultBalance().String())
}

func TestRequestWithdrawal(t *testing.T) {
	allocator := testAllocator(t)

	_, err := allocator.Swap(domain.SwapRequest{
		UsdtAmount: dec("100"),
		FxRate:     dec("1"),
	})
	require.NoError(t, err)

	result, err := allocator.RequestWithdrawal(dec("40"))
	require.NoError(t, err)
	assert.Equal(t, "40", result.DctBurned.String())
	assert.Equal(t, "40", result.UsdtAmount.String())
	assert.Equal(t, "60", allocator.VaultBalance().String())
}

func TestRequestWithdrawalInvalidAmount(t *testing.T) {
	allocator := testAllocator(t)

	_, err := allocator.RequestWithdrawal(dec("0"))
	assert.ErrorIs(t, err, ErrorInvalidAmount)

	_, err = allocator.RequestWithdrawal(dec("-5"))
	assert.ErrorIs(t, err, ErrorInvalidAmount)
}

func TestRequestWithdrawalInsufficientBalance(t *testing.T) {
	allocator := testAllocator(t)

	_, err := allocator.Swap(domain.SwapRequest{
		UsdtAmount: dec("10"),
		FxRate:     dec("1"),
	})
	require.NoError(t, err)

	_, err = allocator.RequestWithdrawal(dec("10.000000001"))
	assert.ErrorIs(t, err, ErrorInsufficientVault)
	assert.Equal(t, "10", allocator.VaultBalance().String())
}

func TestVaultAccountingAcrossSequence(t *testing.T) {
	allocator := testAllocator(t)

	credited := decimal.Zero
	burned := decimal.Zero

	event, err := allocator.Swap(domain.SwapRequest{UsdtAmount: dec("1000"), FxRate: dec("3")})
	require.NoError(t, err)
	credited = credited.Add(event.DctAmount)

	request := testTransfer(t, "0:aa11")
	request.UsdtAmount = dec("250")
	request.JettonAmount = dec("250")
	request.FxRate = dec("7")
	event, err = allocator.ProcessJettonTransfer(request)
	require.NoError(t, err)
	credited = credited.Add(event.DctAmount)

	result, err := allocator.RequestWithdrawal(dec("12.5"))
	require.NoError(t, err)
	burned = burned.Add(result.DctBurned)

	expected := domain.Round9(credited.Sub(burned))
	assert.True(t, allocator.VaultBalance().Equal(expected),
		"vault %v, expected %v", allocator.VaultBalance(), expected)
	assert.False(t, allocator.VaultBalance().IsNegative())
}

func TestSetNowAcceptsRegression(t *testing.T) {
	allocator := testAllocator(t)
	allocator.SetNow(100)
	allocator.SetNow(50)
	assert.EqualValues(t, 50, allocator.Now())
}

func TestSnapshot(t *testing.T) {
	allocator := testAllocator(t)
	allocator.SetNow(42)
	allocator.SchedulePause(true)

	_, err := allocator.Swap(domain.SwapRequest{UsdtAmount: dec("10"), FxRate: dec("2")})
	require.NoError(t, err)

	snapshot := allocator.Snapshot()
	assert.False(t, snapshot.Paused)
	require.NotNil(t, snapshot.Pending)
	assert.EqualValues(t, 42+testTimelock, snapshot.Pending.EffectiveAt)
	assert.Equal(t, "5", snapshot.VaultBalance.String())
	assert.EqualValues(t, 42, snapshot.Now)
	assert.EqualValues(t, 0, snapshot.ForwardCount)

	restored := domain.AllocatorSnapshot{}
	require.NoError(t, restored.FromJson(snapshot.ToJson()))
	assert.Equal(t, snapshot.Pending.EffectiveAt, restored.Pending.EffectiveAt)
	assert.True(t, snapshot.VaultBalance.Equal(restored.VaultBalance))
}
