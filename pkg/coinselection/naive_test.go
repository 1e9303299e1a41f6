package coinselection

import (
	"math/rand"
	"testing"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewUTXO(id byte, value uint64) *common.UnspentOutput {
	utxo := &common.UnspentOutput{
		ID:    common.SiacoinOutputID{id},
		Value: common.NewCurrency64(value),
	}
	return utxo
}

type coinSelectTest struct {
	selector      Strategy
	inputCoins    []*common.UnspentOutput
	targetValue   uint64
	fee           uint64
	expectedCoins []*common.UnspentOutput
	expectedError error
}

func testCoinSelector(tests []coinSelectTest, t *testing.T) {
	for _, test := range tests {
		set, err := test.selector.SelectCoins(test.inputCoins, common.NewCurrency64(test.targetValue), common.NewCurrency64(test.fee))
		if test.expectedError != nil {
			assert.ErrorIs(t, err, test.expectedError)
			assert.Nil(t, set)
			continue
		}

		require.NoError(t, err)
		require.NotNil(t, set)
		assert.Equal(t, len(test.expectedCoins), len(set.Coins))
		for n := 0; n < len(test.expectedCoins); n++ {
			assert.Equal(t, test.expectedCoins[n].ID, set.Coins[n].ID)
		}

		var total uint64
		for _, c := range set.Coins {
			total += c.Value.Lo
		}
		assert.Equal(t, common.NewCurrency64(total), set.Total)
		assert.Equal(t, common.NewCurrency64(total-test.targetValue-test.fee), set.Change)
	}
}

var coins = []*common.UnspentOutput{
	NewUTXO(1, 100000000),
	NewUTXO(2, 10000000),
	NewUTXO(3, 50000000),
	NewUTXO(4, 25000000),
}

var minIndexSelectors = []MinIndexCoinSelector{
	{MaxInputs: 10},
	{MaxInputs: 2},
}

var minIndexTests = []coinSelectTest{
	{minIndexSelectors[0], coins, 99990000, 10000, []*common.UnspentOutput{coins[0]}, nil},
	{minIndexSelectors[0], coins, 99990000, 10001, []*common.UnspentOutput{coins[0], coins[1]}, nil},
	{minIndexSelectors[0], coins, 100000000, 0, []*common.UnspentOutput{coins[0]}, nil},
	{minIndexSelectors[0], coins, 110000000, 0, []*common.UnspentOutput{coins[0], coins[1]}, nil},
	{minIndexSelectors[0], coins, 140000000, 0, []*common.UnspentOutput{coins[0], coins[1], coins[2]}, nil},
	{minIndexSelectors[0], coins, 185000000, 0, []*common.UnspentOutput{coins[0], coins[1], coins[2], coins[3]}, nil},
	{minIndexSelectors[0], coins, 200000000, 0, nil, ErrInsufficientFunds},
	{minIndexSelectors[1], coins, 10000000, 0, []*common.UnspentOutput{coins[0]}, nil},
	{minIndexSelectors[1], coins, 110000000, 0, []*common.UnspentOutput{coins[0], coins[1]}, nil},
	{minIndexSelectors[1], coins, 140000000, 0, nil, ErrCoinsNoSelectionAvailable},
	{minIndexSelectors[1], coins, 190000000, 0, nil, ErrInsufficientFunds},
}

func TestMinIndexSelector(t *testing.T) {
	testCoinSelector(minIndexTests, t)
}

var minNumberSelectors = []MinNumberCoinSelector{
	{MaxInputs: 10},
	{MaxInputs: 2},
}

var minNumberTests = []coinSelectTest{
	{minNumberSelectors[0], coins, 99990000, 10000, []*common.UnspentOutput{coins[0]}, nil},
	{minNumberSelectors[0], coins, 99990000, 10001, []*common.UnspentOutput{coins[0], coins[2]}, nil},
	{minNumberSelectors[0], coins, 100000000, 0, []*common.UnspentOutput{coins[0]}, nil},
	{minNumberSelectors[0], coins, 110000000, 0, []*common.UnspentOutput{coins[0], coins[2]}, nil},
	{minNumberSelectors[0], coins, 160000000, 0, []*common.UnspentOutput{coins[0], coins[2], coins[3]}, nil},
	{minNumberSelectors[0], coins, 184990000, 10000, []*common.UnspentOutput{coins[0], coins[2], coins[3], coins[1]}, nil},
	{minNumberSelectors[0], coins, 184990001, 10000, nil, ErrInsufficientFunds},
	{minNumberSelectors[0], coins, 200000000, 0, nil, ErrInsufficientFunds},
	{minNumberSelectors[1], coins, 10000000, 0, []*common.UnspentOutput{coins[0]}, nil},
	{minNumberSelectors[1], coins, 110000000, 0, []*common.UnspentOutput{coins[0], coins[2]}, nil},
	{minNumberSelectors[1], coins, 140000000, 0, []*common.UnspentOutput{coins[0], coins[2]}, nil},
	{minNumberSelectors[1], coins, 160000000, 0, nil, ErrCoinsNoSelectionAvailable},
}

func TestMinNumberSelector(t *testing.T) {
	testCoinSelector(minNumberTests, t)
}

func TestMinNumberSelectorStableTies(t *testing.T) {
	pool := []*common.UnspentOutput{
		NewUTXO(1, 5),
		NewUTXO(2, 9),
		NewUTXO(3, 5),
		NewUTXO(4, 9),
		NewUTXO(5, 5),
	}
	set, err := MinNumberCoinSelector{}.SelectCoins(pool, common.NewCurrency64(20), common.NewCurrency64(3))
	require.NoError(t, err)

	ids := make([]byte, 0, len(set.Coins))
	for _, c := range set.Coins {
		ids = append(ids, c.ID[0])
	}
	assert.Equal(t, []byte{2, 4, 1}, ids)
	assert.Equal(t, common.NewCurrency64(23), set.Total)
	assert.True(t, set.Change.IsZero())
}

func TestMinNumberSelectorDoesNotMutateInput(t *testing.T) {
	pool := []*common.UnspentOutput{NewUTXO(1, 1), NewUTXO(2, 3), NewUTXO(3, 2)}
	before := append([]*common.UnspentOutput(nil), pool...)

	_, err := MinNumberCoinSelector{}.SelectCoins(pool, common.NewCurrency64(4), common.ZeroCurrency)
	require.NoError(t, err)
	assert.Equal(t, before, pool)
}

func TestSelectZeroRequirement(t *testing.T) {
	set, err := MinNumberCoinSelector{}.SelectCoins(coins, common.ZeroCurrency, common.ZeroCurrency)
	require.NoError(t, err)
	assert.Empty(t, set.Coins)
	assert.True(t, set.Change.IsZero())
}

func TestSelectRangeErrors(t *testing.T) {
	_, err := MinNumberCoinSelector{}.SelectCoins(coins, common.MaxCurrency, common.NewCurrency64(1))
	assert.ErrorIs(t, err, common.ErrRange)

	huge := []*common.UnspentOutput{
		{ID: common.SiacoinOutputID{1}, Value: common.MaxCurrency},
		{ID: common.SiacoinOutputID{2}, Value: common.MaxCurrency},
	}
	// the first output alone covers the requirement
	set, err := MinIndexCoinSelector{}.SelectCoins(huge, common.NewCurrency(0, 1<<63), common.ZeroCurrency)
	require.NoError(t, err)
	assert.Len(t, set.Coins, 1)

	// both are needed and their sum does not fit in 128 bits
	wide := []*common.UnspentOutput{
		{ID: common.SiacoinOutputID{1}, Value: common.NewCurrency(0, 1<<63)},
		{ID: common.SiacoinOutputID{2}, Value: common.MaxCurrency},
	}
	_, err = MinIndexCoinSelector{}.SelectCoins(wide, common.MaxCurrency, common.ZeroCurrency)
	assert.ErrorIs(t, err, common.ErrRange)
}

func TestWideSum(t *testing.T) {
	var s WideSum
	s = s.Add(common.MaxCurrency).Add(common.NewCurrency64(2))
	assert.Equal(t, uint64(1), s.Carry)
	assert.True(t, s.Covers(common.MaxCurrency))

	_, ok := s.Currency()
	assert.False(t, ok)

	diff, ok := s.Minus(common.NewCurrency64(5))
	assert.True(t, ok)
	assert.Equal(t, common.MaxCurrency.Sub(common.NewCurrency64(3)), diff)

	_, ok = s.Minus(common.NewCurrency64(1))
	assert.False(t, ok)
}

func TestSelectionInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		pool := make([]*common.UnspentOutput, r.Intn(12))
		var total uint64
		for j := range pool {
			v := uint64(r.Intn(1000))
			pool[j] = NewUTXO(byte(j), v)
			pool[j].MaturityHeight = uint64(r.Intn(20))
			total += v
		}
		height := uint64(r.Intn(20))
		mature := FilterMature(pool, height)
		var matureTotal uint64
		for _, u := range mature {
			matureTotal += u.Value.Lo
		}
		target := uint64(r.Intn(int(total) + 1))
		fee := uint64(r.Intn(50))

		set, err := MinNumberCoinSelector{}.SelectCoins(mature, common.NewCurrency64(target), common.NewCurrency64(fee))
		if matureTotal < target+fee {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
			assert.Nil(t, set)
			continue
		}
		require.NoError(t, err)
		var sum uint64
		for _, c := range set.Coins {
			assert.Contains(t, mature, c)
			assert.LessOrEqual(t, c.MaturityHeight, height)
			sum += c.Value.Lo
		}
		assert.GreaterOrEqual(t, sum, target+fee)
		assert.Equal(t, common.NewCurrency64(sum-target-fee), set.Change)
	}
}

func TestFilterMature(t *testing.T) {
	pool := []*common.UnspentOutput{NewUTXO(1, 1), NewUTXO(2, 2), NewUTXO(3, 3)}
	pool[0].MaturityHeight = 10
	pool[1].MaturityHeight = 11
	pool[2].MaturityHeight = 5

	mature := FilterMature(pool, 10)
	require.Len(t, mature, 2)
	assert.Equal(t, pool[0], mature[0])
	assert.Equal(t, pool[2], mature[1])
	assert.Empty(t, FilterMature(nil, 10))
}

func TestRandomSelectorDeterministicWithSource(t *testing.T) {
	s := RandomCoinSelector{Source: rand.NewSource(7)}
	a, err := s.SelectCoins(coins, common.NewCurrency64(150000000), common.ZeroCurrency)
	require.NoError(t, err)

	s = RandomCoinSelector{Source: rand.NewSource(7)}
	b, err := s.SelectCoins(coins, common.NewCurrency64(150000000), common.ZeroCurrency)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, a.Total.Cmp(common.NewCurrency64(150000000)) >= 0)

	_, err = s.SelectCoins(coins, common.NewCurrency64(185000001), common.ZeroCurrency)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestNew(t *testing.T) {
	s, err := New("", 3)
	require.NoError(t, err)
	assert.Equal(t, MinNumberCoinSelector{MaxInputs: 3}, s)

	s, err = New(StrategyInOrder, 0)
	require.NoError(t, err)
	assert.IsType(t, MinIndexCoinSelector{}, s)

	_, err = New("knapsack", 0)
	assert.Error(t, err)
}
