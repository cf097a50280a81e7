package posparams

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectionIntervalSum(t *testing.T) {
	p := New(Config{ModifierInterval: 10 * 60})

	var sum int64
	for n := 0; n < 64; n++ {
		sum += p.SelectionIntervalSection(n)
	}
	require.Equal(t, sum, p.SelectionInterval())
	require.Equal(t, p.SelectionIntervalSection(0), p.SelectionIntervalSection(0))
}

func TestIsV2StrictGreaterThan(t *testing.T) {
	p := New(Config{ProtocolV2Height: 1000})

	require.False(t, p.IsV2(999))
	require.False(t, p.IsV2(1000))
	require.True(t, p.IsV2(1001))
}

func TestModifierIntervalRatioDefault(t *testing.T) {
	p := New(Config{ModifierInterval: 600})
	require.Equal(t, DefaultModifierIntervalRatio, p.ModifierIntervalRatio)

	p2 := New(Config{ModifierInterval: 600, ModifierIntervalRatio: 5})
	require.Equal(t, int64(5), p2.ModifierIntervalRatio)
}

func TestMainNetParamsSelectionIntervalPositive(t *testing.T) {
	require.Greater(t, MainNetParams.SelectionInterval(), int64(0))
}
