// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package posparams exposes the consensus constants the kernel is built
// against: one immutable, explicitly-constructed value instead of
// scattered package-level globals and chain-config fields.
package posparams

// DefaultModifierIntervalRatio is the default modifier interval ratio
// when a caller doesn't supply one.
const DefaultModifierIntervalRatio int64 = 3

// Config is the set of values a caller supplies when building a Params.
// ModifierIntervalRatio defaults to DefaultModifierIntervalRatio when zero.
type Config struct {
	Name                     string
	StakeMinAge              int64
	StakeMaxAge              int64
	ModifierInterval         int64
	ModifierIntervalRatio    int64
	TargetSpacing            int64
	ProtocolV2Height         int32
	StakeTimestampMask       uint32
	CoinbaseMaturity         int32
	Coin                     int64
	StakeModifierCheckpoints map[int32]uint32
}

// Params is an immutable consensus parameter set. The only derived value,
// the stake modifier selection interval, is computed once at construction
// so every caller observes the identical precomputed constant.
type Params struct {
	Name                     string
	StakeMinAge              int64
	StakeMaxAge              int64
	ModifierInterval         int64
	ModifierIntervalRatio    int64
	TargetSpacing            int64
	ProtocolV2Height         int32
	StakeTimestampMask       uint32
	CoinbaseMaturity         int32
	Coin                     int64
	StakeModifierCheckpoints map[int32]uint32

	selectionInterval int64
}

// New builds a Params from cfg, precomputing the selection interval.
func New(cfg Config) *Params {
	ratio := cfg.ModifierIntervalRatio
	if ratio == 0 {
		ratio = DefaultModifierIntervalRatio
	}
	p := &Params{
		Name:                     cfg.Name,
		StakeMinAge:              cfg.StakeMinAge,
		StakeMaxAge:              cfg.StakeMaxAge,
		ModifierInterval:         cfg.ModifierInterval,
		ModifierIntervalRatio:    ratio,
		TargetSpacing:            cfg.TargetSpacing,
		ProtocolV2Height:         cfg.ProtocolV2Height,
		StakeTimestampMask:       cfg.StakeTimestampMask,
		CoinbaseMaturity:         cfg.CoinbaseMaturity,
		Coin:                     cfg.Coin,
		StakeModifierCheckpoints: cfg.StakeModifierCheckpoints,
	}
	p.selectionInterval = computeSelectionInterval(p)
	return p
}

// SelectionIntervalSection returns section(n): the length in seconds of the
// n'th (0..63) stake modifier selection section.
func (p *Params) SelectionIntervalSection(n int) int64 {
	return p.ModifierInterval * 63 / (63 + (63-int64(n))*(p.ModifierIntervalRatio-1))
}

// SelectionInterval returns the precomputed sum of all 64 sections.
func (p *Params) SelectionInterval() int64 {
	return p.selectionInterval
}

func computeSelectionInterval(p *Params) int64 {
	var sum int64
	for n := 0; n < 64; n++ {
		sum += p.SelectionIntervalSection(n)
	}
	return sum
}

// IsV2 reports whether the kernel hash at newHeight (prev.Height()+1) runs
// the V2 protocol. The switch is strict: a block at exactly
// ProtocolV2Height still runs V1.
func (p *Params) IsV2(newHeight int32) bool {
	return newHeight > p.ProtocolV2Height
}

// MainNetParams carries historical defaults (30-day stake_min_age, 90-day
// stake_max_age, 10-minute target spacing) combined with a height-gated
// V1/V2 split and a 0x0000000F timestamp mask. ProtocolV2Height and the
// checkpoint table are illustrative defaults a deployment is expected to
// override.
var MainNetParams = New(Config{
	Name:                  "mainnet",
	StakeMinAge:           60 * 60 * 24 * 30, // 30 days
	StakeMaxAge:           60 * 60 * 24 * 90, // 90 days
	ModifierInterval:      6 * 60 * 60,       // 6 hours
	ModifierIntervalRatio: DefaultModifierIntervalRatio,
	TargetSpacing:         10 * 60, // 10 minutes
	ProtocolV2Height:      500000,
	StakeTimestampMask:    0x0000000f,
	CoinbaseMaturity:      500,
	Coin:                  100 * 10000, // 100 * Cent
})
