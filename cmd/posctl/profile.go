// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/stakekernel/posd/posparams"
	"gopkg.in/yaml.v3"
)

// networkProfile is the on-disk YAML shape of a named consensus parameter
// set, loaded the way sibling repos in this lineage load their network
// config: one file, one struct, no env var overrides.
type networkProfile struct {
	Name                     string            `yaml:"name"`
	StakeMinAge              int64             `yaml:"stake_min_age"`
	StakeMaxAge              int64             `yaml:"stake_max_age"`
	ModifierInterval         int64             `yaml:"modifier_interval"`
	ModifierIntervalRatio    int64             `yaml:"modifier_interval_ratio"`
	TargetSpacing            int64             `yaml:"target_spacing"`
	ProtocolV2Height         int32             `yaml:"protocol_v2_height"`
	StakeTimestampMask       uint32            `yaml:"stake_timestamp_mask"`
	CoinbaseMaturity         int32             `yaml:"coinbase_maturity"`
	Coin                     int64             `yaml:"coin"`
	StakeModifierCheckpoints map[int32]uint32  `yaml:"stake_modifier_checkpoints"`
}

func loadProfile(path string) (*posparams.Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading network profile: %w", err)
	}

	var p networkProfile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing network profile: %w", err)
	}

	return posparams.New(posparams.Config{
		Name:                     p.Name,
		StakeMinAge:              p.StakeMinAge,
		StakeMaxAge:              p.StakeMaxAge,
		ModifierInterval:         p.ModifierInterval,
		ModifierIntervalRatio:    p.ModifierIntervalRatio,
		TargetSpacing:            p.TargetSpacing,
		ProtocolV2Height:         p.ProtocolV2Height,
		StakeTimestampMask:       p.StakeTimestampMask,
		CoinbaseMaturity:         p.CoinbaseMaturity,
		Coin:                     p.Coin,
		StakeModifierCheckpoints: p.StakeModifierCheckpoints,
	}), nil
}
