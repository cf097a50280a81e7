// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import "github.com/stakekernel/posd/posparams"

// GetWeight returns the coin-day weighting window used by the V1 kernel:
// the age of the staked output (end-begin) reduced by stake_min_age and
// capped at stake_max_age.
func GetWeight(params *posparams.Params, begin, end int64) int64 {
	age := end - begin - params.StakeMinAge
	if age > params.StakeMaxAge {
		return params.StakeMaxAge
	}
	return age
}
