// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import (
	"testing"

	"github.com/stakekernel/posd/posparams"
	"github.com/stretchr/testify/require"
)

func TestGetWeightBoundaries(t *testing.T) {
	params := posparams.New(posparams.Config{
		StakeMinAge: 50,
		StakeMaxAge: 100,
	})

	require.Equal(t, int64(0), GetWeight(params, 0, 50))
	require.Equal(t, int64(100), GetWeight(params, 0, 150))
	require.Equal(t, int64(100), GetWeight(params, 0, 151))
	require.Equal(t, int64(25), GetWeight(params, 0, 75))
}
