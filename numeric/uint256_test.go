// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package numeric

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestHashUint256RoundTrip(t *testing.T) {
	hash := chainhash.Hash{}
	for i := range hash {
		hash[i] = byte(i + 1)
	}
	v := HashToUint256(&hash)
	back := Uint256ToHash(v)
	require.Equal(t, hash, *back)
}

func TestExpandCompactKnownVectors(t *testing.T) {
	// 0x1d00ffff is Bitcoin genesis difficulty: mantissa 0x00ffff, exponent 0x1d.
	got := ExpandCompact(0x1d00ffff)
	want := new(uint256.Int).Lsh(uint256.NewInt(0xffff), 8*(0x1d-3))
	require.True(t, got.Eq(want))

	// A negative-flagged compact value always expands to zero.
	require.True(t, ExpandCompact(0x01800001).IsZero())
}

func TestCompactFromUint256RoundTrip(t *testing.T) {
	for _, compact := range []uint32{0x1d00ffff, 0x1b0404cb} {
		v := ExpandCompact(compact)
		got := CompactFromUint256(v)
		require.Equal(t, compact, got, "round trip for 0x%08x", compact)
	}
}

func TestCompactFromUint256Zero(t *testing.T) {
	require.Equal(t, uint32(0), CompactFromUint256(new(uint256.Int)))
}

func TestMulOverflowDetectsOverflow(t *testing.T) {
	max := new(uint256.Int).Sub(
		new(uint256.Int).Lsh(uint256.NewInt(1), 255),
		uint256.NewInt(0),
	)
	_, err := MulOverflow(max, uint256.NewInt(4))
	require.Error(t, err)

	product, err := MulOverflow(uint256.NewInt(3), uint256.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, uint64(15), product.Uint64())
}
