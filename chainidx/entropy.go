// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainidx

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/holiman/uint256"
	"github.com/stakekernel/posd/numeric"
)

// EntropyBit derives the deterministic stake entropy bit for blockHash: the
// lowest bit of the block hash read as a big-endian 256-bit integer. This is
// the only derivation a height-gated V1/V2 kernel ever exercises.
func EntropyBit(blockHash *chainhash.Hash) uint32 {
	return uint32(numeric.HashToUint256(blockHash).Uint64() & 1)
}

// LegacyEntropyBit reproduces a pre-height-gating entropy bit definition
// (bit 159 of the big-endian RIPEMD160(SHA256(signature)) digest), kept
// for historical fidelity. This kernel's parameter model (height-gated
// V1/V2) postdates that definition, so no production code path calls
// this; it exists so the historical derivation isn't silently lost.
func LegacyEntropyBit(signature []byte) uint32 {
	digest := btcutil.Hash160(signature)
	for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
		digest[i], digest[j] = digest[j], digest[i]
	}
	v := new(uint256.Int).SetBytes(digest)
	v.Rsh(v, 159)
	return uint32(v.Uint64())
}
