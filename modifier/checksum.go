// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package modifier

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stakekernel/posd/chainidx"
	"github.com/stakekernel/posd/numeric"
	"github.com/stakekernel/posd/posparams"
	"github.com/stakekernel/posd/serial"
)

// Checksum computes the stake modifier checksum for node: SHA-256d of the
// parent's checksum, this node's flags, hash proof, and stake modifier,
// folded down to 32 bits. flags is the caller's packed block-meta flags
// (FBlockProofOfStake | FBlockStakeEntropy | FBlockStakeModifier); genesis
// (node.Parent() == nil) returns 0, since there is no parent index entry
// to chain the checksum from.
func Checksum(node chainidx.Node, parentChecksum uint32, flags uint32) (uint32, error) {
	if node.Parent() == nil {
		return 0, nil
	}

	buf := new(bytes.Buffer)
	if err := serial.WriteElement(buf, parentChecksum); err != nil {
		return 0, err
	}
	if err := serial.WriteElement(buf, flags); err != nil {
		return 0, err
	}
	if _, err := buf.Write(node.HashProof()[:]); err != nil {
		return 0, err
	}
	if err := serial.WriteElement(buf, node.StakeModifier()); err != nil {
		return 0, err
	}

	checksumHash, err := chainhash.NewHash(chainhash.DoubleHashB(buf.Bytes()))
	if err != nil {
		return 0, err
	}

	v := numeric.HashToUint256(checksumHash)
	v.Rsh(v, 256-32)
	return uint32(v.Uint64()), nil
}

// CheckCheckpoint reports whether checksum matches a hard checkpoint
// recorded for height, or true if no checkpoint exists at that height.
func CheckCheckpoint(params *posparams.Params, height int32, checksum uint32) bool {
	expect, ok := params.StakeModifierCheckpoints[height]
	if !ok {
		return true
	}
	return checksum == expect
}
