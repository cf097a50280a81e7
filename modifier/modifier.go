// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package modifier derives the 64-bit stake modifier from block history,
// generalized onto chainidx.Node rather than a package-private node type
// and chain receiver.
package modifier

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stakekernel/posd/chainidx"
	"github.com/stakekernel/posd/numeric"
	"github.com/stakekernel/posd/posparams"
	"github.com/stakekernel/posd/serial"
)

// candidate is a (time, hash) pair used only for sorting, carrying a
// reference to the originating node.
type candidate struct {
	blockTime int64
	hash      chainhash.Hash
	node      chainidx.Node
}

type byTimeThenHash []candidate

func (s byTimeThenHash) Len() int      { return len(s) }
func (s byTimeThenHash) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Less breaks ties by comparing hash bytes from the highest index down,
// i.e. the canonical wire form read as a little-endian 256-bit integer.
func (s byTimeThenHash) Less(i, j int) bool {
	if s[i].blockTime == s[j].blockTime {
		bi, bj := s[i].hash[:], s[j].hash[:]
		for k := chainhash.HashSize - 1; k >= 0; k-- {
			if bi[k] < bj[k] {
				return true
			} else if bi[k] > bj[k] {
				return false
			}
		}
		return false
	}
	return s[i].blockTime < s[j].blockTime
}

// lastStakeModifier walks backward from node until it finds a
// GeneratedStakeModifier node, returning that node's modifier and block
// time. It trusts that a GeneratedStakeModifier node exists somewhere on
// the chain (true at genesis) rather than defending against a malformed
// index.
func lastStakeModifier(node chainidx.Node) (uint64, int64, error) {
	if node == nil {
		return 0, 0, errors.New("modifier: lastStakeModifier: nil node")
	}
	cur := node
	for cur.Parent() != nil && !cur.GeneratedStakeModifier() {
		cur = cur.Parent()
	}
	if !cur.GeneratedStakeModifier() {
		return 0, 0, errors.New("modifier: lastStakeModifier: no generation at genesis node")
	}
	return cur.StakeModifier(), cur.BlockTime(), nil
}

// selectRound runs one round of candidate selection over sorted
// (already-sorted ascending by time then hash), skipping entries in
// selected, stopping once a selected candidate's time exceeds stop.
func selectRound(sorted []candidate, selected map[chainhash.Hash]bool, stop int64, prevModifier uint64) (candidate, error) {
	var (
		best      candidate
		bestHash  = new(chainhash.Hash)
		haveBest  bool
	)

	for _, cand := range sorted {
		if haveBest && cand.blockTime > stop {
			break
		}
		if selected[cand.hash] {
			continue
		}

		var hashProof chainhash.Hash
		if zero := (chainhash.Hash{}); *cand.node.HashProof() != zero {
			hashProof = *cand.node.HashProof()
		} else {
			hashProof = cand.hash
		}

		buf := bytes.NewBuffer(make([]byte, 0, chainhash.HashSize+wire.VarIntSerializeSize(prevModifier)))
		if _, err := buf.Write(hashProof[:]); err != nil {
			return candidate{}, err
		}
		if err := serial.WriteElement(buf, prevModifier); err != nil {
			return candidate{}, err
		}

		selectionHash, err := chainhash.NewHash(chainhash.DoubleHashB(buf.Bytes()))
		if err != nil {
			return candidate{}, err
		}

		// PoS candidates are favored by dividing their selection hash by
		// 2**32.
		if cand.node.IsProofOfStake() {
			shifted := numeric.HashToUint256(selectionHash)
			shifted.Rsh(shifted, 32)
			selectionHash = numeric.Uint256ToHash(shifted)
		}

		selInt := numeric.HashToUint256(selectionHash)
		bestInt := numeric.HashToUint256(bestHash)

		if haveBest && selInt.Cmp(bestInt) < 0 {
			bestHash = selectionHash
			best = cand
		} else if !haveBest {
			haveBest = true
			bestHash = selectionHash
			best = cand
		}
	}

	if !haveBest {
		return candidate{}, fmt.Errorf("modifier: selectRound: no selectable candidate before stop=%d", stop)
	}
	return best, nil
}

// ComputeNextStakeModifier derives the stake modifier that should be
// stamped on the block being connected on top of prev. prev == nil is the
// genesis case and returns (0, true).
func ComputeNextStakeModifier(params *posparams.Params, prev chainidx.Node) (newModifier uint64, generated bool, err error) {
	if prev == nil {
		return 0, true, nil
	}

	curModifier, modTime, err := lastStakeModifier(prev)
	if err != nil {
		return 0, false, fmt.Errorf("modifier: ComputeNextStakeModifier: %w", err)
	}

	if modTime/params.ModifierInterval >= prev.BlockTime()/params.ModifierInterval {
		log.Debugf("ComputeNextStakeModifier: same epoch, keeping modifier at height=%d", prev.Height())
		return curModifier, false, nil
	}

	selectionInterval := params.SelectionInterval()
	selectionStart := (prev.BlockTime()/params.ModifierInterval)*params.ModifierInterval - selectionInterval

	var candidates []candidate
	for cur := prev; cur != nil && cur.BlockTime() >= selectionStart; cur = cur.Parent() {
		candidates = append(candidates, candidate{
			blockTime: cur.BlockTime(),
			hash:      *cur.Hash(),
			node:      cur,
		})
	}

	// Reverse then sort: normalizes tie ordering regardless of the walk's
	// (reverse-chronological) direction.
	for i, j := 0, len(candidates)-1; i < j; i, j = i+1, j-1 {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	sort.Stable(byTimeThenHash(candidates))

	selected := make(map[chainhash.Hash]bool)
	selectionStop := selectionStart
	var result uint64

	rounds := len(candidates)
	if rounds > 64 {
		rounds = 64
	}
	for round := 0; round < rounds; round++ {
		selectionStop += params.SelectionIntervalSection(round)
		picked, selErr := selectRound(candidates, selected, selectionStop, curModifier)
		if selErr != nil {
			return 0, false, fmt.Errorf("modifier: ComputeNextStakeModifier: round %d: %w", round, selErr)
		}
		result |= uint64(picked.node.StakeEntropyBit()) << uint(round)
		selected[picked.hash] = true

		log.Debugf("ComputeNextStakeModifier: round=%d height=%d bit=%d modifier=%x",
			round, picked.node.Height(), picked.node.StakeEntropyBit(), result)
	}

	return result, true, nil
}
