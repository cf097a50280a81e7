// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kernel implements the PoS kernel hash check: two protocol
// variants dispatched by height, plus the V1-only forward stake modifier
// lookup. The split follows how CheckStakeKernelHashV1/V2 divide the
// computation, rather than a time-based version switch; see DESIGN.md.
package kernel

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/holiman/uint256"
	"github.com/stakekernel/posd/chainidx"
	"github.com/stakekernel/posd/numeric"
	"github.com/stakekernel/posd/posparams"
	"github.com/stakekernel/posd/serial"
)

// Preflight violations. Both are ban-worthy: they can only arise from a
// malformed or dishonestly-constructed coinstake.
var (
	ErrNTimeViolation  = errors.New("kernel: coinstake timestamp precedes referenced output's timestamp")
	ErrMinAgeViolation = errors.New("kernel: referenced output has not reached stake_min_age")
)

// GetKernelStakeModifier walks forward from blockFrom along the active
// chain's Next() links until the running modifier time reaches
// blockFrom.BlockTime()+selection_interval. ok is false with a nil error
// to signal "try again once the chain advances";
// a non-nil error means the lookup can never resolve (print mode, or the
// staked block is old enough it should have resolved already).
func GetKernelStakeModifier(params *posparams.Params, blockFrom chainidx.Node, timeSource chainidx.TimeSource, printMode bool) (modifier uint64, ok bool, err error) {
	selectionInterval := params.SelectionInterval()
	node := blockFrom
	modifierTime := blockFrom.BlockTime()
	target := blockFrom.BlockTime() + selectionInterval

	for modifierTime < target {
		next := node.Next()
		if next == nil {
			tooOld := blockFrom.BlockTime()+params.StakeMinAge-selectionInterval > timeSource.AdjustedTime().Unix()
			if printMode || tooOld {
				return 0, false, fmt.Errorf("kernel: GetKernelStakeModifier: reached chain tip at height=%d from block %v", node.Height(), blockFrom.Hash())
			}
			return 0, false, nil
		}
		node = next
		if node.GeneratedStakeModifier() {
			modifierTime = node.BlockTime()
		}
	}
	return node.StakeModifier(), true, nil
}

// preflight runs the two checks common to both kernel protocol versions and
// returns the resolved tx_prev timestamp, falling back to the containing
// block's timestamp when the transaction carries no recorded time.
func preflight(params *posparams.Params, timeBlockFrom int64, txPrevTime uint32, timeTx uint32) (resolvedTxPrevTime uint32, err error) {
	resolvedTxPrevTime = txPrevTime
	if resolvedTxPrevTime == 0 {
		resolvedTxPrevTime = uint32(timeBlockFrom)
	}
	if int64(timeTx) < int64(resolvedTxPrevTime) {
		return resolvedTxPrevTime, ErrNTimeViolation
	}
	if timeBlockFrom+params.StakeMinAge > int64(timeTx) {
		return resolvedTxPrevTime, ErrMinAgeViolation
	}
	return resolvedTxPrevTime, nil
}

// CheckStakeKernelHash dispatches the V2 protocol when
// prev.Height()+1 > params.ProtocolV2Height, V1 otherwise (strict >).
// hashProof, target and ok are only meaningful when err is nil; ok=false
// with err=nil is the soft-fail case of "the kernel inequality wasn't
// met" (or, for V1, "forward modifier not yet available").
func CheckStakeKernelHash(
	params *posparams.Params,
	prev chainidx.Node,
	nBits uint32,
	blockFrom chainidx.Node,
	txPrevOffset uint32,
	txPrev *chainidx.Tx,
	prevout wire.OutPoint,
	timeTx uint32,
	timeSource chainidx.TimeSource,
	printMode bool,
) (hashProof *chainhash.Hash, target *uint256.Int, ok bool, err error) {
	newHeight := prev.Height() + 1
	if params.IsV2(newHeight) {
		return checkStakeKernelHashV2(params, prev, nBits, blockFrom, txPrev, prevout, timeTx)
	}
	return checkStakeKernelHashV1(params, blockFrom, nBits, txPrevOffset, txPrev, prevout, timeTx, timeSource, printMode)
}

func checkStakeKernelHashV2(
	params *posparams.Params,
	prev chainidx.Node,
	nBits uint32,
	blockFrom chainidx.Node,
	txPrev *chainidx.Tx,
	prevout wire.OutPoint,
	timeTx uint32,
) (*chainhash.Hash, *uint256.Int, bool, error) {
	timeBlockFrom := blockFrom.BlockTime()
	timeTxPrev, err := preflight(params, timeBlockFrom, txPrev.Time, timeTx)
	if err != nil {
		return nil, nil, false, err
	}

	valueIn := txPrev.Msg.TxOut[prevout.Index].Value
	target, err := numeric.MulOverflow(numeric.ExpandCompact(nBits), uint256.NewInt(uint64(valueIn)))
	if err != nil {
		return nil, nil, false, err
	}

	modifier := prev.StakeModifier()

	buf := new(bytes.Buffer)
	if err := writeAll(buf,
		modifier,
		uint32(timeBlockFrom),
		timeTxPrev,
		&prevout.Hash,
		prevout.Index,
		timeTx,
	); err != nil {
		return nil, nil, false, err
	}

	hashProof, err := chainhash.NewHash(chainhash.DoubleHashB(buf.Bytes()))
	if err != nil {
		return nil, nil, false, err
	}

	proofInt := numeric.HashToUint256(hashProof)
	success := proofInt.Cmp(target) <= 0

	log.Debugf("checkStakeKernelHashV2: height=%d hashProof=%v target=%v success=%v",
		prev.Height()+1, hashProof, target, success)

	return hashProof, target, success, nil
}

func checkStakeKernelHashV1(
	params *posparams.Params,
	blockFrom chainidx.Node,
	nBits uint32,
	txPrevOffset uint32,
	txPrev *chainidx.Tx,
	prevout wire.OutPoint,
	timeTx uint32,
	timeSource chainidx.TimeSource,
	printMode bool,
) (*chainhash.Hash, *uint256.Int, bool, error) {
	timeBlockFrom := blockFrom.BlockTime()
	timeTxPrev, err := preflight(params, timeBlockFrom, txPrev.Time, timeTx)
	if err != nil {
		return nil, nil, false, err
	}

	valueIn := txPrev.Msg.TxOut[prevout.Index].Value
	weight := GetWeight(params, int64(timeTxPrev), int64(timeTx))

	coinDayWeight := new(uint256.Int).Mul(uint256.NewInt(uint64(valueIn)), uint256.NewInt(uint64(weight)))
	coinDayWeight.Div(coinDayWeight, uint256.NewInt(uint64(params.Coin)))
	coinDayWeight.Div(coinDayWeight, uint256.NewInt(24*60*60))

	target, err := numeric.MulOverflow(numeric.ExpandCompact(nBits), coinDayWeight)
	if err != nil {
		return nil, nil, false, err
	}

	modifier, modOk, err := GetKernelStakeModifier(params, blockFrom, timeSource, printMode)
	if err != nil {
		return nil, nil, false, err
	}
	if !modOk {
		return nil, nil, false, nil
	}

	buf := new(bytes.Buffer)
	if err := writeAll(buf,
		modifier,
		uint32(timeBlockFrom),
		txPrevOffset,
		timeTxPrev,
		prevout.Index,
		timeTx,
	); err != nil {
		return nil, nil, false, err
	}

	hashProof, err := chainhash.NewHash(chainhash.DoubleHashB(buf.Bytes()))
	if err != nil {
		return nil, nil, false, err
	}

	proofInt := numeric.HashToUint256(hashProof)
	success := proofInt.Cmp(target) <= 0

	log.Debugf("checkStakeKernelHashV1: modifier=%d hashProof=%v target=%v success=%v",
		modifier, hashProof, target, success)

	return hashProof, target, success, nil
}

func writeAll(buf *bytes.Buffer, elements ...interface{}) error {
	for _, e := range elements {
		if err := serial.WriteElement(buf, e); err != nil {
			return err
		}
	}
	return nil
}
