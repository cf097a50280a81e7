// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validate

import (
	"context"
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/holiman/uint256"
	"github.com/stakekernel/posd/chainidx"
	"github.com/stakekernel/posd/kernel"
	"github.com/stakekernel/posd/posparams"
)

// Result is what a successful kernel check hands back to the caller, which
// stamps it onto the newly-connected block index node.
type Result struct {
	HashProof   *chainhash.Hash
	TargetProof *uint256.Int
}

// resolveKernelInputs runs the lookups shared by CheckProofOfStake and
// CheckKernel: locating the block containing the staked output and the
// transaction itself, plus (V1 only) its byte offset within that block.
func resolveKernelInputs(
	ctx context.Context,
	params *posparams.Params,
	prev chainidx.Node,
	coinPrev chainidx.Coin,
	prevout wire.OutPoint,
	blocks chainidx.BlockStore,
	txFinder chainidx.TxFinder,
	offsets chainidx.TxOffsetIndex,
) (blockFrom chainidx.Node, txPrev *chainidx.Tx, txPrevOffset uint32, rerr *RuleError) {
	blockFrom = prev.Ancestor(coinPrev.Height)
	if blockFrom == nil {
		return nil, nil, 0, ruleErr(CodeAncestorMissing, BanWorthy, "no ancestor at referenced output's height", nil)
	}

	if _, err := blocks.ReadBlock(ctx, blockFrom); err != nil {
		return nil, nil, 0, ruleErr(CodeBlockNotFound, BanWorthy, "could not read block containing referenced output", err)
	}

	tx, _, found := txFinder.Transaction(ctx, prevout.Hash)
	if !found {
		return nil, nil, 0, ruleErr(CodePrevoutNotInChain, SoftFail, "referenced transaction not yet found in chain or mempool", nil)
	}
	txPrev = tx

	if !params.IsV2(prev.Height() + 1) {
		offset, err := offsets.Offset(ctx, prevout.Hash)
		if err != nil {
			return nil, nil, 0, ruleErr(CodeOffsetUnavailable, BanWorthy, "could not resolve tx_prev_offset for V1 kernel check", err)
		}
		txPrevOffset = offset
	}

	return blockFrom, txPrev, txPrevOffset, nil
}

func classifyKernelError(err error) *RuleError {
	if errors.Is(err, kernel.ErrNTimeViolation) || errors.Is(err, kernel.ErrMinAgeViolation) {
		return ruleErr(CodeKernelViolation, BanWorthy, "coinstake kernel preflight violation", err)
	}
	return ruleErr(CodeKernelViolation, BanWorthy, "kernel hash check failed", err)
}

// CheckProofOfStake is the block-acceptance entrypoint. prev is the parent
// of the block carrying tx; tx is that block's coinstake transaction.
func CheckProofOfStake(
	ctx context.Context,
	params *posparams.Params,
	prev chainidx.Node,
	tx *chainidx.Tx,
	nBits uint32,
	utxo chainidx.UTXOView,
	blocks chainidx.BlockStore,
	txFinder chainidx.TxFinder,
	offsets chainidx.TxOffsetIndex,
	sigVerifier chainidx.SignatureVerifier,
	timeSource chainidx.TimeSource,
) (*Result, error) {
	if !chainidx.IsCoinStake(tx.Msg) {
		return nil, ruleErr(CodeNotCoinstake, Structural, "transaction is not shaped like a coinstake", nil)
	}

	prevout := tx.Msg.TxIn[0].PreviousOutPoint
	coinPrev, found := utxo.Get(prevout)
	if !found {
		return nil, ruleErr(CodePrevoutMissing, BanWorthy, "referenced output not found in UTXO view", nil)
	}

	blockFrom, txPrev, txPrevOffset, rerr := resolveKernelInputs(ctx, params, prev, coinPrev, prevout, blocks, txFinder, offsets)
	if rerr != nil {
		return nil, rerr
	}

	if err := sigVerifier.VerifySignature(ctx, coinPrev, tx.Msg, 0, txscript.ScriptFlags(0)); err != nil {
		return nil, ruleErr(CodeVerifySignature, BanWorthy, "coinstake kernel input signature invalid", err)
	}

	hashProof, target, ok, err := kernel.CheckStakeKernelHash(params, prev, nBits, blockFrom, txPrevOffset, txPrev, prevout, tx.Time, timeSource, false)
	if err != nil {
		return nil, classifyKernelError(err)
	}
	if !ok {
		return nil, ruleErr(CodeKernelMiss, SoftFail, "kernel hash did not satisfy target", nil)
	}

	log.Debugf("CheckProofOfStake: accepted coinstake %v at height %d", tx.Hash(), prev.Height()+1)
	return &Result{HashProof: hashProof, TargetProof: target}, nil
}

// CheckKernel is the mining-side twin of CheckProofOfStake: it probes
// whether a candidate (prevout, timeTx) would satisfy the kernel
// inequality, without requiring an already-signed coinstake. It adds the
// coinbase-maturity guard and the spent-check CheckProofOfStake leaves to
// its caller's earlier UTXO-view construction.
func CheckKernel(
	ctx context.Context,
	params *posparams.Params,
	prev chainidx.Node,
	nBits uint32,
	prevout wire.OutPoint,
	timeTx uint32,
	utxo chainidx.UTXOView,
	blocks chainidx.BlockStore,
	txFinder chainidx.TxFinder,
	offsets chainidx.TxOffsetIndex,
	timeSource chainidx.TimeSource,
) (*Result, error) {
	coinPrev, found := utxo.Get(prevout)
	if !found {
		return nil, ruleErr(CodePrevoutMissing, BanWorthy, "referenced output not found in UTXO view", nil)
	}
	if coinPrev.Spent {
		return nil, ruleErr(CodeCoinSpent, BanWorthy, "referenced output is already spent", nil)
	}

	newHeight := prev.Height() + 1
	if newHeight-coinPrev.Height < params.CoinbaseMaturity {
		return nil, ruleErr(CodeCoinImmature, BanWorthy, "referenced output has not reached coinbase maturity", nil)
	}

	blockFrom, txPrev, txPrevOffset, rerr := resolveKernelInputs(ctx, params, prev, coinPrev, prevout, blocks, txFinder, offsets)
	if rerr != nil {
		return nil, rerr
	}

	hashProof, target, ok, err := kernel.CheckStakeKernelHash(params, prev, nBits, blockFrom, txPrevOffset, txPrev, prevout, timeTx, timeSource, false)
	if err != nil {
		return nil, classifyKernelError(err)
	}
	if !ok {
		return nil, ruleErr(CodeKernelMiss, SoftFail, "kernel hash did not satisfy target", nil)
	}

	return &Result{HashProof: hashProof, TargetProof: target}, nil
}

// CheckCoinStakeTimestamp enforces the timestamp-mask rule: above
// protocol_v2_height the coinstake's own timestamp must equal the block's
// and land on the coarse grid stake_timestamp_mask describes; below it,
// only the equality is required.
func CheckCoinStakeTimestamp(params *posparams.Params, height int32, timeBlock, timeTx uint32) bool {
	if timeBlock != timeTx {
		return false
	}
	if params.IsV2(height) {
		return timeTx&params.StakeTimestampMask == 0
	}
	return true
}
