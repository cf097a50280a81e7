// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sigverify is the txscript-backed reference implementation of
// chainidx.SignatureVerifier, built directly on txscript.NewEngine rather
// than a signature/hash-cache-backed validator, since neither cache has a
// home without a full block connection pipeline behind this package.
package sigverify

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stakekernel/posd/chainidx"
)

// Verifier implements chainidx.SignatureVerifier against real txscript
// execution.
type Verifier struct{}

// VerifySignature runs the kernel input's scriptSig/witness against coin's
// PkScript.
func (Verifier) VerifySignature(_ context.Context, coin chainidx.Coin, spendingTx *wire.MsgTx, inputIndex int, flags txscript.ScriptFlags) error {
	if inputIndex < 0 || inputIndex >= len(spendingTx.TxIn) {
		return fmt.Errorf("sigverify: input index %d out of range", inputIndex)
	}

	prevOutFetcher := txscript.NewCannedPrevOutputFetcher(coin.PkScript, coin.Value)
	sigHashes := txscript.NewTxSigHashes(spendingTx, prevOutFetcher)

	engine, err := txscript.NewEngine(coin.PkScript, spendingTx, inputIndex, flags, nil, sigHashes, coin.Value, prevOutFetcher)
	if err != nil {
		return fmt.Errorf("sigverify: building script engine: %w", err)
	}
	if err := engine.Execute(); err != nil {
		return fmt.Errorf("sigverify: script execution failed: %w", err)
	}
	return nil
}

// VerifyBlockSignature is a direct-signature check that skips full script
// execution: it checks a raw ECDSA signature against a single
// pay-to-pubkey output rather than running the scripting engine. Neither
// CheckProofOfStake nor CheckKernel calls it.
func VerifyBlockSignature(pkScript []byte, blockHash chainhash.Hash, signature []byte, params *chaincfg.Params) (bool, error) {
	scriptClass, addresses, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil {
		return false, fmt.Errorf("sigverify: extracting addresses: %w", err)
	}
	if scriptClass != txscript.PubKeyTy || len(addresses) == 0 {
		return false, nil
	}

	pubKeyAddr, ok := addresses[0].(*btcutil.AddressPubKey)
	if !ok {
		return false, nil
	}

	sig, err := ecdsa.ParseSignature(signature)
	if err != nil {
		return false, nil
	}
	return sig.Verify(blockHash[:], pubKeyAddr.PubKey()), nil
}
