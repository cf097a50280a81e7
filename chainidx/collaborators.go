// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainidx

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Block is the external block representation the validator reads from
// storage. Transactions are Tx values (wire.MsgTx plus the nTime field
// upstream wire doesn't carry).
type Block interface {
	Hash() *chainhash.Hash
	Timestamp() int64
	Transactions() []*Tx
	// TxOffset returns the byte offset of the transaction at index within
	// the serialized block.
	TxOffset(index int) uint32
	IsProofOfStake() bool
}

// Coin is the UTXO view's entry for a single output: value, the height at
// which it was created, whether it has since been spent, and the script it
// pays to (needed by the signature-verification collaborator).
type Coin struct {
	Value    int64
	Height   int32
	Spent    bool
	PkScript []byte
}

// UTXOView looks up outputs by outpoint.
type UTXOView interface {
	Get(outpoint wire.OutPoint) (Coin, bool)
}

// BlockStore resolves block index nodes to on-disk blocks.
type BlockStore interface {
	LookupNode(hash *chainhash.Hash) Node
	ReadBlock(ctx context.Context, node Node) (Block, error)
}

// TxFinder resolves a txid to its transaction and containing block hash,
// searching both the chain and any mempool/disk index the collaborator
// maintains.
type TxFinder interface {
	Transaction(ctx context.Context, txid chainhash.Hash) (tx *Tx, containingBlock *chainhash.Hash, found bool)
}

// SignatureVerifier verifies a coinstake's kernel-input signature against
// the coin it spends.
type SignatureVerifier interface {
	VerifySignature(ctx context.Context, coin Coin, spendingTx *wire.MsgTx, inputIndex int, flags txscript.ScriptFlags) error
}

// TimeSource supplies the network-adjusted clock GetKernelStakeModifier
// needs to distinguish "still syncing" from "genuinely too old".
type TimeSource interface {
	AdjustedTime() time.Time
}

// TxOffsetIndex resolves a transaction to its byte offset within its
// containing block, needed only on the V1 kernel path.
type TxOffsetIndex interface {
	Offset(ctx context.Context, txid chainhash.Hash) (uint32, error)
}
