// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainidx

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Tx pairs a transaction with a Peercoin-family nTime field: upstream
// wire.MsgTx carries no such field, so it travels alongside the
// unmodified upstream type instead of monkey-patching it.
type Tx struct {
	Msg  *wire.MsgTx
	Time uint32
}

// Hash returns the transaction's double-SHA-256 id.
func (t *Tx) Hash() chainhash.Hash {
	return t.Msg.TxHash()
}

// IsCoinStake reports whether tx has the coinstake shape: a non-null first
// input (ruling out coinbase) and an empty first output (zero value, empty
// script) with at least one more output.
func IsCoinStake(tx *wire.MsgTx) bool {
	if len(tx.TxIn) == 0 || len(tx.TxOut) < 2 {
		return false
	}
	if isNullOutpoint(tx.TxIn[0].PreviousOutPoint) {
		return false
	}
	out0 := tx.TxOut[0]
	return out0.Value == 0 && len(out0.PkScript) == 0
}

func isNullOutpoint(op wire.OutPoint) bool {
	zero := chainhash.Hash{}
	return op.Hash == zero && op.Index == 0xffffffff
}
