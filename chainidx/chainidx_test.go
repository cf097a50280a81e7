// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainidx

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

func TestEntropyBitIsLowBitOfHash(t *testing.T) {
	var hash chainhash.Hash
	hash[0] = 0x01 // lowest-index byte is the least significant byte of the integer
	require.Equal(t, uint32(1), EntropyBit(&hash))

	hash[0] = 0x02
	require.Equal(t, uint32(0), EntropyBit(&hash))
}

func TestLegacyEntropyBitDeterministic(t *testing.T) {
	sig := []byte{0x30, 0x44, 0x02, 0x20, 0xaa, 0xbb}
	a := LegacyEntropyBit(sig)
	b := LegacyEntropyBit(sig)
	require.Equal(t, a, b)
	require.True(t, a == 0 || a == 1)
}

func TestIsCoinStakeShape(t *testing.T) {
	coinstake := wire.NewMsgTx(wire.TxVersion)
	coinstake.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{0x01}, Index: 0}})
	coinstake.AddTxOut(wire.NewTxOut(0, nil))
	coinstake.AddTxOut(wire.NewTxOut(5000000, []byte{0x76, 0xa9}))
	require.True(t, IsCoinStake(coinstake))

	ordinary := wire.NewMsgTx(wire.TxVersion)
	ordinary.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{0x01}, Index: 0}})
	ordinary.AddTxOut(wire.NewTxOut(5000000, []byte{0x76, 0xa9}))
	require.False(t, IsCoinStake(ordinary))

	coinbase := wire.NewMsgTx(wire.TxVersion)
	coinbase.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0xffffffff}})
	coinbase.AddTxOut(wire.NewTxOut(0, nil))
	coinbase.AddTxOut(wire.NewTxOut(5000000, []byte{0x76, 0xa9}))
	require.False(t, IsCoinStake(coinbase))
}

func TestBlockNodeAncestorWalksParentLinks(t *testing.T) {
	genesis := NewBlockNode(chainhash.Hash{0x00}, 1000, nil)
	n1 := NewBlockNode(chainhash.Hash{0x01}, 1060, genesis)
	n2 := NewBlockNode(chainhash.Hash{0x02}, 1120, n1)

	require.Equal(t, genesis, n2.Ancestor(0))
	require.Equal(t, n1, n2.Ancestor(1))
	require.Equal(t, n2, n2.Ancestor(2))
	require.Nil(t, n2.Ancestor(3))
	require.Nil(t, n2.Ancestor(-1))

	require.Equal(t, Node(n1), genesis.Next())
	require.Nil(t, n2.Next())
}
