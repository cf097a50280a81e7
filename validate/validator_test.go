// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stakekernel/posd/chainidx"
	"github.com/stakekernel/posd/posparams"
	"github.com/stretchr/testify/require"
)

type stubBlock struct{}

func (stubBlock) Hash() *chainhash.Hash    { return &chainhash.Hash{} }
func (stubBlock) Timestamp() int64         { return 0 }
func (stubBlock) Transactions() []*chainidx.Tx { return nil }
func (stubBlock) TxOffset(int) uint32      { return 0 }
func (stubBlock) IsProofOfStake() bool     { return true }

type stubUTXO map[wire.OutPoint]chainidx.Coin

func (s stubUTXO) Get(op wire.OutPoint) (chainidx.Coin, bool) {
	c, ok := s[op]
	return c, ok
}

type stubBlockStore struct {
	readErr error
}

func (s stubBlockStore) LookupNode(*chainhash.Hash) chainidx.Node { return nil }
func (s stubBlockStore) ReadBlock(context.Context, chainidx.Node) (chainidx.Block, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return stubBlock{}, nil
}

type stubTxFinder struct {
	tx    *chainidx.Tx
	found bool
}

func (s stubTxFinder) Transaction(context.Context, chainhash.Hash) (*chainidx.Tx, *chainhash.Hash, bool) {
	return s.tx, nil, s.found
}

type stubOffsets struct {
	offset uint32
	err    error
}

func (s stubOffsets) Offset(context.Context, chainhash.Hash) (uint32, error) {
	return s.offset, s.err
}

type stubSigVerifier struct {
	err    error
	called bool
}

func (s *stubSigVerifier) VerifySignature(context.Context, chainidx.Coin, *wire.MsgTx, int, txscript.ScriptFlags) error {
	s.called = true
	return s.err
}

type stubTimeSource time.Time

func (s stubTimeSource) AdjustedTime() time.Time { return time.Time(s) }

func coinstakeTx(prevout wire.OutPoint, txTime uint32) *chainidx.Tx {
	msg := wire.NewMsgTx(wire.TxVersion)
	msg.AddTxIn(&wire.TxIn{PreviousOutPoint: prevout})
	msg.AddTxOut(wire.NewTxOut(0, nil))
	msg.AddTxOut(wire.NewTxOut(1000, nil))
	return &chainidx.Tx{Msg: msg, Time: txTime}
}

func v2Params() *posparams.Params {
	return posparams.New(posparams.Config{
		Name:               "test",
		StakeMinAge:        100,
		StakeMaxAge:        1000,
		ModifierInterval:   600,
		TargetSpacing:      60,
		ProtocolV2Height:   0,
		StakeTimestampMask: 0x0000000f,
		CoinbaseMaturity:   5,
		Coin:               1000000,
	})
}

func TestCheckCoinStakeTimestampMaskRule(t *testing.T) {
	params := posparams.New(posparams.Config{ProtocolV2Height: 1000, StakeTimestampMask: 0x0f})

	require.True(t, CheckCoinStakeTimestamp(params, 1001, 16, 16))
	require.False(t, CheckCoinStakeTimestamp(params, 1001, 17, 17))
	require.True(t, CheckCoinStakeTimestamp(params, 999, 17, 17))
	require.False(t, CheckCoinStakeTimestamp(params, 999, 16, 17))
}

func TestCheckProofOfStakeRejectsNonCoinstake(t *testing.T) {
	msg := wire.NewMsgTx(wire.TxVersion)
	msg.AddTxIn(&wire.TxIn{})
	msg.AddTxOut(wire.NewTxOut(500, nil))
	tx := &chainidx.Tx{Msg: msg, Time: 1}

	_, err := CheckProofOfStake(context.Background(), v2Params(), nil, tx, 0, nil, nil, nil, nil, nil, nil)
	var rerr *RuleError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, CodeNotCoinstake, rerr.Code)
	require.Equal(t, Structural, rerr.Severity)
}

func TestCheckProofOfStakeMissingPrevout(t *testing.T) {
	params := v2Params()
	prevout := wire.OutPoint{Index: 0}
	tx := coinstakeTx(prevout, 5000)

	prev := chainidx.NewBlockNode(chainhash.Hash{}, 4000, nil)
	prev.SetStakeModifier(7, true)

	_, err := CheckProofOfStake(context.Background(), params, prev, tx, 0, stubUTXO{}, stubBlockStore{}, stubTxFinder{}, stubOffsets{}, &stubSigVerifier{}, stubTimeSource(time.Now()))
	var rerr *RuleError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, CodePrevoutMissing, rerr.Code)
	require.Equal(t, BanWorthy, rerr.Severity)
}

func TestCheckProofOfStakeVerifiesSignatureBeforeKernel(t *testing.T) {
	params := v2Params()
	var h chainhash.Hash
	h[0] = 5
	prevout := wire.OutPoint{Hash: h, Index: 0}

	prev := chainidx.NewBlockNode(chainhash.Hash{1}, 4000, nil)
	prev.SetStakeModifier(7, true)

	utxo := stubUTXO{prevout: {Value: 1000, Height: 0, Spent: false}}
	txFinder := stubTxFinder{tx: coinstakeTx(wire.OutPoint{}, 100), found: true}
	sigVerifier := &stubSigVerifier{err: errors.New("bad sig")}

	tx := coinstakeTx(prevout, 5000)
	_, err := CheckProofOfStake(context.Background(), params, prev, tx, 0, utxo, stubBlockStore{}, txFinder, stubOffsets{}, sigVerifier, stubTimeSource(time.Now()))

	require.True(t, sigVerifier.called)
	var rerr *RuleError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, CodeVerifySignature, rerr.Code)
	require.Equal(t, BanWorthy, rerr.Severity)
}

func TestCheckKernelEnforcesCoinbaseMaturity(t *testing.T) {
	params := v2Params()
	prevout := wire.OutPoint{Index: 0}
	prev := chainidx.NewBlockNode(chainhash.Hash{1}, 4000, nil)

	utxo := stubUTXO{prevout: {Value: 1000, Height: prev.Height(), Spent: false}}
	_, err := CheckKernel(context.Background(), params, prev, 0, prevout, 5000, utxo, stubBlockStore{}, stubTxFinder{}, stubOffsets{}, stubTimeSource(time.Now()))

	var rerr *RuleError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, CodeCoinImmature, rerr.Code)
}

func TestCheckKernelEnforcesSpentCheck(t *testing.T) {
	params := v2Params()
	prevout := wire.OutPoint{Index: 0}
	prev := chainidx.NewBlockNode(chainhash.Hash{1}, 4000, nil)

	utxo := stubUTXO{prevout: {Value: 1000, Height: 0, Spent: true}}
	_, err := CheckKernel(context.Background(), params, prev, 0, prevout, 5000, utxo, stubBlockStore{}, stubTxFinder{}, stubOffsets{}, stubTimeSource(time.Now()))

	var rerr *RuleError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, CodeCoinSpent, rerr.Code)
}
