// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/spf13/cobra"
	"github.com/stakekernel/posd/chainidx"
	"github.com/stakekernel/posd/kernel"
)

type cliTimeSource time.Time

func (c cliTimeSource) AdjustedTime() time.Time { return time.Time(c) }

var cmdKernel = &cobra.Command{
	Use:   "kernel",
	Short: "Run the proof-of-stake kernel hash check for a scenario's kernel section",
	RunE:  runKernel,
}

func runKernel(*cobra.Command, []string) error {
	params, err := loadProfile(flagRoot.Profile)
	if err != nil {
		return err
	}
	scn, err := loadScenario(flagRoot.Scenario)
	if err != nil {
		return err
	}
	if scn.Kernel == nil {
		return fmt.Errorf("scenario has no kernel section")
	}
	ks := scn.Kernel

	nodes, err := buildChain(scn.Chain)
	if err != nil {
		return err
	}
	if ks.PrevIndex < 0 || ks.PrevIndex >= len(nodes) {
		return fmt.Errorf("prev_index %d out of range", ks.PrevIndex)
	}
	if ks.BlockFromIndex < 0 || ks.BlockFromIndex >= len(nodes) {
		return fmt.Errorf("block_from_index %d out of range", ks.BlockFromIndex)
	}
	prev := nodes[ks.PrevIndex]
	blockFrom := nodes[ks.BlockFromIndex]

	prevout, err := parseOutPoint(ks.PrevoutHash, ks.PrevoutIndex, ks.BlockFromIndex)
	if err != nil {
		return err
	}

	txPrevMsg := wire.NewMsgTx(wire.TxVersion)
	txPrevMsg.AddTxOut(wire.NewTxOut(ks.TxPrevValue, nil))
	for uint32(len(txPrevMsg.TxOut)) <= prevout.Index {
		txPrevMsg.AddTxOut(wire.NewTxOut(ks.TxPrevValue, nil))
	}
	txPrev := &chainidx.Tx{Msg: txPrevMsg, Time: ks.TxPrevTime}

	ts := cliTimeSource(time.Unix(ks.AdjustedNow, 0))

	hashProof, target, ok, err := kernel.CheckStakeKernelHash(
		params, prev, ks.NBits, blockFrom, ks.TxPrevOffset, txPrev, prevout, ks.TimeTx, ts, false,
	)
	if err != nil {
		fmt.Printf("kernel check error: %v\n", err)
		return nil
	}

	fmt.Printf("new_height:   %d\n", prev.Height()+1)
	fmt.Printf("value_in:     %s\n", btcutil.Amount(ks.TxPrevValue))
	fmt.Printf("hash_proof:   %v\n", hashProof)
	fmt.Printf("target_proof: %v\n", target)
	fmt.Printf("satisfied:    %v\n", ok)
	return nil
}
