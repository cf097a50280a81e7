// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stakekernel/posd/chainidx"
	"gopkg.in/yaml.v3"
)

// chainNodeSpec describes one synthetic block index node in a scenario's
// chain, in the order they link (index 0 is genesis).
type chainNodeSpec struct {
	Hash              string `yaml:"hash"`
	Time              int64  `yaml:"time"`
	StakeModifier     uint64 `yaml:"stake_modifier"`
	GeneratedModifier bool   `yaml:"generated_modifier"`
	EntropyBit        uint32 `yaml:"entropy_bit"`
	ProofOfStake      bool   `yaml:"proof_of_stake"`
}

type kernelSpec struct {
	PrevIndex      int    `yaml:"prev_index"`
	BlockFromIndex int    `yaml:"block_from_index"`
	NBits          uint32 `yaml:"n_bits"`
	TxPrevTime     uint32 `yaml:"tx_prev_time"`
	TxPrevValue    int64  `yaml:"tx_prev_value"`
	TxPrevOffset   uint32 `yaml:"tx_prev_offset"`
	PrevoutHash    string `yaml:"prevout_hash"`
	PrevoutIndex   uint32 `yaml:"prevout_index"`
	TimeTx         uint32 `yaml:"time_tx"`
	AdjustedNow    int64  `yaml:"adjusted_now"`
}

type timestampSpec struct {
	Height    int32  `yaml:"height"`
	TimeBlock uint32 `yaml:"time_block"`
	TimeTx    uint32 `yaml:"time_tx"`
}

type scenario struct {
	Chain     []chainNodeSpec `yaml:"chain"`
	Kernel    *kernelSpec     `yaml:"kernel"`
	Timestamp *timestampSpec  `yaml:"timestamp"`
}

func loadScenario(path string) (*scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var s scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// buildChain materializes a scenario's chain section into linked
// BlockNodes, stamping the stake-modifier/entropy fields each spec entry
// carries.
func buildChain(specs []chainNodeSpec) ([]*chainidx.BlockNode, error) {
	nodes := make([]*chainidx.BlockNode, len(specs))
	var parent *chainidx.BlockNode
	for i, spec := range specs {
		hash, err := parseHash(spec.Hash, i)
		if err != nil {
			return nil, err
		}
		node := chainidx.NewBlockNode(hash, spec.Time, parent)
		node.SetStakeModifier(spec.StakeModifier, spec.GeneratedModifier)
		node.SetStakeEntropyBit(spec.EntropyBit)
		node.SetProofOfStake(spec.ProofOfStake)
		nodes[i] = node
		parent = node
	}
	return nodes, nil
}

func parseHash(s string, fallbackByte int) (chainhash.Hash, error) {
	if s == "" {
		var h chainhash.Hash
		h[0] = byte(fallbackByte + 1)
		return h, nil
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("parsing hash %q: %w", s, err)
	}
	return *h, nil
}

func parseOutPoint(hashStr string, index uint32, fallbackByte int) (wire.OutPoint, error) {
	hash, err := parseHash(hashStr, fallbackByte)
	if err != nil {
		return wire.OutPoint{}, err
	}
	return wire.OutPoint{Hash: hash, Index: index}, nil
}
