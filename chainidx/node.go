// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainidx replaces a global block-index map and node type with an
// explicit Node interface plus a concrete, test-friendly implementation,
// passed to every entrypoint instead of read off process-wide mutable
// state.
package chainidx

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Node is the block index node the kernel reads. The concrete storage and
// lifetime of nodes belongs to the surrounding chain subsystem, which is
// out of scope here.
type Node interface {
	Height() int32
	BlockTime() int64
	Hash() *chainhash.Hash
	Parent() Node
	Next() Node
	Ancestor(height int32) Node
	HashProof() *chainhash.Hash
	StakeModifier() uint64
	GeneratedStakeModifier() bool
	StakeEntropyBit() uint32
	IsProofOfStake() bool
}

// BlockNode is a minimal, mutable Node implementation suitable both for
// wiring a real chain subsystem's own index behind the interface, and for
// constructing synthetic chains in tests.
type BlockNode struct {
	height                  int32
	blockTime               int64
	hash                    chainhash.Hash
	parent                  *BlockNode
	next                    *BlockNode
	hashProof               chainhash.Hash
	stakeModifier           uint64
	generatedStakeModifier  bool
	stakeEntropyBit         uint32
	isProofOfStake          bool
}

// NewBlockNode constructs a node linked to parent (nil for genesis).
func NewBlockNode(hash chainhash.Hash, blockTime int64, parent *BlockNode) *BlockNode {
	n := &BlockNode{
		hash:      hash,
		blockTime: blockTime,
		parent:    parent,
	}
	if parent != nil {
		n.height = parent.height + 1
		parent.next = n
	}
	return n
}

func (n *BlockNode) Height() int32     { return n.height }
func (n *BlockNode) BlockTime() int64  { return n.blockTime }
func (n *BlockNode) Hash() *chainhash.Hash { return &n.hash }

func (n *BlockNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *BlockNode) Next() Node {
	if n.next == nil {
		return nil
	}
	return n.next
}

// Ancestor walks parent links back to the requested height. It returns nil
// if height is out of range, matching a missing-ancestor lookup upstream.
func (n *BlockNode) Ancestor(height int32) Node {
	if height < 0 || height > n.height {
		return nil
	}
	cur := n
	for cur != nil && cur.height > height {
		cur = cur.parent
	}
	if cur == nil {
		return nil
	}
	return cur
}

func (n *BlockNode) HashProof() *chainhash.Hash  { return &n.hashProof }
func (n *BlockNode) StakeModifier() uint64       { return n.stakeModifier }
func (n *BlockNode) GeneratedStakeModifier() bool { return n.generatedStakeModifier }
func (n *BlockNode) StakeEntropyBit() uint32     { return n.stakeEntropyBit }
func (n *BlockNode) IsProofOfStake() bool        { return n.isProofOfStake }

// SetStakeModifier stamps the modifier computed by the modifier engine for
// this node.
func (n *BlockNode) SetStakeModifier(modifier uint64, generated bool) {
	n.stakeModifier = modifier
	n.generatedStakeModifier = generated
}

// SetHashProof records the kernel hash (PoS) or block hash (PoW) used as
// this node's proof.
func (n *BlockNode) SetHashProof(hash chainhash.Hash) {
	n.hashProof = hash
}

// SetStakeEntropyBit stamps the single deterministic entropy bit; callers
// normally derive it via EntropyBit before calling this.
func (n *BlockNode) SetStakeEntropyBit(bit uint32) {
	n.stakeEntropyBit = bit & 1
}

// SetProofOfStake marks whether this node is a PoS block.
func (n *BlockNode) SetProofOfStake(pos bool) {
	n.isProofOfStake = pos
}
