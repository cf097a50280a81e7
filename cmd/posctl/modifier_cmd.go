// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stakekernel/posd/chainidx"
	"github.com/stakekernel/posd/modifier"
)

var cmdModifier = &cobra.Command{
	Use:   "modifier",
	Short: "Compute the next stake modifier for the scenario's chain tip",
	RunE:  runModifier,
}

func runModifier(*cobra.Command, []string) error {
	params, err := loadProfile(flagRoot.Profile)
	if err != nil {
		return err
	}
	scn, err := loadScenario(flagRoot.Scenario)
	if err != nil {
		return err
	}

	nodes, err := buildChain(scn.Chain)
	if err != nil {
		return err
	}

	// An empty chain section means "genesis": pass a literal nil interface,
	// not a nil *BlockNode, so ComputeNextStakeModifier's prev == nil check
	// actually triggers.
	var prev chainidx.Node
	if len(nodes) > 0 {
		prev = nodes[len(nodes)-1]
	}

	newModifier, generated, err := modifier.ComputeNextStakeModifier(params, prev)
	if err != nil {
		return err
	}

	fmt.Printf("stake_modifier: %d\n", newModifier)
	fmt.Printf("generated:      %v\n", generated)
	return nil
}
