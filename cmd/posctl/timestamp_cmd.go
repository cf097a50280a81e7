// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stakekernel/posd/validate"
)

var cmdTimestamp = &cobra.Command{
	Use:   "timestamp",
	Short: "Check a coinstake timestamp against the mask rule",
	RunE:  runTimestamp,
}

func runTimestamp(*cobra.Command, []string) error {
	params, err := loadProfile(flagRoot.Profile)
	if err != nil {
		return err
	}
	scn, err := loadScenario(flagRoot.Scenario)
	if err != nil {
		return err
	}
	if scn.Timestamp == nil {
		return fmt.Errorf("scenario has no timestamp section")
	}

	ts := scn.Timestamp
	ok := validate.CheckCoinStakeTimestamp(params, ts.Height, ts.TimeBlock, ts.TimeTx)
	fmt.Printf("valid: %v\n", ok)
	return nil
}
