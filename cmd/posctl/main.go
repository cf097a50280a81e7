// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command posctl exercises the kernel, modifier and timestamp checks
// against a network profile and a scenario file, for operators and test
// harnesses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagRoot struct {
	Profile  string
	Scenario string
}

var rootCmd = &cobra.Command{
	Use:   "posctl",
	Short: "Run proof-of-stake kernel checks against a scenario file",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagRoot.Profile, "profile", "p", "", "path to a network profile YAML file (required)")
	rootCmd.PersistentFlags().StringVarP(&flagRoot.Scenario, "scenario", "s", "", "path to a scenario YAML file (required)")
	rootCmd.MarkPersistentFlagRequired("profile")
	rootCmd.MarkPersistentFlagRequired("scenario")

	rootCmd.AddCommand(cmdKernel)
	rootCmd.AddCommand(cmdModifier)
	rootCmd.AddCommand(cmdTimestamp)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
