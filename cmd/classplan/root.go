// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the ClassPlan CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classplan",
		Short: "ClassPlan - schedule planning backend",
		Long: `ClassPlan is a backend for academic schedule planning: accounts and
role-based access, a catalog of subjects, rooms, and groups, teacher
availability, and term planning with assignments, slots, and conflicts.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}
