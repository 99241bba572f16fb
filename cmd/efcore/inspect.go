package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kryptine/efcore/load"
	"github.com/kryptine/efcore/relational"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest.yaml>",
	Short: "Print the resolved relational mapping of a model manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := load.ReadFile(args[0])
		if err != nil {
			return err
		}
		rm, err := manifest.Build()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, et := range rm.Base().EntityTypes() {
			so, ok := rm.StoreObjectFor(et, relational.KindTable)
			if !ok {
				fmt.Fprintf(out, "%s: unmapped\n", et.Name())
				continue
			}
			fmt.Fprintf(out, "%s -> %s\n", et.Name(), so)
			for _, p := range et.DeclaredProperties() {
				name, ok := rm.ColumnNameIn(p, so)
				if !ok {
					continue
				}
				null := "not null"
				if rm.NullableIn(p, so) {
					null = "null"
				}
				fmt.Fprintf(out, "  %s %s %s\n", name, rm.ColumnTypeIn(p, so), null)
			}
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <manifest.yaml>",
	Short: "Validate the relational mapping of a model manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := load.ReadFile(args[0])
		if err != nil {
			return err
		}
		rm, err := manifest.Build()
		if err != nil {
			return err
		}
		if err := rm.Validate(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "model is valid")
		return nil
	},
}
