// Command efcore inspects and validates relational model manifests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "efcore",
		Short: "Relational metadata model tooling",
		Long: `efcore loads a declarative model manifest, resolves the relational
mapping of every entity type and property, and reports the resulting
store objects, column names, types and nullability.`,
	}

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
