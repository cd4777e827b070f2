// Package main provides the recipeql command line tool: one-shot
// natural-language questions against the recipe dataset.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "recipeql",
		Short:         "Ask natural-language questions about the recipe dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAskCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
