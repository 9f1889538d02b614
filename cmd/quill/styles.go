package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/essay"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the writing styles accepted by --style",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range essay.Styles {
			fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", s, s.Label())
		}
	},
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}
