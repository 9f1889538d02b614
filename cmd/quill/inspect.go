package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/document"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE.docx",
	Short: "Show the heading and paragraph layout of an exported essay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		doc, err := document.Parse(data)
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Title:      %s\n", doc.Title)
		fmt.Fprintf(out, "Paragraphs: %d\n", len(doc.Paragraphs))
		fmt.Fprintf(out, "Words:      %d\n", doc.WordCount())

		if verbose, _ := cmd.Flags().GetBool("paragraphs"); verbose {
			for i, p := range doc.Paragraphs {
				fmt.Fprintf(out, "\n[%d] %s\n", i+1, p)
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("paragraphs", false, "print every paragraph")
	rootCmd.AddCommand(inspectCmd)
}
