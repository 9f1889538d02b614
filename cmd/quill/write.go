package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/essay"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/writer"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Generate one essay and save it as .docx",
	Long: `Write sends a single generation request for the given topic, style and
length, then saves the essay as <topic>_essay.docx in the output directory
and prints the saved path.`,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().String("topic", "", "essay subject title")
	writeCmd.Flags().String("style", "", "writing style (see quill styles)")
	writeCmd.Flags().Int("words", 0, "target word count, 500-3000 in steps of 100 (default from config)")
	writeCmd.Flags().String("out", "", "output directory (default from config)")
	writeCmd.Flags().Bool("print", false, "also print the essay text to stdout")

	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}

	topic, _ := cmd.Flags().GetString("topic")
	styleFlag, _ := cmd.Flags().GetString("style")
	words, _ := cmd.Flags().GetInt("words")
	outDir, _ := cmd.Flags().GetString("out")
	printText, _ := cmd.Flags().GetBool("print")

	if words == 0 {
		words = cfg.DefaultWords
	}

	style := essay.Style(styleFlag)
	req := essay.Request{Topic: topic, Style: style, WordCount: essay.ClampWordCount(words)}
	if err := req.Validate(); err != nil {
		return userError(err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}
	exporter := newExporter(cfg, outDir)

	fmt.Fprintf(os.Stderr, "Generating %d-word %s essay with %s...\n", req.WordCount, style.Label(), provider.Name())

	text, err := writer.NewWriter(provider, cfg.Model).Write(cmd.Context(), req)
	if err != nil {
		return userError(err)
	}

	blob, err := exporter.Export(cmd.Context(), req.Topic, text)
	if err != nil {
		return userError(err)
	}

	out := cmd.OutOrStdout()
	if printText {
		fmt.Fprintln(out, text)
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, blob.Path)
	fmt.Fprintf(os.Stderr, "%d paragraphs, %d words, %s\n",
		blob.Metadata.ParagraphCount, blob.Metadata.WordCount, blob.Metadata.FileSizeHuman())
	return nil
}
