// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/citation"
	"github.com/pdiddy/citation-engine/internal/records"
	"github.com/pdiddy/citation-engine/pkg/types"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Render reference records as citations",
	Long: `Format reads one reference record or a list of records and prints each
as a citation, one per line. Input is native JSON or YAML, or a CSL item
list; the format is guessed from the file extension unless --input-format
is given. With no --input, records are read from stdin.`,
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().String("style", "APA", "citation style (APA, MLA, Chicago, Harvard, Vancouver, IEEE)")
	formatCmd.Flags().String("format", "text", "output format (html, text, markdown, json)")
	formatCmd.Flags().String("input", "-", "input file, or - for stdin")
	formatCmd.Flags().String("input-format", "", "input encoding (json, yaml, csl)")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	styleName, _ := cmd.Flags().GetString("style")
	formatName, _ := cmd.Flags().GetString("format")
	input, _ := cmd.Flags().GetString("input")
	inputFormatName, _ := cmd.Flags().GetString("input-format")

	style, err := types.ParseStyle(styleName)
	if err != nil {
		return err
	}
	format, err := types.ParseOutputFormat(formatName)
	if err != nil {
		return err
	}

	inputFormat := records.FormatForPath(input)
	if inputFormatName != "" {
		if inputFormat, err = records.ParseFormat(inputFormatName); err != nil {
			return err
		}
	}

	var r io.Reader = cmd.InOrStdin()
	if input != "-" && input != "" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	refs, err := records.Decode(r, inputFormat)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", input, err)
	}
	if len(refs) == 0 {
		return fmt.Errorf("no reference records in %s", input)
	}

	return writeCitations(cmd.OutOrStdout(), refs, style, format)
}

func writeCitations(w io.Writer, refs []types.Reference, style types.Style, format types.OutputFormat) error {
	for _, ref := range refs {
		if _, err := fmt.Fprintln(w, citation.Format(ref, style, format)); err != nil {
			return err
		}
	}
	return nil
}
