// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/citation"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// stylesSample is rendered by `styles --sample` to show each layout.
var stylesSample = types.Reference{
	Authors:   []string{"John Smith", "Jane Doe"},
	Year:      2023,
	Title:     "A Study of Reference Styles",
	Container: "Journal of Citation Studies",
	Volume:    5,
	Issue:     2,
	Pages:     "123-145",
	DOI:       "10.1234/jcs.2023.01",
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List supported citation styles and output formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, _ := cmd.Flags().GetBool("sample")
		w := cmd.OutOrStdout()

		for _, s := range types.Styles() {
			if sample {
				fmt.Fprintf(w, "%-10s %s\n", s, citation.Format(stylesSample, s, types.FormatText))
				continue
			}
			fmt.Fprintln(w, s)
		}
		if !sample {
			fmt.Fprintf(w, "\nFormats: %v\n", types.OutputFormats())
		}
		return nil
	},
}

func init() {
	stylesCmd.Flags().Bool("sample", false, "render a sample reference in each style")
	rootCmd.AddCommand(stylesCmd)
}
