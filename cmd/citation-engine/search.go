// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-engine/internal/citation"
	"github.com/pdiddy/citation-engine/internal/pubmed"
	"github.com/pdiddy/citation-engine/internal/records"
	"github.com/pdiddy/citation-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search PubMed for candidate references",
	Long: `Search queries PubMed for articles matching a free-text query. Results
print as a table by default, as citations when --style is given, or as
JSON or CSL-YAML for further processing.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text PubMed query")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results to return (default 20)")
	searchCmd.Flags().String("style", "", "print results as citations in this style")
	searchCmd.Flags().String("format", "text", "citation output format when --style is given")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("csl", false, "output results as CSL-YAML")
	searchCmd.MarkFlagsMutuallyExclusive("json", "csl")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = args[0]
	}
	if query == "" {
		return fmt.Errorf("provide a query with --query")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	styleName, _ := cmd.Flags().GetString("style")
	formatName, _ := cmd.Flags().GetString("format")
	asJSON, _ := cmd.Flags().GetBool("json")
	asCSL, _ := cmd.Flags().GetBool("csl")

	var style types.Style
	var format types.OutputFormat
	if styleName != "" {
		var err error
		if style, err = types.ParseStyle(styleName); err != nil {
			return err
		}
		if format, err = types.ParseOutputFormat(formatName); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := pubmed.NewClientFromConfig(cfg.Search)
	results, err := client.Search(ctx, query, maxResults)
	if err != nil {
		return err
	}

	if styleName != "" {
		for i := range results {
			results[i].FormattedReference = citation.Format(results[i].Reference(), style, format)
		}
	}

	w := cmd.OutOrStdout()
	switch {
	case asJSON:
		return pubmed.FormatJSON(results, w)
	case asCSL:
		refs := make([]types.Reference, len(results))
		for i, r := range results {
			refs[i] = r.Reference()
		}
		return records.EncodeCSL(refs, w)
	case styleName != "":
		for _, r := range results {
			fmt.Fprintln(w, r.FormattedReference)
		}
		return nil
	}
	pubmed.FormatTable(results, w)
	return nil
}
