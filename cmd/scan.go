package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marketbench/quizgen-cli/internal/corpus"
	"github.com/marketbench/quizgen-cli/internal/model"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the report corpus without generating questions",
	Long:  "Walks the input directory and reports the companies, codes, and PDF counts that a generate run would process. Needs no API key.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if dir, _ := cmd.Flags().GetString("input"); dir != "" {
			cfg.Input.Dir = dir
		}

		companies, stats, err := corpus.Collect(cfg.Input.Dir)
		if err != nil {
			return err
		}
		if len(companies) == 0 {
			fmt.Fprintln(os.Stderr, "No PDF files found.")
			return nil
		}

		formatScan(os.Stdout, companies, stats)
		return nil
	},
}

func init() {
	scanCmd.Flags().String("input", "", "directory of country subdirectories containing PDF reports")
	rootCmd.AddCommand(scanCmd)
}

// formatScan writes a tabular corpus listing to w.
func formatScan(out io.Writer, companies map[string][]model.PdfReference, stats corpus.Stats) {
	names := make([]string, 0, len(companies))
	for name := range companies {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPANY\tCODE\tCOUNTRY\tPDFS")
	_, _ = fmt.Fprintln(w, "-------\t----\t-------\t----")

	for _, name := range names {
		refs := companies[name]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			name,
			model.GenerateCode(name),
			refs[0].Country,
			len(refs),
		)
	}
	_ = w.Flush()

	fmt.Fprintf(out, "\n%d companies, %d PDFs across %d countries\n",
		stats.Companies, stats.PDFs, stats.Countries)
}
