package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marketbench/quizgen-cli/internal/ocr"
	"github.com/marketbench/quizgen-cli/internal/pipeline"
	"github.com/marketbench/quizgen-cli/internal/store"
	anthropicpkg "github.com/marketbench/quizgen-cli/pkg/anthropic"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the question dataset from a report corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Flag overrides on top of file/env config.
		if dir, _ := cmd.Flags().GetString("input"); dir != "" {
			cfg.Input.Dir = dir
		}
		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			cfg.Output.Dir = dir
		}
		if key, _ := cmd.Flags().GetString("api-key"); key != "" {
			cfg.Anthropic.Key = key
		}
		if n, _ := cmd.Flags().GetInt("questions-per-company"); n > 0 {
			cfg.Generation.QuestionsPerCompany = n
		}
		if noStore, _ := cmd.Flags().GetBool("no-store"); noStore {
			cfg.Store.Path = ""
		}

		if cfg.Anthropic.Key == "" {
			zap.L().Error("no Anthropic API key configured, set QUIZGEN_ANTHROPIC_KEY or pass --api-key")
			return eris.New("missing Anthropic API key")
		}

		extractor, err := ocr.NewExtractor(cfg.OCR)
		if err != nil {
			return eris.Wrap(err, "init extractor")
		}

		client := anthropicpkg.NewClient(cfg.Anthropic.Key)

		// The run ledger is optional: an empty store path disables it.
		var ledger store.Store
		if cfg.Store.Path != "" {
			st, err := store.NewSQLite(cfg.Store.Path)
			if err != nil {
				return eris.Wrap(err, "open run ledger")
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate run ledger")
			}
			ledger = st
		}

		p := pipeline.New(cfg, extractor, client, ledger)

		result, err := p.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("generation complete",
			zap.Int("companies", len(result.Records)),
			zap.Int("questions", result.TotalQuestions),
			zap.String("combined", result.CombinedPath),
			zap.String("summary", result.SummaryPath),
		)

		// Print a compact summary JSON to stdout; the questions themselves
		// live in the dataset files.
		out := generateOutput{
			RunID:          result.RunID,
			TotalQuestions: result.TotalQuestions,
			CombinedPath:   result.CombinedPath,
			SummaryPath:    result.SummaryPath,
		}
		for _, rec := range result.Records {
			out.Companies = append(out.Companies, companySummary{
				Name:       rec.Name,
				Code:       rec.Code,
				Country:    rec.Country,
				PDFs:       len(rec.PDFs),
				Questions:  len(rec.Questions),
				Categories: rec.Categories(),
			})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

type generateOutput struct {
	RunID          string           `json:"run_id,omitempty"`
	Companies      []companySummary `json:"companies"`
	TotalQuestions int              `json:"total_questions"`
	CombinedPath   string           `json:"combined_path,omitempty"`
	SummaryPath    string           `json:"summary_path,omitempty"`
}

type companySummary struct {
	Name       string   `json:"name"`
	Code       string   `json:"code"`
	Country    string   `json:"country"`
	PDFs       int      `json:"pdfs"`
	Questions  int      `json:"questions"`
	Categories []string `json:"categories"`
}

func init() {
	generateCmd.Flags().String("input", "", "directory of country subdirectories containing PDF reports")
	generateCmd.Flags().String("output", "", "directory for dataset output")
	generateCmd.Flags().String("api-key", "", "Anthropic API key (overrides config)")
	generateCmd.Flags().Int("questions-per-company", 0, "target question count per company")
	generateCmd.Flags().Bool("no-store", false, "disable the run ledger for this run")
	rootCmd.AddCommand(generateCmd)
}
