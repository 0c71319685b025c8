// Package pipeline drives the end-to-end dataset build: collect the corpus,
// extract and chunk each company's reports, synthesize questions to quota,
// and write the per-company and combined outputs.
//
// Processing is strictly sequential. The only mutable state is the
// per-company id sequence, which never outlives one company's run.
package pipeline

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/marketbench/quizgen-cli/internal/chunker"
	"github.com/marketbench/quizgen-cli/internal/config"
	"github.com/marketbench/quizgen-cli/internal/corpus"
	"github.com/marketbench/quizgen-cli/internal/dataset"
	"github.com/marketbench/quizgen-cli/internal/model"
	"github.com/marketbench/quizgen-cli/internal/ocr"
	"github.com/marketbench/quizgen-cli/internal/store"
	"github.com/marketbench/quizgen-cli/internal/synth"
	"github.com/marketbench/quizgen-cli/pkg/anthropic"
)

// Pipeline wires the collector, extractor, synthesizer, and writers.
type Pipeline struct {
	cfg       *config.Config
	extractor ocr.Extractor
	synth     *synth.Synthesizer
	ledger    store.Store // nil when the run ledger is disabled
}

// Result summarizes one pipeline run.
type Result struct {
	RunID          string                 `json:"run_id,omitempty"`
	Records        []*model.CompanyRecord `json:"records"`
	TotalQuestions int                    `json:"total_questions"`
	CombinedPath   string                 `json:"combined_path,omitempty"`
	SummaryPath    string                 `json:"summary_path,omitempty"`
}

// New builds a Pipeline. ledger may be nil.
func New(cfg *config.Config, extractor ocr.Extractor, client anthropic.Client, ledger store.Store) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		synth:     synth.New(client, cfg.Anthropic, cfg.Generation),
		ledger:    ledger,
	}
}

// Run executes the full dataset build. Per-document and per-call failures
// are logged and skipped; only writer and ledger failures are fatal.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	companies, _, err := corpus.Collect(p.cfg.Input.Dir)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		zap.L().Warn("no PDF files found, nothing to do")
		return &Result{}, nil
	}

	result := &Result{}
	if p.ledger != nil {
		run, err := p.ledger.CreateRun(ctx, p.cfg.Input.Dir, p.cfg.Output.Dir)
		if err != nil {
			return nil, err
		}
		result.RunID = run.ID
	}

	// Map order is randomized; sort so output order is reproducible.
	names := make([]string, 0, len(companies))
	for name := range companies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rec, err := p.processCompany(ctx, name, companies[name])
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, rec)
		result.TotalQuestions += len(rec.Questions)

		if p.ledger != nil {
			err := p.ledger.AddCompanyResult(ctx, store.CompanyResult{
				RunID:     result.RunID,
				Company:   rec.Name,
				Code:      rec.Code,
				Country:   rec.Country,
				PDFs:      len(rec.PDFs),
				Questions: len(rec.Questions),
			})
			if err != nil {
				return nil, err
			}
		}
	}

	if result.CombinedPath, err = dataset.WriteCombined(p.cfg.Output.Dir, result.Records); err != nil {
		return nil, err
	}
	if result.SummaryPath, err = dataset.WriteSummaryCSV(p.cfg.Output.Dir, result.Records); err != nil {
		return nil, err
	}
	if p.cfg.Output.XLSXSummary {
		if _, err := dataset.WriteSummaryXLSX(p.cfg.Output.Dir, result.Records); err != nil {
			return nil, err
		}
	}

	if p.ledger != nil {
		if err := p.ledger.CompleteRun(ctx, result.RunID, len(result.Records), result.TotalQuestions); err != nil {
			return nil, err
		}
	}

	zap.L().Info("run complete",
		zap.Int("companies", len(result.Records)),
		zap.Int("questions", result.TotalQuestions),
	)
	return result, nil
}

// processCompany synthesizes questions for one company up to the configured
// quota, falling back to personnel-mode synthesis for any remainder, and
// writes the per-company output file.
func (p *Pipeline) processCompany(ctx context.Context, name string, refs []model.PdfReference) (*model.CompanyRecord, error) {
	zap.L().Info("processing company", zap.String("company", name), zap.Int("pdfs", len(refs)))

	quota := p.cfg.Generation.QuestionsPerCompany
	code := model.GenerateCode(name)
	seq := synth.NewSequence(code)

	rec := &model.CompanyRecord{
		Name: name,
		Code: code,
		// All of a company's reports live under one country directory.
		Country: refs[0].Country,
		PDFs:    refs,
	}

	for _, ref := range refs {
		if len(rec.Questions) >= quota {
			break
		}

		text, err := p.extractor.ExtractText(ctx, ref.Path)
		if err != nil {
			zap.L().Warn("text extraction failed, skipping document",
				zap.String("path", ref.Path), zap.Error(err))
			continue
		}

		chunks := chunker.Split(text, ref, name, chunker.DefaultConfig())
		if max := p.cfg.Generation.MaxChunksPerDocument; max > 0 && len(chunks) > max {
			chunks = chunks[:max]
		}

		for _, chunk := range chunks {
			needed := quota - len(rec.Questions)
			if needed <= 0 {
				break
			}
			n := p.cfg.Generation.QuestionsPerCall
			if n > needed {
				n = needed
			}

			qs, err := p.synth.FromChunk(ctx, chunk, seq, n)
			if err != nil {
				zap.L().Warn("generation call failed",
					zap.String("company", name),
					zap.Int("chunk_id", chunk.ID),
					zap.Error(err))
				continue
			}
			rec.Questions = append(rec.Questions, qs...)
			zap.L().Debug("generated questions",
				zap.String("company", name),
				zap.Int("got", len(qs)),
				zap.Int("total", len(rec.Questions)),
				zap.Int("quota", quota))
		}
	}

	if remaining := quota - len(rec.Questions); remaining > 0 {
		zap.L().Info("quota unmet, generating personnel questions",
			zap.String("company", name), zap.Int("remaining", remaining))
		qs, err := p.synth.ForPersonnel(ctx, name, seq, remaining)
		if err != nil {
			zap.L().Warn("personnel generation failed", zap.String("company", name), zap.Error(err))
		} else {
			rec.Questions = append(rec.Questions, qs...)
		}
	}

	if _, err := dataset.WriteCompany(p.cfg.Output.Dir, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
