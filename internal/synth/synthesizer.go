// Package synth drives the generation model to produce multiple-choice
// questions from report chunks, with a personnel-mode fallback when no
// document text is available.
package synth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/marketbench/quizgen-cli/internal/config"
	"github.com/marketbench/quizgen-cli/internal/model"
	"github.com/marketbench/quizgen-cli/internal/resilience"
	"github.com/marketbench/quizgen-cli/pkg/anthropic"
)

// Sequence assigns per-company question ids. The counter starts at 1000 so
// the first assigned id is <code>1001. It is scoped to one company's run and
// threaded through every synthesis call for that company.
type Sequence struct {
	code string
	n    int
}

// NewSequence creates an id sequence for a company code.
func NewSequence(code string) *Sequence {
	return &Sequence{code: code, n: 1000}
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() string {
	s.n++
	return s.code + strconv.Itoa(s.n)
}

// Issued reports how many ids have been assigned so far.
func (s *Sequence) Issued() int {
	return s.n - 1000
}

// Synthesizer formats prompts, invokes the generation client, and parses the
// structured responses into Question records.
type Synthesizer struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	limiter     *rate.Limiter
	retry       resilience.RetryConfig
}

// New creates a Synthesizer from config.
func New(client anthropic.Client, ac config.AnthropicConfig, gc config.GenerationConfig) *Synthesizer {
	s := &Synthesizer{
		client:      client,
		model:       ac.Model,
		maxTokens:   ac.MaxTokens,
		temperature: ac.Temperature,
		retry:       resilience.RetryConfig{MaxAttempts: gc.MaxAttempts},
	}
	if gc.RequestsPerMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(float64(gc.RequestsPerMinute)/60.0), 1)
	}
	return s
}

// FromChunk requests n questions grounded in a single document chunk.
// A malformed response is logged and yields zero questions; the sequence is
// never advanced for questions that were not parsed.
func (s *Synthesizer) FromChunk(ctx context.Context, chunk model.Chunk, seq *Sequence, n int) ([]model.Question, error) {
	in := promptInput{
		company:    chunk.Company,
		country:    chunk.Country,
		reportYear: chunk.ReportYear,
		sourceFile: chunk.SourceFile,
		chunkID:    strconv.Itoa(chunk.ID),
		text:       chunk.Text,
		context:    fmt.Sprintf("the following text from a %s company financial report", chunk.Country),
	}
	return s.generate(ctx, in, seq, n, false)
}

// ForPersonnel requests n questions about a company's key personnel. No
// document text exists in this mode, so the prompt carries a synthetic
// placeholder derived from the company name, and every returned question is
// forced to the Key Personnel category.
func (s *Synthesizer) ForPersonnel(ctx context.Context, company string, seq *Sequence, n int) ([]model.Question, error) {
	in := promptInput{
		company:    company,
		country:    "GCC",
		reportYear: "2024",
		sourceFile: strings.ReplaceAll(company, " ", "_") + "_Report_2024.pdf",
		chunkID:    "0",
		text:       fmt.Sprintf("Information about key executives and board members at %s, a company from GCC.", company),
		context:    fmt.Sprintf("key personnel at %s (a company from GCC)", company),
	}
	return s.generate(ctx, in, seq, n, true)
}

func (s *Synthesizer) generate(ctx context.Context, in promptInput, seq *Sequence, n int, personnel bool) ([]model.Question, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	prompt := buildPrompt(in, n)
	temp := s.temperature

	resp, err := resilience.DoVal(ctx, s.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return s.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:       s.model,
			MaxTokens:   s.maxTokens,
			Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
			Temperature: &temp,
		})
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(s.model, "synthesis")

	raw, err := parseQuestions(resp.Text())
	if err != nil {
		// Dropped, not fatal: this call contributes zero questions.
		zap.L().Warn("could not parse generation response",
			zap.String("company", in.company),
			zap.String("response", resp.Text()),
			zap.Error(err),
		)
		return nil, nil
	}

	questions := make([]model.Question, 0, len(raw))
	for _, rq := range raw {
		questions = append(questions, formatQuestion(rq, in, seq, personnel))
	}
	return questions, nil
}

// formatQuestion maps one parsed question onto the dataset record, assigning
// the next id and the normalized source_type.
func formatQuestion(rq rawQuestion, in promptInput, seq *Sequence, personnel bool) model.Question {
	category := rq.Category
	if category == "" {
		category = "Miscellaneous"
	}
	sourceType := model.SourceType(category)

	// Personnel-mode output stays self-consistent even when the model
	// ignores the category instruction.
	if personnel && category != model.CategoryKeyPersonnel {
		category = model.CategoryKeyPersonnel
		sourceType = model.SourceTypePersonnel
	}

	difficulty := rq.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	return model.Question{
		ID:       seq.Next(),
		Question: rq.Question,
		Options:  rq.Options,
		Answer:   rq.Answer,
		Metadata: model.Metadata{
			Difficulty:    difficulty,
			Company:       in.company,
			ReportYear:    in.reportYear,
			SourceFile:    in.sourceFile,
			SourceChunkID: in.chunkID,
			SourceType:    sourceType,
			Category:      category,
		},
	}
}
