package synth

import (
	"fmt"
	"strings"

	"github.com/marketbench/quizgen-cli/internal/model"
)

// questionPrompt is the instruction template for one synthesis call.
// Placeholders: question count, prompt context, source text, category list.
const questionPrompt = `You are an expert in creating multiple-choice questions for financial reports.

Generate %d challenging multiple-choice questions based on %s.

Text: %s

For each question:
1. Create a clear, specific question about the content provided, which may include financial data, market position, risk factors, business strategy, or key personnel.
2. Provide 4 options (A, B, C, D) - include the letter prefix in each option
3. Indicate the correct answer (just the letter A, B, C, or D)
4. Assign a difficulty level (easy, medium, hard)
5. Categorize the question (%s)

Format your response as a JSON array of objects with these fields:
- question: the question text
- options: array of 4 options (including "A. ", "B. ", etc. prefixes)
- answer: the correct option letter (A, B, C, or D)
- difficulty: difficulty level
- category: the category of the question

IMPORTANT: Return ONLY the JSON array without any markdown formatting, code blocks, or additional text.`

// promptInput carries everything one synthesis call needs to build its
// prompt and stamp provenance onto the output.
type promptInput struct {
	company    string
	country    string
	reportYear string
	sourceFile string
	chunkID    string
	text       string
	context    string
}

func buildPrompt(in promptInput, n int) string {
	return fmt.Sprintf(questionPrompt, n, in.context, in.text, strings.Join(model.Categories, ", "))
}
