package synth

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// rawQuestion is the shape the model is instructed to return.
type rawQuestion struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
}

// fenceRe captures the body of a markdown code fence, with or without a
// language tag.
var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// stripCodeFence removes a wrapping markdown code fence if present. The
// model is told not to emit one, but it sometimes does anyway.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	if m := fenceRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// parseQuestions decodes a generation response into raw question records.
func parseQuestions(response string) ([]rawQuestion, error) {
	body := stripCodeFence(response)

	var questions []rawQuestion
	if err := json.Unmarshal([]byte(body), &questions); err != nil {
		return nil, eris.Wrap(err, "synth: unmarshal question array")
	}
	return questions, nil
}
