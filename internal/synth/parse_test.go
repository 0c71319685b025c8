package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArray = `[
  {"question": "What was net profit?", "options": ["A. 1bn", "B. 2bn", "C. 3bn", "D. 4bn"], "answer": "B", "difficulty": "easy", "category": "Financial Performance"}
]`

func TestParseQuestions_Bare(t *testing.T) {
	t.Parallel()

	qs, err := parseQuestions(sampleArray)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "What was net profit?", qs[0].Question)
	assert.Equal(t, "B", qs[0].Answer)
	assert.Len(t, qs[0].Options, 4)
}

func TestParseQuestions_FencedVariants(t *testing.T) {
	t.Parallel()

	bare, err := parseQuestions(sampleArray)
	require.NoError(t, err)

	for _, wrapped := range []string{
		"```json\n" + sampleArray + "\n```",
		"```\n" + sampleArray + "\n```",
		"  ```json\n" + sampleArray + "\n```  ",
	} {
		qs, err := parseQuestions(wrapped)
		require.NoError(t, err)
		assert.Equal(t, bare, qs)
	}
}

func TestParseQuestions_Malformed(t *testing.T) {
	t.Parallel()

	_, err := parseQuestions("I cannot generate questions for this text.")
	require.Error(t, err)

	_, err = parseQuestions(`{"question": "not an array"}`)
	require.Error(t, err)

	_, err = parseQuestions("```json\n{broken\n```")
	require.Error(t, err)
}

func TestStripCodeFence_NoFence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[1,2]", stripCodeFence("  [1,2]\n"))
	// An unterminated fence is left as-is and fails at the JSON stage.
	assert.Equal(t, "``` [1,2]", stripCodeFence("``` [1,2]"))
}
