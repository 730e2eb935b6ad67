package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_PlainJSON(t *testing.T) {
	input := `{"skills": ["go", "react"]}`
	assert.Equal(t, input, cleanJSONBlock(input))
}

func TestCleanJSONBlock_MarkdownFence(t *testing.T) {
	input := "```json\n{\"skills\": []}\n```"
	assert.Equal(t, `{"skills": []}`, cleanJSONBlock(input))
}

func TestCleanJSONBlock_BareFence(t *testing.T) {
	input := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, cleanJSONBlock(input))
}

func TestCleanJSONBlock_Whitespace(t *testing.T) {
	input := "  \n{\"a\": 1}\n  "
	assert.Equal(t, `{"a": 1}`, cleanJSONBlock(input))
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, IsUnavailable(ErrUnavailable))
	assert.False(t, IsUnavailable(assert.AnError))
}
