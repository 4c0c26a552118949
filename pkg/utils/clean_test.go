package utils

import (
	"testing"
)

func TestCleanMarkdownFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain markdown untouched",
			input:    "# Feedback\n\n- fix typo",
			expected: "# Feedback\n\n- fix typo",
		},
		{
			name:     "markdown fence",
			input:    "```markdown\n# Feedback\n- fix typo\n```",
			expected: "# Feedback\n- fix typo",
		},
		{
			name:     "bare fence",
			input:    "```\n**Grammar**: ok\n```",
			expected: "**Grammar**: ok",
		},
		{
			name:     "fence with surrounding whitespace",
			input:    "  ```md\n  Text  \n```  ",
			expected: "Text",
		},
		{
			name:     "code block inside text untouched",
			input:    "Intro\n```go\nx := 1\n```",
			expected: "Intro\n```go\nx := 1\n```",
		},
		{
			name:     "foreign language fence untouched",
			input:    "```go\nx := 1\n```",
			expected: "```go\nx := 1\n```",
		},
		{
			name:     "two blocks untouched",
			input:    "```\na\n```\n\n```\nb\n```",
			expected: "```\na\n```\n\n```\nb\n```",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanMarkdownFence(tt.input)
			if result != tt.expected {
				t.Errorf("CleanMarkdownFence() = %q, want %q", result, tt.expected)
			}
		})
	}
}
