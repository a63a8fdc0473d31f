package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCommitMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases letters",
			input:    "Fix Bug",
			expected: "fix_bug",
		},
		{
			name:     "punctuation becomes hyphens",
			input:    "feat: add (new) thing!",
			expected: "feat-_add_-new-_thing-",
		},
		{
			name:     "digits preserved",
			input:    "bump v2 to 3",
			expected: "bump_v2_to_3",
		},
		{
			name:     "tabs and newlines are whitespace",
			input:    "a\tb\nc",
			expected: "a_b_c",
		},
		{
			name:     "non-ascii letters kept",
			input:    "Ärger über",
			expected: "ärger_über",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, NormalizeCommitMessage(tt.input))
		})
	}
}

func TestPatchNameFromMessage(t *testing.T) {
	t.Parallel()

	t.Run("uses the subject line only", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "fix_the_thing", PatchNameFromMessage("Fix the thing\n\nLonger body here.\n"))
	})

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", PatchNameFromMessage("  \n"))
	})

	t.Run("long subjects are truncated", func(t *testing.T) {
		t.Parallel()
		name := PatchNameFromMessage(strings.Repeat("a", MaxPatchNameLength+50))
		require.Len(t, name, MaxPatchNameLength)
	})
}

func TestIgnoreOctothorpe(t *testing.T) {
	t.Parallel()

	require.Equal(t, "123", IgnoreOctothorpe("#123"))
	require.Equal(t, "123", IgnoreOctothorpe("123"))
	require.Equal(t, "#123", IgnoreOctothorpe("##123"))
}
