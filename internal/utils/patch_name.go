package utils

import (
	"strings"
	"unicode"
)

// MaxPatchNameLength keeps generated patch file names well below filesystem limits
const MaxPatchNameLength = 200

// NormalizeCommitMessage maps a commit message to lowercase letters and digits,
// '_' for whitespace and '-' for everything else
func NormalizeCommitMessage(message string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return '_'
		default:
			return '-'
		}
	}, message)
}

// PatchNameFromMessage generates a patch file name (without extension) from
// the subject line of a commit message
func PatchNameFromMessage(message string) string {
	subject, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	name := NormalizeCommitMessage(strings.TrimSpace(subject))

	if len(name) > MaxPatchNameLength {
		name = name[:MaxPatchNameLength]
		// Don't leave half of a multi-byte rune behind
		name = strings.ToValidUTF8(name, "")
	}
	return name
}

// IgnoreOctothorpe strips a leading '#', so "#123" and "123" are the same pull request
func IgnoreOctothorpe(arg string) string {
	return strings.TrimPrefix(arg, "#")
}
