// Package pullrequest turns pull request identifiers into local branches
// fetched from the pull request's head repository.
package pullrequest

import (
	"fmt"
	"strconv"
	"strings"

	patchyerrors "patchy.dev/patchy/internal/errors"
	"patchy.dev/patchy/internal/utils"
)

// PinSeparator separates a branch or pull request from the commit it is pinned to
const PinSeparator = "@"

// Ref identifies one pull request to fetch
type Ref struct {
	Number           int
	CustomBranchName string
	CommitPin        string
}

// String returns the number as written by users, e.g. "#42"
func (r Ref) String() string {
	return "#" + strconv.Itoa(r.Number)
}

// ParsePin splits s on the last occurrence of sep into a name and an optional
// commit. Surrounding whitespace is trimmed from both.
func ParsePin(s, sep string) (name, pin string) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):])
}

// ParseRef parses "[#]<number>[@<commit>]"
func ParseRef(token string) (Ref, error) {
	token = utils.IgnoreOctothorpe(strings.TrimSpace(token))
	number, pin := ParsePin(token, PinSeparator)

	if number == "" || strings.TrimFunc(number, isDigit) != "" {
		return Ref{}, fmt.Errorf("%w: %q couldn't be parsed as a pull request number, examples of valid pull requests: 1154, 500, '1001@0b36296f67a80309243ea5c8892c79798c6dcf93'",
			patchyerrors.ErrInvalidPullRequest, token)
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q: %w", patchyerrors.ErrInvalidPullRequest, token, err)
	}
	return Ref{Number: n, CommitPin: pin}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
