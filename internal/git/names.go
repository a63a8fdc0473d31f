package git

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	patchyerrors "patchy.dev/patchy/internal/errors"
)

// MaxBranchNameProbes bounds the search for a free branch name, counting the
// candidate itself
const MaxBranchNameProbes = 4096

// aliasTokenLength is the number of random characters prefixed to an alias
const aliasTokenLength = 8

// UniqueAlias returns "<token>-<seed>" where token is a short random
// alphanumeric string. Collisions are improbable, not impossible.
func UniqueAlias(seed string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:aliasTokenLength]
	return token + "-" + seed
}

// IsValidBranchName reports whether name only contains letters, digits and . - / _
func IsValidBranchName(name string) bool {
	if name == "" {
		return false
	}
	for _, ch := range name {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			continue
		}
		switch ch {
		case '.', '-', '/', '_':
			continue
		}
		return false
	}
	return true
}

// BranchExists reports whether a local branch with the given name exists
func BranchExists(ctx context.Context, r Runner, name string) bool {
	_, err := r.Run(ctx, "rev-parse", "--verify", "refs/heads/"+name)
	return err == nil
}

// FirstAvailableBranchName returns candidate if no such branch exists, otherwise
// the first "<n>-<candidate>" (n = 2, 3, ...) that does not exist yet.
func FirstAvailableBranchName(ctx context.Context, r Runner, candidate string) (string, error) {
	if !BranchExists(ctx, r, candidate) {
		return candidate, nil
	}
	for n := 2; n <= MaxBranchNameProbes; n++ {
		name := fmt.Sprintf("%d-%s", n, candidate)
		if !BranchExists(ctx, r, name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: tried %d variants of %s", patchyerrors.ErrNameExhausted, MaxBranchNameProbes, candidate)
}
