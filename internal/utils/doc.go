// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Patch file naming from commit messages
//   - Pull request argument normalization
package utils
