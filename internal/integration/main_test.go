// Package integration runs the patchy binary against throwaway repositories.
package integration

import (
	"testing"

	"patchy.dev/patchy/internal/testhelper"
)

// getPatchyBinary returns the path to the pre-built patchy binary.
func getPatchyBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}
	binaryPath := testhelper.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelper.GetBinaryError(); err != nil {
			t.Fatalf("failed to build patchy binary: %v", err)
		}
		t.Fatal("patchy binary not built")
	}
	return binaryPath
}
