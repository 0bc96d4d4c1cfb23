package testutil

import (
	"os/exec"
	"testing"
)

// RequireGit skips the test when git is not installed
func RequireGit(t testing.TB) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}
