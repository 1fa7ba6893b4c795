package workspace

import (
	"os/exec"
	"strings"
)

// GitBranch returns the current branch name of the repository containing
// dir, or "" when dir is not a repository or git is unavailable. Called
// once at startup; the title just goes without a branch on failure.
func GitBranch(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
