package workspace

import "os/exec"

// gitCommand builds a git invocation rooted at dir for test fixtures.
func gitCommand(dir string, args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return cmd
}
