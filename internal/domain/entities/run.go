package entities

import (
	"strings"

	"github.com/google/uuid"
)

const runBranchPrefix = "run-"

// RunBranchName returns the branch a single pipeline run writes to. Each
// concurrent run must get its own branch; an empty run id gets a random one.
func RunBranchName(runID string) string {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		runID = strings.SplitN(uuid.NewString(), "-", 2)[0]
	}
	return runBranchPrefix + strings.ToLower(strings.ReplaceAll(runID, " ", "-"))
}

// IsRunBranch reports whether a branch follows the run naming convention.
func IsRunBranch(name string) bool {
	return strings.HasPrefix(name, runBranchPrefix)
}
