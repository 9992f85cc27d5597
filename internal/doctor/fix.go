package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/zcf/internal/errors"
)

// Fixer is implemented by checks that can repair what they found. CanFix
// and Fix are only meaningful after Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// permIssue is a file whose mode is looser than want.
type permIssue struct {
	Path string
	Have os.FileMode
	Want os.FileMode
}

// PermissionFixer tightens file modes found by a check.
type PermissionFixer struct {
	issues []permIssue
	chmod  func(string, os.FileMode) error
}

// CanFix returns true if there are any permission issues to repair.
func (f *PermissionFixer) CanFix() bool {
	return len(f.issues) > 0
}

// Fix chmods every recorded file and reports each outcome.
func (f *PermissionFixer) Fix() []FixResult {
	chmod := f.chmod
	if chmod == nil {
		chmod = os.Chmod
	}

	results := make([]FixResult, 0, len(f.issues))
	for _, issue := range f.issues {
		result := FixResult{Path: issue.Path}
		if err := chmod(issue.Path, issue.Want); err != nil {
			result.Description = fmt.Sprintf("failed to chmod %04o: %v", issue.Want, err)
			result.Error = errors.Wrapf(err, "chmod %04o %s", issue.Want, issue.Path)
		} else {
			result.Fixed = true
			result.Description = fmt.Sprintf("chmod %04o (was %04o)", issue.Want, issue.Have)
		}
		results = append(results, result)
	}
	return results
}

func (f *PermissionFixer) setIssues(issues []permIssue) {
	f.issues = issues
}
