package linter

import (
	"fmt"
	"io"
	"strings"

	"github.com/bloodmagesoftware/floorplan/plan"
)

// Lint validates every plan file in plansDir and prints the problems it finds to w.
func Lint(w io.Writer, plansDir string) error {
	fmt.Fprintln(w, "🔍 Linting floor plans...")

	files, err := plan.Files(plansDir)
	if err != nil {
		return err
	}

	violationCount := 0
	for _, path := range files {
		fileErrors, err := checkPlan(path)
		if err != nil {
			return fmt.Errorf("checking file %s: %w", path, err)
		}

		for _, errMsg := range fileErrors {
			fmt.Fprintln(w, errMsg)
			fmt.Fprintln(w, strings.Repeat("-", 60))
		}
		violationCount += len(fileErrors)
	}

	if violationCount > 0 {
		return fmt.Errorf("linter failed: found %d problems in %d plans", violationCount, len(files))
	}

	fmt.Fprintf(w, "✅ Linter Passed: %d plans checked.\n", len(files))
	return nil
}

// checkPlan loads a single plan and formats its validation issues.
func checkPlan(path string) ([]string, error) {
	p := plan.New()
	if err := p.Load(path); err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}

	var errors []string
	for _, issue := range p.Validate() {
		errors = append(errors, fmt.Sprintf(
			"  [ERROR] File: %s\n"+
				"    Element: %s\n"+
				"    Problem: %s",
			path, describe(issue.Ref), issue.Message,
		))
	}
	return errors, nil
}

func describe(ref plan.Ref) string {
	if ref.ID == "" {
		return ref.Kind.String() + " (no id)"
	}
	return ref.Kind.String() + " " + ref.ID
}
