package types

import (
	"fmt"
	"strings"
)

type Problem struct {
	GroupId string `json:"id"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.GroupId, p.Message)
}

// ValidationError lists the catalog problems that make the data unusable.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("invalid catalog, %d problem(s): %s", len(e.Problems), strings.Join(lines, "; "))
}

// Validate checks the catalog. Missing or duplicate ids are errors, a stored
// variantCount that differs from the number of variants is only a warning
// since the stored count is what gets displayed and sorted on.
func (c *CatalogData) Validate() (warnings []Problem, err error) {
	problems := make([]Problem, 0)
	warnings = make([]Problem, 0)
	seen := make(map[string]struct{}, len(c.Groups))
	for i, g := range c.Groups {
		if g == nil {
			problems = append(problems, Problem{GroupId: fmt.Sprintf("#%d", i), Message: "empty group"})
			continue
		}
		if g.Id == "" {
			problems = append(problems, Problem{GroupId: fmt.Sprintf("#%d", i), Message: "missing id"})
			continue
		}
		if !isPathSegment(g.Id) {
			problems = append(problems, Problem{GroupId: g.Id, Message: "id is not usable as a page path"})
		}
		if _, ok := seen[g.Id]; ok {
			problems = append(problems, Problem{GroupId: g.Id, Message: "duplicate id"})
		}
		seen[g.Id] = struct{}{}
		if g.VariantCount != len(g.Variants) {
			warnings = append(warnings, Problem{
				GroupId: g.Id,
				Message: fmt.Sprintf("variantCount %d does not match %d variants", g.VariantCount, len(g.Variants)),
			})
		}
		if g.Type == "" || g.Type == TypeAll {
			warnings = append(warnings, Problem{GroupId: g.Id, Message: fmt.Sprintf("unusable type %q", g.Type)})
		}
	}
	if len(problems) > 0 {
		return warnings, &ValidationError{Problems: problems}
	}
	return warnings, nil
}

// isPathSegment reports whether id can name a detail page directory.
func isPathSegment(id string) bool {
	return id != "." && id != ".." && !strings.ContainsAny(id, "/\\?#")
}
