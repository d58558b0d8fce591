// Package filter narrows a fetched batch of canonical issues with a boolean
// expression before reconciliation.
//
// Expressions use the expr language and see one issue at a time:
//
//	priority <= 1 && "backend" in labels
//	source == "github" && assignee != ""
//	not (status in ["Blocked", "On Hold"])
package filter

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// Env is the variable set an expression is evaluated against.
type Env struct {
	Key         string   `expr:"key"`
	Title       string   `expr:"title"`
	Description string   `expr:"description"`
	Status      string   `expr:"status"`
	Priority    int      `expr:"priority"`
	Type        string   `expr:"type"`
	Labels      []string `expr:"labels"`
	Assignee    string   `expr:"assignee"`
	Source      string   `expr:"source"`
}

// EnvFor builds the evaluation environment of an issue.
func EnvFor(ci issues.CanonicalIssue) Env {
	return Env{
		Key:         ci.SourceKey,
		Title:       ci.Title,
		Description: ci.Description,
		Status:      ci.Status,
		Priority:    int(issues.PriorityOf(ci.Priority)),
		Type:        ci.Type.String(),
		Labels:      ci.Labels,
		Assignee:    ci.Assignee,
		Source:      ci.Source.String(),
	}
}

// Filter is a compiled issue expression. The zero value and a nil Filter
// keep every issue.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks expression. An empty expression matches
// everything.
func Compile(expression string) (*Filter, error) {
	if expression == "" {
		return &Filter{}, nil
	}
	program, err := expr.Compile(expression, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, errors.NewValidationError("filter", expression, err.Error())
	}
	return &Filter{source: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Match evaluates the filter against one issue.
func (f *Filter) Match(ci issues.CanonicalIssue) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, EnvFor(ci))
	if err != nil {
		return false, errors.NewValidationError("filter", f.source, err.Error())
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Apply returns the issues the filter keeps, in their original order, and
// the number of issues it dropped. An issue the expression fails on is
// dropped and its error returned alongside.
func (f *Filter) Apply(in []issues.CanonicalIssue) ([]issues.CanonicalIssue, int, []error) {
	if f == nil || f.program == nil {
		return in, 0, nil
	}
	out := make([]issues.CanonicalIssue, 0, len(in))
	var errs []error
	for _, ci := range in {
		ok, err := f.Match(ci.Normalize())
		if err != nil {
			errs = append(errs, &errors.ReconcileError{Source: ci.Source.String(), SourceKey: ci.SourceKey, Err: err})
			continue
		}
		if ok {
			out = append(out, ci)
		}
	}
	return out, len(in) - len(out), errs
}
