package propagation

import "github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"

// nodeResult is the outcome of one node write: the issue as written and
// whether its version differs from the value it had before.
type nodeResult struct {
	issue   *domain.Issue
	changed bool
}

// cascadeResult collects node results for one propagation call.
type cascadeResult struct {
	target   nodeResult
	siblings []nodeResult
	parent   *nodeResult
}

// report folds the node results into a ChangeReport. Unchanged siblings are
// dropped even though they were written.
func (c cascadeResult) report() *domain.ChangeReport {
	r := &domain.ChangeReport{
		Target:          c.target.issue,
		TargetChanged:   c.target.changed,
		ChangedSiblings: []*domain.Issue{},
	}
	for _, s := range c.siblings {
		if s.changed {
			r.ChangedSiblings = append(r.ChangedSiblings, s.issue)
		}
	}
	if c.parent != nil {
		r.Parent = c.parent.issue
		r.ParentChanged = c.parent.changed
	}
	return r
}
