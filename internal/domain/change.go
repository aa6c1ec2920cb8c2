package domain

// ChangeReport describes what a version propagation actually changed.
// Visited siblings whose version was already the assigned one are not listed.
type ChangeReport struct {
	Target          *Issue   `json:"target"`
	TargetChanged   bool     `json:"target_changed"`
	Parent          *Issue   `json:"parent,omitempty"`
	ParentChanged   bool     `json:"parent_changed"`
	ChangedSiblings []*Issue `json:"changed_siblings"`
}

// ChangedCount is the number of issues whose version differs from before.
func (r *ChangeReport) ChangedCount() int {
	n := len(r.ChangedSiblings)
	if r.TargetChanged {
		n++
	}
	if r.ParentChanged {
		n++
	}
	return n
}
