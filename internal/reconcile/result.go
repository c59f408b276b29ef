package reconcile

import (
	"fmt"
	"strings"
	"time"

	"konverge/internal/resource"
)

// Action is what the engine did (or decided not to do) for one resource.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionRecreated Action = "recreated"
	ActionUnchanged Action = "unchanged"
	ActionSkipped   Action = "skipped"
	ActionFailed    Action = "failed"
)

// Outcome records the engine's decision for a single resource.
type Outcome struct {
	Ref    resource.Reference `json:"resource"`
	Action Action             `json:"action"`
	Reason string             `json:"reason,omitempty"`
	Err    error              `json:"-"`
}

// Result aggregates the outcomes of one apply batch, in processing order.
type Result struct {
	// Source is the provenance label of the batch, used only for logging.
	Source string `json:"source,omitempty"`

	Outcomes []Outcome     `json:"outcomes"`
	Duration time.Duration `json:"duration"`
}

func (r *Result) record(ref resource.Reference, action Action, reason string, err error) {
	r.Outcomes = append(r.Outcomes, Outcome{Ref: ref, Action: action, Reason: reason, Err: err})
}

// ByAction returns the outcomes with the given action, in order.
func (r *Result) ByAction(action Action) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Action == action {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns the failed outcomes, in order.
func (r *Result) Failed() []Outcome {
	return r.ByAction(ActionFailed)
}

// Changed reports whether any mutating call was made.
func (r *Result) Changed() bool {
	for _, o := range r.Outcomes {
		switch o.Action {
		case ActionCreated, ActionUpdated, ActionRecreated:
			return true
		}
	}
	return false
}

// Err returns the first failure, or nil when every resource converged.
func (r *Result) Err() error {
	for _, o := range r.Outcomes {
		if o.Action == ActionFailed && o.Err != nil {
			return o.Err
		}
	}
	return nil
}

// Summary renders a one-line count of what happened, e.g.
// "2 created, 1 unchanged, 1 failed".
func (r *Result) Summary() string {
	counts := map[Action]int{}
	for _, o := range r.Outcomes {
		counts[o.Action]++
	}
	var parts []string
	for _, a := range []Action{ActionCreated, ActionUpdated, ActionRecreated, ActionUnchanged, ActionSkipped, ActionFailed} {
		if n := counts[a]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, a))
		}
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}
