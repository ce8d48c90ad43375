package wm

import "fmt"

// ExitRequest is the one fault that must propagate out of the error
// boundary instead of being swallowed (spec.md §4.D, §7 "Explicit exit").
type ExitRequest struct{ Code int }

func (e ExitRequest) Error() string { return fmt.Sprintf("wm: exit requested (code %d)", e.Code) }

// safely runs fn inside the isolation scope spec.md §4.D requires for
// every user-supplied callback: it snapshots State.WindowSet first, and
// on any fault (panic or returned error, other than ExitRequest) it logs
// a diagnostic to standard error via c.Log, restores the snapshot, and
// returns nil so the event loop resumes. An ExitRequest re-panics after
// restoring nothing, so cmd/latticewm's dispatchOne can recover it and
// end the event loop. The loop then returns normally; Code is not passed
// on as the process exit status.
//
// Grounded on the teacher's style of swallow-and-log around per-event
// handlers in wm/wm.go's Run loop ("log.Println(err); continue"),
// generalised into a reusable wrapper and extended with the WindowSet
// rollback spec.md requires that the teacher's stateless frame tree does
// not need.
func (c *Core) safely(label string, fn func() error) {
	snapshot := c.State.WindowSet.Clone()

	defer func() {
		if r := recover(); r != nil {
			if exit, ok := r.(ExitRequest); ok {
				panic(exit)
			}
			c.State.WindowSet = snapshot
			c.Log.WithField("callback", label).Errorf("recovered fault: %v", r)
		}
	}()

	if err := fn(); err != nil {
		var exit ExitRequest
		if asExitRequest(err, &exit) {
			panic(exit)
		}
		c.State.WindowSet = snapshot
		c.Log.WithField("callback", label).WithError(err).Error("callback fault, state rolled back")
	}
}

func asExitRequest(err error, out *ExitRequest) bool {
	if exit, ok := err.(ExitRequest); ok {
		*out = exit
		return true
	}
	return false
}

