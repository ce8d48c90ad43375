package wm

import "github.com/lattice-wm/lattice/internal/stack"

// Endo is a composable WindowSet transformation — the "Endo monoid"
// spec.md §4.E describes the manage hook surface as. Identity is
// func(ws stack.WindowSet) stack.WindowSet { return ws }.
type Endo func(stack.WindowSet) stack.WindowSet

// Then composes e followed by next (e's result feeds next), the order
// spec.md §4.E requires so a user hook can observe/override the default
// insert_up placement rather than merely run alongside it.
func (e Endo) Then(next Endo) Endo {
	return func(ws stack.WindowSet) stack.WindowSet { return next(e(ws)) }
}

// IdentityEndo is the Endo-monoid identity, used when a ManageHook is nil
// or declines to special-case a window.
func IdentityEndo(ws stack.WindowSet) stack.WindowSet { return ws }

// ManageHook classifies a newly-mapped window and returns an Endo that is
// composed after the default insert_up transformation, so it sees (and
// may override) that placement. Returning nil means "defer to the default".
type ManageHook func(w stack.WindowID, info ClientInfo) Endo

// ClientInfo mirrors x11.ClientInfo so this package does not need to
// import internal/x11 just for a struct literal; Core.manageWindow maps
// between the two.
type ClientInfo struct {
	Class     string
	Instance  string
	Transient bool
	Dialog    bool
	Fixed     bool
}

// defaultManage implements spec.md §4.E's default transform:
// insert_up(w) on the current workspace, floating it at a centered
// rectangle first if the manage pipeline or ICCCM hints mark it as a
// dialog (a Non-goal-adjacent but idiomatic convenience most ambient
// xmonad configs layer on top of the bare default).
func defaultManage(w stack.WindowID, info ClientInfo) Endo {
	return func(ws stack.WindowSet) stack.WindowSet {
		out := stack.InsertUp(ws, w)
		if info.Dialog {
			out = stack.Float(out, w, centeredDialogRect)
		}
		return out
	}
}

var centeredDialogRect = stack.RationalRect{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}

// manageWindow builds the composed transform for a newly mapped window
// and applies it, matching spec.md §4.E: "user_hook(w) ∘ insert_up(w)",
// with the user's ManageHook (if any) composed after the default so it
// can observe or override the placement insert_up chose.
func (c *Core) manageWindow(w stack.WindowID, info ClientInfo) {
	transform := Endo(defaultManage(w, info))
	if c.Manage != nil {
		if userEndo := c.Manage(w, info); userEndo != nil {
			transform = transform.Then(Endo(userEndo))
		}
	}
	c.apply(transform)
}
