package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/lattice-wm/lattice/internal/stack"
)

func uintToXWindow(w stack.WindowID) xproto.Window { return xproto.Window(w) }

// logrusFields summarizes a WindowSet for the per-refresh debug log line
// (spec.md §4.C step 8's "log hook"), grounded on the teacher's plain
// log.Println(xev) but upgraded to logrus's structured fields per
// SPEC_FULL.md's ambient-stack section.
func logrusFields(ws *stack.WindowSet) logrus.Fields {
	focus, hasFocus := ws.PeekFocus()
	return logrus.Fields{
		"workspace":  ws.Current.Workspace.Tag,
		"focus":      focus,
		"has_focus":  hasFocus,
		"screens":    len(ws.Visible) + 1,
		"hidden_wss": len(ws.Hidden),
	}
}
