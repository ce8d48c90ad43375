package main

import (
	"github.com/BurntSushi/xgb"

	"github.com/lattice-wm/lattice/internal/wm"
)

// eventLoop is the single-threaded, cooperative core loop spec.md §5
// describes: WaitForEvent is the only legitimate suspension point,
// every event is dispatched and then immediately followed by a Refresh,
// and the loop ends only when Dispatch lets an ExitRequest escape
// (via the error boundary's re-panic, spec.md §4.D).
//
// Grounded on the teacher's Run (_examples/funkycode-marwind/wm/wm.go):
// the same WaitForEvent/switch/log-and-continue-on-error shape, with the
// switch itself delegated to Core.Dispatch.
func eventLoop(core *wm.Core) error {
	for {
		ev, err := core.Conn.X.WaitForEvent()
		if err != nil {
			core.Log.WithError(err).Error("wait for event")
			continue
		}
		if ev == nil {
			continue
		}
		if dispatchOne(core, ev) {
			return nil
		}
		core.Refresh()
	}
}

// dispatchOne runs one Dispatch call, catching an escaped ExitRequest
// (the only panic the error boundary in internal/wm lets through) and
// reporting whether the loop should stop.
func dispatchOne(core *wm.Core, ev xgb.Event) (exit bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(wm.ExitRequest); ok {
				exit = true
				return
			}
			panic(r)
		}
	}()
	core.Dispatch(ev)
	return false
}
