package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/lattice-wm/lattice/internal/stack"
)

// Hints publishes the subset of EWMH root-window properties SPEC_FULL.md's
// domain stack section calls for, via xgbutil/ewmh (grounded on
// alexzeitgeist-cortile's store/client.go, which drives the identical
// property set through the sibling jezek/xgbutil fork). xgb and xgbutil
// keep independent connections to the same display; Refresh publishes the
// hints once per refresh (wm's publishHints), not per event, so the extra
// round trips are cheap.
type Hints struct {
	xu *xgbutil.XUtil
}

// NewHints opens the xgbutil connection used purely for EWMH property
// writes. It shares no state with Conn's xgb.Conn; both simply talk to the
// same $DISPLAY.
func NewHints() (*Hints, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: xgbutil connect: %w", err)
	}
	return &Hints{xu: xu}, nil
}

func (h *Hints) Close() {
	if h.xu != nil && h.xu.Conn() != nil {
		h.xu.Conn().Close()
	}
}

// SupportingWMCheck announces a compliant window manager is present, the
// first thing EWMH-aware clients (panels, pagers) check for.
func (h *Hints) SupportingWMCheck(name string) error {
	win, err := xwindow.Generate(h.xu)
	if err != nil {
		return fmt.Errorf("x11: generate check window: %w", err)
	}
	if err := win.CreateChecked(); err != nil {
		return fmt.Errorf("x11: create check window: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(h.xu, h.xu.RootWin(), win.Id); err != nil {
		return fmt.Errorf("x11: set supporting wm check: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(h.xu, win.Id, win.Id); err != nil {
		return fmt.Errorf("x11: set supporting wm check (self): %w", err)
	}
	if err := ewmh.WmNameSet(h.xu, win.Id, name); err != nil {
		return fmt.Errorf("x11: set wm name: %w", err)
	}
	return nil
}

// PublishDesktops mirrors the workspace tag list onto
// _NET_NUMBER_OF_DESKTOPS / _NET_DESKTOP_NAMES, so an external pager can
// render tabs for every workspace in spec.md §3's WindowSet.
func (h *Hints) PublishDesktops(tags []stack.WorkspaceTag, currentIndex int) error {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = string(t)
	}
	if err := ewmh.DesktopNamesSet(h.xu, names); err != nil {
		return fmt.Errorf("x11: set desktop names: %w", err)
	}
	if err := ewmh.NumberOfDesktopsSet(h.xu, uint(len(tags))); err != nil {
		return fmt.Errorf("x11: set number of desktops: %w", err)
	}
	if err := ewmh.CurrentDesktopSet(h.xu, uint(currentIndex)); err != nil {
		return fmt.Errorf("x11: set current desktop: %w", err)
	}
	return nil
}

// PublishClientList writes windows, in the order given, to both
// _NET_CLIENT_LIST and _NET_CLIENT_LIST_STACKING. Refresh passes every
// window in every workspace's stack, hidden workspaces included; the
// stacking list does not follow the X stacking order.
func (h *Hints) PublishClientList(windows []stack.WindowID) error {
	ids := make([]xproto.Window, len(windows))
	for i, w := range windows {
		ids[i] = xproto.Window(w)
	}
	if err := ewmh.ClientListSet(h.xu, ids); err != nil {
		return fmt.Errorf("x11: set client list: %w", err)
	}
	if err := ewmh.ClientListStackingSet(h.xu, ids); err != nil {
		return fmt.Errorf("x11: set client list stacking: %w", err)
	}
	return nil
}

// PublishActiveWindow mirrors the focused window onto _NET_ACTIVE_WINDOW,
// or clears the property when no window is focused.
func (h *Hints) PublishActiveWindow(w stack.WindowID, ok bool) error {
	if !ok {
		return ewmh.ActiveWindowSet(h.xu, 0)
	}
	return ewmh.ActiveWindowSet(h.xu, xproto.Window(w))
}
