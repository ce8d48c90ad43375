// Package x11 wraps the BurntSushi/xgb X protocol binding with the
// connection lifecycle, atom interning, and window geometry helpers the
// reducer needs. It is the sole owner of the X display connection
// (spec.md §5 "Shared resources"): no other package issues xgb calls
// directly.
//
// Grounded on _examples/funkycode-marwind/wm/wm.go (becomeWM, grabKeys,
// the root event mask) and wm/frame.go (createParent, reparent,
// ChangeSaveSet via xfixes). Multi-screen discovery is grounded on
// other_examples/ad0f36b0_driusan-dewm__main.go.go's xinerama.Init +
// QueryScreens call.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/lattice-wm/lattice/internal/stack"
)

// Atoms caches the interned atoms the core relies on (spec.md §6).
type Atoms struct {
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
	WMTakeFocus    xproto.Atom
	WMState        xproto.Atom
	WMClass        xproto.Atom
	WMTransientFor xproto.Atom
	NetWMName      xproto.Atom
}

// Conn owns the X11 connection and the handful of pieces of process-wide
// state (root window, screen, atoms) every reducer call needs.
type Conn struct {
	X     *xgb.Conn
	Root  xproto.Window
	Setup *xproto.ScreenInfo
	Atoms Atoms
	log   *logrus.Entry
}

// Connect opens the X display named by $DISPLAY (honored by xgb itself)
// and interns the atoms the core depends on. It does not yet attempt to
// become the window manager; call BecomeWM for that.
func Connect(log *logrus.Entry) (*Conn, error) {
	xc, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	setup := xproto.Setup(xc)
	if setup == nil || len(setup.Roots) < 1 {
		xc.Close()
		return nil, fmt.Errorf("x11: could not parse X setup info")
	}
	screen := setup.Roots[0]

	if err := xfixes.Init(xc); err != nil {
		xc.Close()
		return nil, fmt.Errorf("x11: xfixes init: %w", err)
	}

	c := &Conn{X: xc, Root: screen.Root, Setup: &screen, log: log}
	if err := c.internAtoms(); err != nil {
		xc.Close()
		return nil, err
	}
	return c, nil
}

func (c *Conn) internAtoms() error {
	names := map[string]*xproto.Atom{
		"WM_PROTOCOLS":     &c.Atoms.WMProtocols,
		"WM_DELETE_WINDOW": &c.Atoms.WMDeleteWindow,
		"WM_TAKE_FOCUS":    &c.Atoms.WMTakeFocus,
		"WM_STATE":         &c.Atoms.WMState,
		"WM_CLASS":         &c.Atoms.WMClass,
		"WM_TRANSIENT_FOR": &c.Atoms.WMTransientFor,
		"_NET_WM_NAME":     &c.Atoms.NetWMName,
	}
	for name, dst := range names {
		reply, err := xproto.InternAtom(c.X, false, uint16(len(name)), name).Reply()
		if err != nil {
			return fmt.Errorf("x11: intern atom %s: %w", name, err)
		}
		*dst = reply.Atom
	}
	return nil
}

// Close releases the connection. Per spec.md §9 ("Restart via exec"),
// Close must never be called across a restart exec — clients are owned by
// the X server, not this process, and destroying the connection would
// tear down grabs but leave mapped windows alone; Close is for final
// process exit only.
func (c *Conn) Close() {
	if c.X != nil {
		c.X.Close()
	}
}

// rootEventMask is the set the core selects for on the root window
// (spec.md §6). Matches the teacher's becomeWM plus PropertyChangeMask,
// LeaveWindowMask and EnterWindowMask, which spec.md explicitly requires
// and the teacher's sketch omitted.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

// BecomeWM selects for substructure redirection on the root window. A
// BadAccess here means another window manager already owns the display.
func (c *Conn) BecomeWM() error {
	return xproto.ChangeWindowAttributesChecked(
		c.X, c.Root, xproto.CwEventMask, []uint32{rootEventMask},
	).Check()
}

// Screens returns the physical monitor rectangles via Xinerama, falling
// back to a single screen spanning the whole root window when Xinerama is
// unavailable or reports nothing (matches dewm's fallback).
func (c *Conn) Screens() ([]stack.Rectangle, error) {
	if err := xinerama.Init(c.X); err != nil {
		return []stack.Rectangle{rootRect(c.Setup)}, nil
	}
	reply, err := xinerama.QueryScreens(c.X).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: xinerama query screens: %w", err)
	}
	if reply == nil || len(reply.ScreenInfo) == 0 {
		return []stack.Rectangle{rootRect(c.Setup)}, nil
	}
	out := make([]stack.Rectangle, len(reply.ScreenInfo))
	for i, si := range reply.ScreenInfo {
		out[i] = stack.Rectangle{X: int32(si.XOrg), Y: int32(si.YOrg), W: uint32(si.Width), H: uint32(si.Height)}
	}
	return out, nil
}

func rootRect(setup *xproto.ScreenInfo) stack.Rectangle {
	return stack.Rectangle{X: 0, Y: 0, W: uint32(setup.WidthInPixels), H: uint32(setup.HeightInPixels)}
}

// SaveSetInsert adds w to the server's save-set, so a reparented client
// survives this process exiting uncleanly (grounded on wm/frame.go's
// ChangeSaveSet call via xfixes).
func (c *Conn) SaveSetInsert(w xproto.Window) {
	xproto.ChangeSaveSet(c.X, xfixes.SaveSetModeInsert, w)
}
