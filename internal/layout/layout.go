// Package layout implements the polymorphic layout dispatch of spec.md
// §4.B: the Layout capability interface (stack.Layout), its built-in
// implementations (Tall, Mirror, Full, Grid, Choose), and a textual
// encode/decode registry so that a running workspace's layout can survive
// the restart/recompile round trip of spec.md §4.F.
//
// Rendering math is grounded on the teacher's column-splitting arithmetic
// (_examples/funkycode-marwind/wm/render.go's renderColumn/renderWorkspace).
package layout

import (
	"fmt"
	"math"

	"github.com/lattice-wm/lattice/internal/msg"
	"github.com/lattice-wm/lattice/internal/stack"
)

// Tall arranges the first Nmaster windows in a left pane of width
// floor(screen.W*Ratio), split into equal rows, and the remainder in a
// right pane split into equal rows.
type Tall struct {
	Nmaster int
	Delta   float64
	Ratio   float64
}

// NewTall builds a Tall layout, matching the teacher's constructor-function
// style (wm.newWorkspace, wm.newOutput).
func NewTall(nmaster int, delta, ratio float64) *Tall {
	if nmaster < 1 {
		nmaster = 1
	}
	return &Tall{Nmaster: nmaster, Delta: delta, Ratio: ratio}
}

func (t *Tall) Description() string { return "Tall" }

func (t *Tall) DoLayout(screen stack.Rectangle, st *stack.Stack[stack.WindowID]) ([]stack.WindowRect, stack.Layout, error) {
	windows := st.ToList()
	if len(windows) == 0 {
		return nil, nil, nil
	}
	nMaster := t.Nmaster
	if nMaster > len(windows) {
		nMaster = len(windows)
	}
	masters := windows[:nMaster]
	rest := windows[nMaster:]

	masterW := screen.W
	if len(rest) > 0 {
		masterW = uint32(float64(screen.W) * t.Ratio)
	}
	restW := screen.W - masterW

	out := make([]stack.WindowRect, 0, len(windows))
	out = append(out, splitColumn(masters, stack.Rectangle{X: screen.X, Y: screen.Y, W: masterW, H: screen.H})...)
	if len(rest) > 0 {
		out = append(out, splitColumn(rest, stack.Rectangle{X: screen.X + int32(masterW), Y: screen.Y, W: restW, H: screen.H})...)
	}
	return out, nil, nil
}

// splitColumn divides area into len(windows) equal-height rows.
func splitColumn(windows []stack.WindowID, area stack.Rectangle) []stack.WindowRect {
	if len(windows) == 0 {
		return nil
	}
	out := make([]stack.WindowRect, len(windows))
	h := area.H / uint32(len(windows))
	y := area.Y
	for i, w := range windows {
		rowH := h
		if i == len(windows)-1 {
			// absorb rounding remainder into the last row
			rowH = area.H - h*uint32(len(windows)-1)
		}
		out[i] = stack.WindowRect{Window: w, Rect: stack.Rectangle{X: area.X, Y: y, W: area.W, H: rowH}}
		y += int32(rowH)
	}
	return out
}

func (t *Tall) HandleMessage(m msg.Message) (stack.Layout, error) {
	switch m.Kind {
	case msg.KindShrink:
		r := t.Ratio - t.Delta
		if r < t.Delta {
			r = t.Delta
		}
		return &Tall{Nmaster: t.Nmaster, Delta: t.Delta, Ratio: r}, nil
	case msg.KindExpand:
		r := t.Ratio + t.Delta
		if r > 1-t.Delta {
			r = 1 - t.Delta
		}
		return &Tall{Nmaster: t.Nmaster, Delta: t.Delta, Ratio: r}, nil
	case msg.KindIncMasterN:
		n := t.Nmaster + m.Delta
		if n < 1 {
			n = 1
		}
		return &Tall{Nmaster: n, Delta: t.Delta, Ratio: t.Ratio}, nil
	default:
		return nil, nil
	}
}

func (t *Tall) Encode() (string, error) {
	return fmt.Sprintf("tall %d %f %f", t.Nmaster, t.Delta, t.Ratio), nil
}

func decodeTall(p *parser) (stack.Layout, error) {
	nmaster, err := p.int()
	if err != nil {
		return nil, err
	}
	delta, err := p.float()
	if err != nil {
		return nil, err
	}
	ratio, err := p.float()
	if err != nil {
		return nil, err
	}
	return &Tall{Nmaster: nmaster, Delta: delta, Ratio: ratio}, nil
}

// Mirror transposes the rectangles produced by an inner layout, turning a
// horizontal split into a vertical one (and vice versa).
type Mirror struct {
	Inner stack.Layout
}

func NewMirror(inner stack.Layout) *Mirror { return &Mirror{Inner: inner} }

func (m *Mirror) Description() string { return "Mirror " + m.Inner.Description() }

func transpose(r stack.Rectangle) stack.Rectangle {
	return stack.Rectangle{X: r.Y, Y: r.X, W: r.H, H: r.W}
}

func (m *Mirror) DoLayout(screen stack.Rectangle, st *stack.Stack[stack.WindowID]) ([]stack.WindowRect, stack.Layout, error) {
	rects, newInner, err := m.Inner.DoLayout(transpose(screen), st)
	if err != nil {
		return nil, nil, err
	}
	out := make([]stack.WindowRect, len(rects))
	for i, wr := range rects {
		out[i] = stack.WindowRect{Window: wr.Window, Rect: transpose(wr.Rect)}
	}
	if newInner == nil {
		return out, nil, nil
	}
	return out, &Mirror{Inner: newInner}, nil
}

func (m *Mirror) HandleMessage(msg msg.Message) (stack.Layout, error) {
	newInner, err := m.Inner.HandleMessage(msg)
	if err != nil || newInner == nil {
		return nil, err
	}
	return &Mirror{Inner: newInner}, nil
}

func (m *Mirror) Encode() (string, error) {
	inner, err := m.Inner.Encode()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mirror %d %s", len(inner), inner), nil
}

func decodeMirror(p *parser) (stack.Layout, error) {
	n, err := p.int()
	if err != nil {
		return nil, err
	}
	raw, err := p.bytes(n)
	if err != nil {
		return nil, err
	}
	inner, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("mirror: decoding inner layout: %w", err)
	}
	return &Mirror{Inner: inner}, nil
}

// Full gives every window the screen's full rectangle; stacking order (the
// reducer always raises the focused window last) makes only the focused
// window visible.
type Full struct{}

func NewFull() *Full { return &Full{} }

func (Full) Description() string { return "Full" }

func (Full) DoLayout(screen stack.Rectangle, st *stack.Stack[stack.WindowID]) ([]stack.WindowRect, stack.Layout, error) {
	windows := st.ToList()
	out := make([]stack.WindowRect, len(windows))
	for i, w := range windows {
		out[i] = stack.WindowRect{Window: w, Rect: screen}
	}
	return out, nil, nil
}

func (Full) HandleMessage(msg.Message) (stack.Layout, error) { return nil, nil }

func (Full) Encode() (string, error) { return "full", nil }

func decodeFull(*parser) (stack.Layout, error) { return &Full{}, nil }

// Grid arranges every non-floating window into a near-square grid.
type Grid struct{}

func NewGrid() *Grid { return &Grid{} }

func (Grid) Description() string { return "Grid" }

func (Grid) DoLayout(screen stack.Rectangle, st *stack.Stack[stack.WindowID]) ([]stack.WindowRect, stack.Layout, error) {
	windows := st.ToList()
	n := len(windows)
	if n == 0 {
		return nil, nil, nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))

	out := make([]stack.WindowRect, 0, n)
	cellW := screen.W / uint32(cols)
	cellH := screen.H / uint32(rows)
	for i, w := range windows {
		col := i % cols
		row := i / cols
		rectW, rectH := cellW, cellH
		if col == cols-1 {
			rectW = screen.W - cellW*uint32(cols-1)
		}
		if row == rows-1 {
			rectH = screen.H - cellH*uint32(rows-1)
		}
		out = append(out, stack.WindowRect{
			Window: w,
			Rect: stack.Rectangle{
				X: screen.X + int32(cellW)*int32(col),
				Y: screen.Y + int32(cellH)*int32(row),
				W: rectW,
				H: rectH,
			},
		})
	}
	return out, nil, nil
}

func (Grid) HandleMessage(msg.Message) (stack.Layout, error) { return nil, nil }

func (Grid) Encode() (string, error) { return "grid", nil }

func decodeGrid(*parser) (stack.Layout, error) { return &Grid{}, nil }

// Choose holds two sub-layouts and a bit saying which is active.
// NextLayout toggles the active one; every other message (besides
// FirstLayout) is forwarded to both, so the inactive layout's internal
// state (e.g. a Tall's Ratio) keeps tracking Shrink/Expand/IncMasterN even
// while it isn't being rendered.
type Choose struct {
	A, B   stack.Layout
	Active bool // false => A, true => B
}

func NewChoose(a, b stack.Layout) *Choose { return &Choose{A: a, B: b} }

func (c *Choose) current() stack.Layout {
	if c.Active {
		return c.B
	}
	return c.A
}

func (c *Choose) Description() string { return c.current().Description() }

func (c *Choose) DoLayout(screen stack.Rectangle, st *stack.Stack[stack.WindowID]) ([]stack.WindowRect, stack.Layout, error) {
	rects, newCur, err := c.current().DoLayout(screen, st)
	if err != nil {
		return nil, nil, err
	}
	if newCur == nil {
		return rects, nil, nil
	}
	out := *c
	if c.Active {
		out.B = newCur
	} else {
		out.A = newCur
	}
	return rects, &out, nil
}

func (c *Choose) HandleMessage(m msg.Message) (stack.Layout, error) {
	switch m.Kind {
	case msg.KindNextLayout:
		out := *c
		out.Active = !out.Active
		return &out, nil
	case msg.KindFirstLayout:
		if !c.Active {
			return nil, nil
		}
		out := *c
		out.Active = false
		return &out, nil
	default:
		newA, errA := c.A.HandleMessage(m)
		if errA != nil {
			return nil, errA
		}
		newB, errB := c.B.HandleMessage(m)
		if errB != nil {
			return nil, errB
		}
		if newA == nil && newB == nil {
			return nil, nil
		}
		out := *c
		if newA != nil {
			out.A = newA
		}
		if newB != nil {
			out.B = newB
		}
		return &out, nil
	}
}

func (c *Choose) Encode() (string, error) {
	a, err := c.A.Encode()
	if err != nil {
		return "", err
	}
	b, err := c.B.Encode()
	if err != nil {
		return "", err
	}
	active := 0
	if c.Active {
		active = 1
	}
	return fmt.Sprintf("choose %d %d %s %d %s", active, len(a), a, len(b), b), nil
}

func decodeChoose(p *parser) (stack.Layout, error) {
	active, err := p.int()
	if err != nil {
		return nil, err
	}
	lenA, err := p.int()
	if err != nil {
		return nil, err
	}
	rawA, err := p.bytes(lenA)
	if err != nil {
		return nil, err
	}
	a, err := Decode(rawA)
	if err != nil {
		return nil, fmt.Errorf("choose: decoding A: %w", err)
	}
	lenB, err := p.int()
	if err != nil {
		return nil, err
	}
	rawB, err := p.bytes(lenB)
	if err != nil {
		return nil, err
	}
	b, err := Decode(rawB)
	if err != nil {
		return nil, fmt.Errorf("choose: decoding B: %w", err)
	}
	return &Choose{A: a, B: b, Active: active != 0}, nil
}
