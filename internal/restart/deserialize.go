package restart

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/lattice-wm/lattice/internal/layout"
	"github.com/lattice-wm/lattice/internal/stack"
)

// Deserialize parses the text Serialize produced back into an equivalent
// WindowSet, the other half of spec.md §4.F step 3/4's round trip used by
// --resume. Reconciliation against the live X window tree (spec.md §9's
// resolved open question) is the caller's responsibility afterward —
// Deserialize only rebuilds the data structure.
func Deserialize(blob string) (stack.WindowSet, error) {
	sc := bufio.NewScanner(strings.NewReader(blob))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	numScreens, err := readCountLine(sc, "screens")
	if err != nil {
		return stack.WindowSet{}, err
	}
	screens := make([]stack.Screen, numScreens)
	for i := range screens {
		s, err := readScreen(sc)
		if err != nil {
			return stack.WindowSet{}, err
		}
		screens[i] = s
	}
	if len(screens) == 0 {
		return stack.WindowSet{}, fmt.Errorf("restart: serialized state has zero screens")
	}

	numHidden, err := readCountLine(sc, "hidden")
	if err != nil {
		return stack.WindowSet{}, err
	}
	hidden := make([]stack.Workspace, numHidden)
	for i := range hidden {
		w, err := readWorkspace(sc)
		if err != nil {
			return stack.WindowSet{}, err
		}
		hidden[i] = w
	}

	numFloating, err := readCountLine(sc, "floating")
	if err != nil {
		return stack.WindowSet{}, err
	}
	floating := make(map[stack.WindowID]stack.RationalRect, numFloating)
	for i := 0; i < numFloating; i++ {
		if !sc.Scan() {
			return stack.WindowSet{}, fmt.Errorf("restart: unexpected end of input reading floating entry %d", i)
		}
		var w uint32
		var x, y, wd, h float64
		if _, err := fmt.Sscanf(sc.Text(), "%d %f %f %f %f", &w, &x, &y, &wd, &h); err != nil {
			return stack.WindowSet{}, fmt.Errorf("restart: parsing floating entry %d: %w", i, err)
		}
		floating[stack.WindowID(w)] = stack.RationalRect{X: x, Y: y, W: wd, H: h}
	}

	return stack.WindowSet{
		Current:  screens[0],
		Visible:  screens[1:],
		Hidden:   hidden,
		Floating: floating,
	}, nil
}

func readCountLine(sc *bufio.Scanner, tag string) (int, error) {
	if !sc.Scan() {
		return 0, fmt.Errorf("restart: unexpected end of input reading %q header", tag)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 || fields[0] != tag {
		return 0, fmt.Errorf("restart: expected %q header, got %q", tag, sc.Text())
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("restart: parsing %q count: %w", tag, err)
	}
	return n, nil
}

func readScreen(sc *bufio.Scanner) (stack.Screen, error) {
	if !sc.Scan() {
		return stack.Screen{}, fmt.Errorf("restart: unexpected end of input reading screen header")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 10 || fields[0] != "screen" {
		return stack.Screen{}, fmt.Errorf("restart: malformed screen header %q", sc.Text())
	}
	ints := make([]int64, 9)
	for i, f := range fields[1:] {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return stack.Screen{}, fmt.Errorf("restart: parsing screen field %d: %w", i, err)
		}
		ints[i] = v
	}
	detail := stack.ScreenDetail{
		Rect: stack.Rectangle{X: int32(ints[1]), Y: int32(ints[2]), W: uint32(ints[3]), H: uint32(ints[4])},
		Gap:  stack.Gap{Top: uint32(ints[5]), Bottom: uint32(ints[6]), Left: uint32(ints[7]), Right: uint32(ints[8])},
	}
	ws, err := readWorkspace(sc)
	if err != nil {
		return stack.Screen{}, err
	}
	return stack.Screen{Workspace: ws, ID: stack.ScreenID(ints[0]), Detail: detail}, nil
}

func readWorkspace(sc *bufio.Scanner) (stack.Workspace, error) {
	if !sc.Scan() {
		return stack.Workspace{}, fmt.Errorf("restart: unexpected end of input reading workspace header")
	}
	line := sc.Text()
	const prefix = "workspace "
	if !strings.HasPrefix(line, prefix) {
		return stack.Workspace{}, fmt.Errorf("restart: malformed workspace header %q", line)
	}
	rest := line[len(prefix):]
	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		return stack.Workspace{}, fmt.Errorf("restart: malformed workspace header %q", line)
	}
	tag := rest[:sp]
	rest = rest[sp+1:]

	fields := strings.SplitN(rest, " ", 4)
	if len(fields) < 3 {
		return stack.Workspace{}, fmt.Errorf("restart: malformed workspace header %q", line)
	}
	layoutLen, err := strconv.Atoi(fields[0])
	if err != nil {
		return stack.Workspace{}, fmt.Errorf("restart: parsing layout length: %w", err)
	}
	numWindows, err := strconv.Atoi(fields[1])
	if err != nil {
		return stack.Workspace{}, fmt.Errorf("restart: parsing window count: %w", err)
	}
	focusIdx, err := strconv.Atoi(fields[2])
	if err != nil {
		return stack.Workspace{}, fmt.Errorf("restart: parsing focus index: %w", err)
	}
	encodedLayout := ""
	if len(fields) == 4 {
		encodedLayout = fields[3]
	}
	if len(encodedLayout) != layoutLen {
		return stack.Workspace{}, fmt.Errorf("restart: layout length mismatch for workspace %q: declared %d, got %d", tag, layoutLen, len(encodedLayout))
	}

	var l stack.Layout
	if encodedLayout != "" {
		l, err = layout.Decode(encodedLayout)
		if err != nil {
			return stack.Workspace{}, fmt.Errorf("restart: decoding layout for workspace %q: %w", tag, err)
		}
	}

	var windows []stack.WindowID
	if numWindows > 0 {
		if !sc.Scan() {
			return stack.Workspace{}, fmt.Errorf("restart: unexpected end of input reading windows for workspace %q", tag)
		}
		for _, f := range strings.Fields(sc.Text()) {
			n, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return stack.Workspace{}, fmt.Errorf("restart: parsing window id: %w", err)
			}
			windows = append(windows, stack.WindowID(n))
		}
	} else if !sc.Scan() {
		return stack.Workspace{}, fmt.Errorf("restart: unexpected end of input reading (empty) windows line for workspace %q", tag)
	}

	var st *stack.Stack[stack.WindowID]
	if len(windows) > 0 {
		if focusIdx < 0 || focusIdx >= len(windows) {
			focusIdx = 0
		}
		st = &stack.Stack[stack.WindowID]{
			Focus: windows[focusIdx],
		}
		for i := focusIdx - 1; i >= 0; i-- {
			st.Up = append(st.Up, windows[i])
		}
		st.Down = append(st.Down, windows[focusIdx+1:]...)
	}

	return stack.Workspace{Tag: stack.WorkspaceTag(tag), Layout: l, Stack: st}, nil
}
